package config

// Config is the top-level issuepr configuration.
//
// Branch naming, the base branch and the draft flag are fixed by the
// pipeline and are not configurable.
type Config struct {
	GitHub GitHubConfig `json:"github" yaml:"github"`
}

// GitHubConfig holds API access settings.
type GitHubConfig struct {
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// APIURL is the REST endpoint. Empty means api.github.com, or
	// GITHUB_API_URL when running inside Actions.
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
	// WaitOnRateLimit sleeps through rate limits instead of failing.
	WaitOnRateLimit bool `json:"wait_on_rate_limit" yaml:"wait_on_rate_limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}
