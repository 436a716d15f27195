package authclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/viant/authclient/client/auth/navigation"
)

const (
	// DefaultGitHubURL is the GitHub public API base URL
	DefaultGitHubURL = "https://api.github.com"
	// DefaultInternalURL is the internal API base URL
	DefaultInternalURL = "https://my-api.com"
)

// Options defines options for configuring the application clients.
type Options struct {
	APIBaseURL   string        `yaml:"apiBaseURL" json:"apiBaseURL,omitempty" short:"u" long:"api-url" description:"application backend base URL"`
	Production   bool          `yaml:"production,omitempty" json:"production,omitempty" short:"P" long:"prod" description:"production build, token cookie is secure"`
	GitHubURL    string        `yaml:"githubURL,omitempty" json:"githubURL,omitempty" long:"github-url" description:"github api base URL"`
	InternalURL  string        `yaml:"internalURL,omitempty" json:"internalURL,omitempty" long:"internal-url" description:"internal api base URL"`
	FrontendURL  string        `yaml:"frontendURL,omitempty" json:"frontendURL,omitempty" short:"f" long:"frontend-url" description:"frontend base URL used for login redirects"`
	LoginRoute   string        `yaml:"loginRoute,omitempty" json:"loginRoute,omitempty" long:"login-route" description:"login route"`
	CookieJarURL string        `yaml:"cookieJarURL,omitempty" json:"cookieJarURL,omitempty" short:"j" long:"jar" description:"cookie jar location, in-memory when empty"`
	Timeout      time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" long:"timeout" description:"request timeout"`
}

// Init sets defaults
func (o *Options) Init() {
	if o.GitHubURL == "" {
		o.GitHubURL = DefaultGitHubURL
	}
	if o.InternalURL == "" {
		o.InternalURL = DefaultInternalURL
	}
	if o.LoginRoute == "" {
		o.LoginRoute = navigation.DefaultLoginRoute
	}
}

// Validate checks required options
func (o *Options) Validate() error {
	if strings.TrimSpace(o.APIBaseURL) == "" {
		return fmt.Errorf("api base URL was empty, set API_BASE_URL or --api-url")
	}
	return nil
}

// Merge fills unset options from other
func (o *Options) Merge(other *Options) {
	if other == nil {
		return
	}
	if o.APIBaseURL == "" {
		o.APIBaseURL = other.APIBaseURL
	}
	o.Production = o.Production || other.Production
	if o.GitHubURL == "" {
		o.GitHubURL = other.GitHubURL
	}
	if o.InternalURL == "" {
		o.InternalURL = other.InternalURL
	}
	if o.FrontendURL == "" {
		o.FrontendURL = other.FrontendURL
	}
	if o.LoginRoute == "" {
		o.LoginRoute = other.LoginRoute
	}
	if o.CookieJarURL == "" {
		o.CookieJarURL = other.CookieJarURL
	}
	if o.Timeout == 0 {
		o.Timeout = other.Timeout
	}
}

// environment variable bound to each option key
var optionEnv = map[string]string{
	"apiBaseURL":   "API_BASE_URL",
	"production":   "PROD",
	"githubURL":    "GITHUB_API_URL",
	"internalURL":  "INTERNAL_API_URL",
	"frontendURL":  "FRONTEND_URL",
	"loginRoute":   "LOGIN_ROUTE",
	"cookieJarURL": "COOKIE_JAR_URL",
	"timeout":      "HTTP_TIMEOUT",
}

// LoadOptions reads options from environment variables and optional config file (yaml, json, toml...)
func LoadOptions(configFile string) (*Options, error) {
	v := viper.New()
	for key, env := range optionEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %v: %w", env, err)
		}
	}
	v.SetDefault("githubURL", DefaultGitHubURL)
	v.SetDefault("internalURL", DefaultInternalURL)
	v.SetDefault("loginRoute", navigation.DefaultLoginRoute)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %v: %w", configFile, err)
		}
	}
	return &Options{
		APIBaseURL:   v.GetString("apiBaseURL"),
		Production:   v.GetBool("production"),
		GitHubURL:    v.GetString("githubURL"),
		InternalURL:  v.GetString("internalURL"),
		FrontendURL:  v.GetString("frontendURL"),
		LoginRoute:   v.GetString("loginRoute"),
		CookieJarURL: v.GetString("cookieJarURL"),
		Timeout:      v.GetDuration("timeout"),
	}, nil
}
