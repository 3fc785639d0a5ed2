package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	APIScheme     string `mapstructure:"api_scheme"`
	APIHost       string `mapstructure:"api_host"`
	APIToken      string `mapstructure:"api_token"`
	SchoolsPath   string `mapstructure:"schools_path"`
	SATScoresPath string `mapstructure:"sat_scores_path"`
	UserAgent     string `mapstructure:"user_agent"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestAttempts       int           `mapstructure:"request_attempts"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ReachabilityTarget          string        `mapstructure:"reachability_target"`
	ReachabilityIntervalSeconds int64         `mapstructure:"reachability_interval_seconds"`
	ReachabilityTimeoutSeconds  int64         `mapstructure:"reachability_timeout_seconds"`
	ReachabilityWaitSeconds     int64         `mapstructure:"reachability_wait_seconds"`
	MeteredInterfacesRaw        string        `mapstructure:"metered_interfaces"`
	ReachabilityInterval        time.Duration `mapstructure:"-"`
	ReachabilityTimeout         time.Duration `mapstructure:"-"`
	ReachabilityWait            time.Duration `mapstructure:"-"`
	MeteredInterfaces           []string      `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "nyc-schools")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "./data/schools.log")
	v.SetDefault("api_scheme", "https")
	v.SetDefault("api_host", "data.cityofnewyork.us")
	v.SetDefault("api_token", "")
	v.SetDefault("schools_path", "/resource/s3k6-pzi2.json")
	v.SetDefault("sat_scores_path", "/resource/f9bf-2cp4.json")
	v.SetDefault("user_agent", "nyc-schools/0.1")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("request_attempts", 2)
	v.SetDefault("reachability_target", "")
	v.SetDefault("reachability_interval_seconds", 10)
	v.SetDefault("reachability_timeout_seconds", 3)
	v.SetDefault("reachability_wait_seconds", 3)
	v.SetDefault("metered_interfaces", "wwan,rmnet,ppp,usb")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIScheme = strings.ToLower(strings.TrimSpace(c.APIScheme))
	if c.APIScheme != "http" && c.APIScheme != "https" {
		return fmt.Errorf("invalid api_scheme %q (must be http or https)", c.APIScheme)
	}
	c.APIHost = strings.TrimSpace(c.APIHost)
	if c.APIHost == "" {
		return fmt.Errorf("api_host is required")
	}
	c.APIToken = strings.TrimSpace(c.APIToken)

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.RequestAttempts <= 0 {
		return fmt.Errorf("invalid request_attempts (must be at least 1)")
	}

	if c.ReachabilityIntervalSeconds <= 0 {
		return fmt.Errorf("invalid reachability_interval_seconds (must be positive seconds)")
	}
	if c.ReachabilityTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid reachability_timeout_seconds (must be positive seconds)")
	}
	if c.ReachabilityWaitSeconds < 0 {
		return fmt.Errorf("invalid reachability_wait_seconds (must not be negative)")
	}
	c.ReachabilityInterval = time.Duration(c.ReachabilityIntervalSeconds) * time.Second
	c.ReachabilityTimeout = time.Duration(c.ReachabilityTimeoutSeconds) * time.Second
	c.ReachabilityWait = time.Duration(c.ReachabilityWaitSeconds) * time.Second

	c.ReachabilityTarget = strings.TrimSpace(c.ReachabilityTarget)
	if c.ReachabilityTarget == "" {
		c.ReachabilityTarget = defaultReachabilityTarget(c.APIScheme, c.APIHost)
	}
	c.MeteredInterfaces = splitList(c.MeteredInterfacesRaw)

	return nil
}

// defaultReachabilityTarget derives host:port from the API host, using the scheme's port when absent.
func defaultReachabilityTarget(scheme, host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	port := "443"
	if scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(host, port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
