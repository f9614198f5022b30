package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the MapMe CLI. It is built once in main
// and passed to every component that needs it.
//
// Fields:
//   - Region: AWS region of the user pool, identity pool and avatars bucket.
//   - UserPoolID / UserPoolClientID: Cognito user pool binding.
//   - IdentityPoolID: Cognito identity pool used to obtain S3 credentials.
//   - AvatarsBucket: destination bucket for avatar uploads.
//   - APIBase: prefix for every backend API call, e.g. https://api.example.com/prod.
//   - SessionDBPath: SQLite file holding the persisted session.
//   - RequestTimeout: per-request HTTP timeout for backend calls.
//   - FailOpenProfileCheck: gate policy when the /user check fails.
type Config struct {
	Region               string
	UserPoolID           string
	UserPoolClientID     string
	IdentityPoolID       string
	AvatarsBucket        string
	APIBase              string
	SessionDBPath        string
	RequestTimeout       time.Duration
	FailOpenProfileCheck bool
}

// LoadDefaults populates c with defaults. The AWS bindings have no sensible
// default and stay empty.
func (c *Config) LoadDefaults() {
	c.SessionDBPath = "mapme.db"
	c.RequestTimeout = 10 * time.Second
	c.FailOpenProfileCheck = true
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// (if any), the environment and finally command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, os.Args[1:])
	return cfg
}

// Missing lists the names of required settings that are still empty.
func (c *Config) Missing() []string {
	var missing []string
	check := func(name, v string) {
		if v == "" {
			missing = append(missing, name)
		}
	}
	check("region", c.Region)
	check("user_pool_id", c.UserPoolID)
	check("user_pool_client_id", c.UserPoolClientID)
	check("identity_pool_id", c.IdentityPoolID)
	check("avatars_bucket", c.AvatarsBucket)
	check("api_base", c.APIBase)
	return missing
}
