package config

import (
	"strconv"
	"time"
)

// parseEnv overlays cfg with MAPME_* variables. Unparsable timeout or
// boolean values are ignored and the previous value is kept.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str("MAPME_REGION", &cfg.Region)
	str("MAPME_USER_POOL_ID", &cfg.UserPoolID)
	str("MAPME_USER_POOL_CLIENT_ID", &cfg.UserPoolClientID)
	str("MAPME_IDENTITY_POOL_ID", &cfg.IdentityPoolID)
	str("MAPME_AVATARS_BUCKET", &cfg.AvatarsBucket)
	str("MAPME_API_BASE", &cfg.APIBase)
	str("MAPME_SESSION_DB", &cfg.SessionDBPath)

	if v, ok := lookup("MAPME_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := lookup("MAPME_FAIL_OPEN"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FailOpenProfileCheck = b
		}
	}
}
