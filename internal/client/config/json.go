package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/mapme/internal/flagx"
)

// JsonConfig is the DTO used for JSON unmarshalling. Pointer fields tell
// "absent" from "zero" so a partial file only overrides what it names.
type JsonConfig struct {
	Region           *string `json:"region"`
	UserPoolID       *string `json:"user_pool_id"`
	UserPoolClientID *string `json:"user_pool_client_id"`
	IdentityPoolID   *string `json:"identity_pool_id"`
	AvatarsBucket    *string `json:"avatars_bucket"`
	APIBase          *string `json:"api_base"`
	SessionDBPath    *string `json:"session_db"`
	RequestTimeout   *string `json:"request_timeout"`
	FailOpen         *bool   `json:"fail_open"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// It panics on read, unmarshal or duration errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Region, jc.Region)
	setString(&cfg.UserPoolID, jc.UserPoolID)
	setString(&cfg.UserPoolClientID, jc.UserPoolClientID)
	setString(&cfg.IdentityPoolID, jc.IdentityPoolID)
	setString(&cfg.AvatarsBucket, jc.AvatarsBucket)
	setString(&cfg.APIBase, jc.APIBase)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)

	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(fmt.Errorf("request_timeout: %w", err))
		}
		cfg.RequestTimeout = d
	}
	if jc.FailOpen != nil {
		cfg.FailOpenProfileCheck = *jc.FailOpen
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
