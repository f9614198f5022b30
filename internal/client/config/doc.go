// Package config loads runtime configuration for the MapMe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables with the MAPME_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-r string   AWS region
//	-p string   Cognito user pool id
//	-k string   Cognito user pool client id
//	-i string   Cognito identity pool id
//	-b string   avatars bucket
//	-a string   backend API base URL
//	-d string   session database path
//	-t int      backend request timeout (seconds)
//	-f bool     fail open when the profile check fails
//
// # JSON schema
//
//	{
//	  "region": "eu-west-1",
//	  "user_pool_id": "eu-west-1_AbCdEf",
//	  "user_pool_client_id": "1example23456789",
//	  "identity_pool_id": "eu-west-1:0000-1111",
//	  "avatars_bucket": "mapme-avatars",
//	  "api_base": "https://api.example.com/prod",
//	  "session_db": "mapme.db",
//	  "request_timeout": "10s",
//	  "fail_open": true
//	}
//
// Environment variables use the same names upper-cased with the MAPME_
// prefix (MAPME_REGION, MAPME_USER_POOL_ID, ...).
package config
