package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/mapme/internal/flagx"
)

var knownFlags = []string{"-r", "-p", "-k", "-i", "-b", "-a", "-d", "-t", "-f"}

// parseFlags populates Config fields from command-line flags.
// Only flags listed in knownFlags are looked at (see flagx.FilterArgs), so
// the -c/-config flag handled by parseJson does not trip the parser.
// It panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("mapme", flag.ContinueOnError)

	fs.StringVar(&cfg.Region, "r", cfg.Region, "AWS region")
	fs.StringVar(&cfg.UserPoolID, "p", cfg.UserPoolID, "Cognito user pool id")
	fs.StringVar(&cfg.UserPoolClientID, "k", cfg.UserPoolClientID, "Cognito user pool client id")
	fs.StringVar(&cfg.IdentityPoolID, "i", cfg.IdentityPoolID, "Cognito identity pool id")
	fs.StringVar(&cfg.AvatarsBucket, "b", cfg.AvatarsBucket, "avatars bucket")
	fs.StringVar(&cfg.APIBase, "a", cfg.APIBase, "backend API base URL")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	fs.BoolVar(&cfg.FailOpenProfileCheck, "f", cfg.FailOpenProfileCheck, "fail open when the profile check fails")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	// An unset -t keeps the timeout from earlier layers, which may be finer
	// than whole seconds.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
