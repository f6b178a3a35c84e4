package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Brightcove configuration
	AccountID    string `long:"account-id" env:"BRIGHTCOVE_ACCOUNT_ID" description:"Brightcove account ID" required:"true"`
	ClientID     string `long:"client-id" env:"BRIGHTCOVE_CLIENT_ID" description:"Brightcove OAuth client ID" required:"true"`
	ClientSecret string `long:"client-secret" env:"BRIGHTCOVE_CLIENT_SECRET" description:"Brightcove OAuth client secret" required:"true"`
	OAuthURL     string `long:"oauth-url" env:"BRIGHTCOVE_OAUTH_URL" default:"https://oauth.brightcove.com/v4/access_token" description:"Brightcove OAuth token endpoint"`
	CMSURL       string `long:"cms-url" env:"BRIGHTCOVE_CMS_URL" default:"https://cms.api.brightcove.com/v1" description:"Brightcove CMS API base URL"`

	// Pipeline configuration
	Limit       int    `long:"limit" env:"BATCH_LIMIT" default:"4" description:"Number of videos fetched per run"`
	ChannelFile string `long:"channel-file" env:"CHANNEL_FILE" default:"./channel.yml" description:"YAML file with channel title, link and description"`
	Output      string `long:"output" short:"o" env:"OUTPUT" description:"Write the feed to this file instead of stdout"`
	Timeout     int    `long:"timeout" env:"TIMEOUT" default:"30" description:"HTTP timeout in seconds for Brightcove requests"`

	// Serve mode
	Serve bool   `long:"serve" env:"SERVE" description:"Serve the feed over HTTP instead of generating it once"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"BC-MRSS/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses os.Args and the environment. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", raw.Limit)
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}

	return &Cfg{
		AccountID:    raw.AccountID,
		ClientID:     raw.ClientID,
		ClientSecret: raw.ClientSecret,
		OAuthURL:     raw.OAuthURL,
		CMSURL:       raw.CMSURL,
		Limit:        raw.Limit,
		ChannelFile:  raw.ChannelFile,
		Output:       raw.Output,
		Timeout:      time.Duration(raw.Timeout) * time.Second,
		Serve:        raw.Serve,
		Port:         raw.Port,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}, nil
}
