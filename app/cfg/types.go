package cfg

import "time"

type Cfg struct {
	// Brightcove
	AccountID    string
	ClientID     string
	ClientSecret string
	OAuthURL     string
	CMSURL       string

	// Pipeline
	Limit       int
	ChannelFile string
	Output      string
	Timeout     time.Duration

	// Serve mode
	Serve bool
	Port  string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
