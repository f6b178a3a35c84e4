package feed

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultChannelTitle       = "BrightCove Feed"
	DefaultChannelLink        = "https://docs.brightcove.com/cms-api/v1/doc/index.html"
	DefaultChannelDescription = "This feed originates from the Brightcove CMS API"
)

// Channel holds the channel-level fields of the feed, static per deployment.
type Channel struct {
	Title        string `yaml:"title"`
	Link         string `yaml:"link"`
	Description  string `yaml:"description"`
	FallbackLink string `yaml:"fallback_link"` // item link when the video has none
}

func DefaultChannel() Channel {
	return Channel{
		Title:        DefaultChannelTitle,
		Link:         DefaultChannelLink,
		Description:  DefaultChannelDescription,
		FallbackLink: DefaultChannelLink,
	}
}

// LoadChannel reads a channel definition from a YAML file. A missing file yields the defaults.
func LoadChannel(path string) (Channel, error) {
	if path == "" {
		return DefaultChannel(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("Channel file not found, using defaults", "path", path)
		return DefaultChannel(), nil
	}
	if err != nil {
		return Channel{}, fmt.Errorf("failed to read file: %w", err)
	}

	var channel Channel
	if err := yaml.Unmarshal(data, &channel); err != nil {
		return Channel{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	channel.FallbackLink = cmp.Or(channel.FallbackLink, channel.Link, DefaultChannelLink)
	channel.Title = cmp.Or(channel.Title, DefaultChannelTitle)
	channel.Link = cmp.Or(channel.Link, DefaultChannelLink)
	channel.Description = cmp.Or(channel.Description, DefaultChannelDescription)

	if err := validateChannel(channel); err != nil {
		return Channel{}, fmt.Errorf("invalid channel %s: %w", path, err)
	}

	slog.Debug("Channel loaded", "path", path, "title", channel.Title)
	return channel, nil
}

func validateChannel(channel Channel) error {
	links := []struct{ field, value string }{
		{"link", channel.Link},
		{"fallback_link", channel.FallbackLink},
	}
	for _, l := range links {
		if !isURL(l.value) {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", l.field, l.value)
		}
	}
	return nil
}

func isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
