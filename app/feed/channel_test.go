package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "channel.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadChannel_Valid(t *testing.T) {
	path := writeChannelFile(t, `
title: "The Loop Videos"
link: "https://example.com"
description: "Latest clips"
fallback_link: "http://example.com/videos"
`)

	channel, err := LoadChannel(path)
	require.NoError(t, err)
	assert.Equal(t, Channel{
		Title:        "The Loop Videos",
		Link:         "https://example.com",
		Description:  "Latest clips",
		FallbackLink: "http://example.com/videos",
	}, channel)
}

func TestLoadChannel_Defaults(t *testing.T) {
	path := writeChannelFile(t, `link: "https://example.com"`)

	channel, err := LoadChannel(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultChannelTitle, channel.Title)
	assert.Equal(t, DefaultChannelDescription, channel.Description)
	assert.Equal(t, "https://example.com", channel.FallbackLink)
}

func TestLoadChannel_MissingFile(t *testing.T) {
	channel, err := LoadChannel(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultChannel(), channel)

	channel, err = LoadChannel("")
	require.NoError(t, err)
	assert.Equal(t, DefaultChannel(), channel)
}

func TestLoadChannel_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":          "title: [unterminated",
		"relative link":     `link: "/videos"`,
		"bad fallback link": `fallback_link: "ftp://example.com"`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadChannel(writeChannelFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadChannel_ReportsFirstInvalidLink(t *testing.T) {
	path := writeChannelFile(t, `
link: "/videos"
fallback_link: "ftp://example.com"
`)

	for i := 0; i < 20; i++ {
		_, err := LoadChannel(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `link must be an absolute http(s) URL, got "/videos"`)
		assert.NotContains(t, err.Error(), "fallback_link")
	}
}
