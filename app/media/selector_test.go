package media

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSource_PicksLargest(t *testing.T) {
	sources := []RawSource{
		{Src: "http://x/b.mp4", Size: 50, Duration: 1000},
		{Src: "http://x/a.mp4", Size: 100, Duration: 2000},
		{Src: "http://x/c.mp4", Size: 75},
	}

	content, err := SelectSource("v1", sources)
	require.NoError(t, err)
	assert.Equal(t, "http://x/a.mp4", content.URL)
	assert.Equal(t, int64(2000), content.DurationMs)
	assert.Equal(t, MimeTypeMP4, content.MimeType)
	assert.Equal(t, ExpressionFull, content.Expression)
	assert.Equal(t, MediumVideo, content.Medium)
}

func TestSelectSource_TieKeepsFirstEncountered(t *testing.T) {
	sources := []RawSource{
		{Src: "http://x/small.mp4", Size: 10},
		{Src: "http://x/first.mp4", Size: 100},
		{Src: "http://x/second.mp4", Size: 100},
	}

	content, err := SelectSource("v1", sources)
	require.NoError(t, err)
	assert.Equal(t, "http://x/first.mp4", content.URL)
}

func TestSelectSource_FiltersUnplayable(t *testing.T) {
	tests := []struct {
		name   string
		source RawSource
	}{
		{"remote", RawSource{Remote: true, Src: "http://x/a.mp4", Size: 1}},
		{"missing src", RawSource{Size: 1}},
		{"https", RawSource{Src: "https://x/a.mp4", Size: 1}},
		{"upper case scheme", RawSource{Src: "HTTP://x/a.mp4", Size: 1}},
		{"rtmp", RawSource{Src: "rtmp://x/a.mp4", Size: 1}},
		{"not mp4", RawSource{Src: "http://x/a.webm", Size: 1}},
		{"hls manifest", RawSource{Src: "http://x/mp4/master.m3u8", Size: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := SelectSource("v1", []RawSource{tt.source})
			assert.Nil(t, content)
			assert.ErrorIs(t, err, ErrNoSuitableSource)
		})
	}
}

func TestSelectSource_EmptyFails(t *testing.T) {
	content, err := SelectSource("video-42", nil)
	require.Error(t, err)
	assert.Nil(t, content)

	var selErr *Error
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, KindNoSuitableSource, selErr.Kind)
	assert.Equal(t, "video-42", selErr.MediaID)
	assert.Contains(t, err.Error(), "video-42")
}

func TestSelectSource_LargerUnplayableDoesNotWin(t *testing.T) {
	sources := []RawSource{
		{Src: "https://x/huge.mp4", Size: 9000},
		{Src: "http://x/hls/master.m3u8?mp4", Size: 8000},
		{Remote: true, Src: "http://x/remote.mp4", Size: 7000},
		{Src: "http://x/ok.mp4", Size: 1},
	}

	content, err := SelectSource("v1", sources)
	require.NoError(t, err)
	assert.Equal(t, "http://x/ok.mp4", content.URL)
}

func TestSelectSource_NeverReturnsForbiddenURL(t *testing.T) {
	srcs := []string{
		"http://a/1.mp4", "https://a/2.mp4", "http://a/master.m3u8", "http://a/3.mov",
		"http://a/mp4/master.m3u8", "", "ftp://a/4.mp4", "http://a/5.MP4", "http://a/6.mp4?x=1",
	}

	// every subset of the candidate pool, sizes varied by position
	for mask := 0; mask < 1<<len(srcs); mask++ {
		var sources []RawSource
		for i, src := range srcs {
			if mask&(1<<i) != 0 {
				sources = append(sources, RawSource{Src: src, Size: int64((i * 37) % 11), Remote: i == 5})
			}
		}

		content, err := SelectSource("v", sources)
		if err != nil {
			assert.ErrorIs(t, err, ErrNoSuitableSource)
			continue
		}
		assert.False(t, strings.HasPrefix(content.URL, "https://"), content.URL)
		assert.NotContains(t, content.URL, "master.m3u8")
		assert.Contains(t, content.URL, "mp4")
	}
}

func TestSelectSource_DoesNotReorderInput(t *testing.T) {
	sources := []RawSource{
		{Src: "http://x/b.mp4", Size: 50},
		{Src: "http://x/a.mp4", Size: 100},
	}

	_, err := SelectSource("v1", sources)
	require.NoError(t, err)
	assert.Equal(t, "http://x/b.mp4", sources[0].Src)
}

func TestNewContent_ClampsNegativeDuration(t *testing.T) {
	assert.Equal(t, int64(0), NewContent("http://x/a.mp4", -5).DurationMs)
	assert.Equal(t, int64(0), NewContent("http://x/a.mp4", 0).DurationMs)
	assert.Equal(t, int64(15000), NewContent("http://x/a.mp4", 15000).DurationMs)
}
