package media

import (
	"slices"
	"strings"
)

// SelectSource picks the largest progressive, plain-HTTP MP4 rendition among sources.
// Equal sizes keep their reported order.
func SelectSource(mediaID string, sources []RawSource) (*Content, error) {
	candidates := make([]RawSource, 0, len(sources))
	for _, source := range sources {
		if isPlayable(source) {
			candidates = append(candidates, source)
		}
	}

	if len(candidates) == 0 {
		return nil, &Error{Kind: KindNoSuitableSource, MediaID: mediaID, Op: "select source"}
	}

	slices.SortStableFunc(candidates, func(a, b RawSource) int {
		switch {
		case a.Size > b.Size:
			return -1
		case a.Size < b.Size:
			return 1
		}
		return 0
	})

	best := candidates[0]
	return NewContent(best.Src, best.Duration), nil
}

func isPlayable(source RawSource) bool {
	if source.Remote {
		return false
	}
	if source.Src == "" {
		return false
	}
	// https:// fails this prefix check too
	if !strings.HasPrefix(source.Src, "http://") {
		return false
	}
	if !strings.Contains(source.Src, "mp4") {
		return false
	}
	if strings.Contains(source.Src, "master.m3u8") {
		return false
	}
	return true
}
