package media

import (
	"fmt"
	"strings"
)

// Normalizer maps CMS video records onto Media values.
type Normalizer struct {
	fallbackLink string
}

func NewNormalizer(fallbackLink string) *Normalizer {
	return &Normalizer{fallbackLink: fallbackLink}
}

// Run normalizes a whole batch in order. The first malformed record aborts the batch.
func (n *Normalizer) Run(videos []RawVideo) ([]Media, error) {
	medias := make([]Media, 0, len(videos))
	for i, video := range videos {
		m, err := n.Normalize(video)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		medias = append(medias, m)
	}
	return medias, nil
}

func (n *Normalizer) Normalize(video RawVideo) (Media, error) {
	id := strings.TrimSpace(string(video.ID))
	if id == "" {
		return Media{}, &Error{Kind: KindMalformedRecord, Op: "normalize", Err: fmt.Errorf("missing id")}
	}

	m := Media{
		ID:          id,
		Title:       deref(video.Name),
		Description: deref(video.Description),
		Link:        n.fallbackLink,
	}
	if video.Link != nil && video.Link.URL != "" {
		m.Link = video.Link.URL
	}
	return m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
