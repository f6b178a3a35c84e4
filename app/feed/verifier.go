package feed

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/bc-mrss/app/media"
)

// Verifier re-parses a generated document and checks it describes the given medias.
type Verifier struct {
	gofeedParser *gofeed.Parser
}

func NewVerifier() *Verifier {
	return &Verifier{
		gofeedParser: gofeed.NewParser(),
	}
}

func (v *Verifier) Run(doc string, medias []media.Media) error {
	parsed, err := v.gofeedParser.ParseString(doc)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	if len(parsed.Items) != len(medias) {
		return fmt.Errorf("feed has %d items, expected %d", len(parsed.Items), len(medias))
	}

	for i, item := range parsed.Items {
		url := contentURL(item)
		if url != medias[i].Content.URL {
			return fmt.Errorf("item %d has content url %q, expected %q", i, url, medias[i].Content.URL)
		}
	}
	return nil
}

func contentURL(item *gofeed.Item) string {
	contents := item.Extensions["media"]["content"]
	if len(contents) == 0 {
		return ""
	}
	return contents[0].Attrs["url"]
}
