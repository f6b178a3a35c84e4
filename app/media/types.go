package media

import (
	"bytes"
	"encoding/json"
)

// Fixed descriptive metadata carried by every Content.
const (
	MimeTypeMP4    = "video/MP4"
	ExpressionFull = "full"
	MediumVideo    = "video"
)

// Media is one video item of a batch.
type Media struct {
	ID          string
	Title       string
	Description string
	Link        string
	Content     *Content // nil until enrichment
}

// Content is the selected playable rendition of a Media.
type Content struct {
	URL        string
	DurationMs int64
	MimeType   string
	Expression string
	Medium     string
}

// NewContent builds a Content for a progressive MP4 file. Negative durations become 0.
func NewContent(url string, durationMs int64) *Content {
	return &Content{
		URL:        url,
		DurationMs: max(durationMs, 0),
		MimeType:   MimeTypeMP4,
		Expression: ExpressionFull,
		Medium:     MediumVideo,
	}
}

// RawVideo is the subset of a CMS video object the pipeline consumes.
type RawVideo struct {
	ID          RawID    `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Link        *RawLink `json:"link"`
}

// RawID is an opaque video id. The CMS sends strings; bare numbers are kept as their
// literal text. Any other JSON value decodes to an empty id so the record fails
// normalization instead of the whole response failing to decode.
type RawID string

func (id *RawID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = RawID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = RawID(n.String())
		return nil
	}
	*id = ""
	return nil
}

type RawLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// RawSource is one rendition reported by the CMS sources endpoint.
type RawSource struct {
	Remote   bool   `json:"remote"`
	Src      string `json:"src"`
	Size     int64  `json:"size"`
	Duration int64  `json:"duration"` // milliseconds
}
