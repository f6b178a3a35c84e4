package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/lysyi3m/bc-mrss/app/media"
)

const mediaRSSNamespace = "http://search.yahoo.com/mrss/"

type Generator struct {
	channel  Channel
	verifier *Verifier
}

func NewGenerator(channel Channel) *Generator {
	return &Generator{
		channel:  channel,
		verifier: NewVerifier(),
	}
}

// Run renders medias as an MRSS document in input order. Every media must carry Content.
func (g *Generator) Run(medias []media.Media) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:media="` + mediaRSSNamespace + `">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", g.channel.Title, 4)
	g.writeElement(&buf, "link", g.channel.Link, 4)
	g.writeElement(&buf, "description", g.channel.Description, 4)

	for _, m := range medias {
		if err := g.writeItem(&buf, m); err != nil {
			return "", err
		}
	}

	buf.WriteString("  </channel>\n</rss>\n")

	doc := buf.String()
	if err := g.verifier.Run(doc, medias); err != nil {
		return "", &media.Error{Kind: media.KindGenerationFailure, Op: "verify feed", Err: err}
	}
	return doc, nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, m media.Media) error {
	if m.Content == nil {
		return &media.Error{Kind: media.KindGenerationFailure, Op: "generate feed", MediaID: m.ID,
			Err: fmt.Errorf("media has no content")}
	}

	buf.WriteString("    <item>\n")
	g.writeElement(buf, "title", m.Title, 6)
	g.writeElement(buf, "description", m.Description, 6)
	g.writeElement(buf, "link", m.Link, 6)

	buf.WriteString("      <media:content")
	g.writeAttr(buf, "url", m.Content.URL)
	g.writeAttr(buf, "duration", strconv.FormatInt(m.Content.DurationMs, 10))
	g.writeAttr(buf, "type", m.Content.MimeType)
	g.writeAttr(buf, "expression", m.Content.Expression)
	g.writeAttr(buf, "medium", m.Content.Medium)
	buf.WriteString(" />\n")

	buf.WriteString("    </item>\n")
	return nil
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" ")
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteString(`"`)
}
