// Package markdown cleans resident-submitted issue text and renders descriptions for the
// admin dashboard.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	// StripTags removes all markup, for single-line fields such as titles.
	StripTags(text string) string
	// CleanDescription keeps markdown source but drops embedded HTML.
	CleanDescription(text string) string
	// RenderDescription converts a stored description to sanitized HTML.
	RenderDescription(text string) (string, error)
}

type service struct {
	md     goldmark.Markdown
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &service{
		md:     md,
		strict: bluemonday.StrictPolicy(),
		ugc:    ugc,
	}
}

func (s *service) StripTags(text string) string {
	return strings.TrimSpace(s.strict.Sanitize(text))
}

func (s *service) CleanDescription(text string) string {
	return strings.TrimSpace(s.strict.Sanitize(text))
}

func (s *service) RenderDescription(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render description: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}
