package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are built once, on first use, and are safe for concurrent use.
var (
	plainText = sync.OnceValue(bluemonday.StrictPolicy)

	basicFormatting = sync.OnceValue(func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li", "code", "pre", "blockquote")
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		return p
	})

	// Markdown output adds headings, rules, tables and strikethrough.
	renderedMarkdown = sync.OnceValue(func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		return p
	})
)

// StripHTML drops every tag, leaving text.
func StripHTML(s string) string {
	return plainText().Sanitize(s)
}

// SanitizeHTML keeps paragraphs, emphasis, lists, code and links, and drops
// scripts, event handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	return basicFormatting().Sanitize(s)
}

// SanitizeMarkdownHTML cleans the HTML of a rendered post, including any
// raw HTML the author typed into the markdown.
func SanitizeMarkdownHTML(s string) string {
	return renderedMarkdown().Sanitize(s)
}

// SanitizeHTMLCustom runs policy over s. A nil policy returns s unchanged.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
