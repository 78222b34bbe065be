package content

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans imported comment bodies. Legacy dumps carry whatever
// visitors typed, including markup the old system let through.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewCommentSanitizer builds the policy applied to imported comments:
// basic formatting and links, nothing that can script.
func NewCommentSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements("b", "strong", "i", "em", "u", "s", "del")
	p.AllowElements("p", "br", "blockquote", "code", "pre")
	p.AllowElements("ul", "ol", "li")

	p.AllowElements("a")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns the comment body with disallowed markup stripped.
func (s *Sanitizer) Sanitize(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
