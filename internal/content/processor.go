// Package content rewrites legacy WordPress HTML into target-ready
// markup and extracts embedded upload images into gallery lists.
package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Processor applies the fixed content transformation pipeline. The
// sub-transform order is significant: URLs are rewritten before
// shortcodes expand, and image fixes run last.
type Processor struct {
	siteURL   string
	mediaBase string
}

// NewProcessor builds a processor for the given legacy site URL and
// target media base path (e.g. "/media/").
func NewProcessor(siteURL, mediaBase string) *Processor {
	if mediaBase == "" {
		mediaBase = "/media/"
	}
	if !strings.HasSuffix(mediaBase, "/") {
		mediaBase += "/"
	}
	return &Processor{
		siteURL:   strings.TrimRight(siteURL, "/"),
		mediaBase: mediaBase,
	}
}

var (
	uploadURLRe  = regexp.MustCompile(`(?:https?://[^/"'\s]+)?/wp-content/uploads/`)
	openTagRe    = regexp.MustCompile(`\[(\w+)([^\]]*)\]`)
	attrRe       = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)'|(\S+))`)
	wpImgClassRe = regexp.MustCompile(`\s*class="[^"]*wp-image-\d+[^"]*"`)
	emptyParaRe  = regexp.MustCompile(`<p>\s*</p>`)
	imgTagRe     = regexp.MustCompile(`<img\b[^>]*/?>`)
)

// Process runs every transformation over one content blob. Total over
// any input; empty in, empty out.
func (p *Processor) Process(html string) string {
	if html == "" {
		return ""
	}
	html = p.rewriteUploadURLs(html)
	html = p.rewriteInternalLinks(html)
	html = p.expandShortcodes(html)
	html = p.cleanMarkup(html)
	html = p.fixImageTags(html)
	return html
}

func (p *Processor) rewriteUploadURLs(html string) string {
	if p.siteURL != "" {
		html = strings.ReplaceAll(html, p.siteURL+"/wp-content/uploads/", p.mediaBase+"uploads/")
	}
	return uploadURLRe.ReplaceAllString(html, p.mediaBase+"uploads/")
}

func (p *Processor) rewriteInternalLinks(html string) string {
	if p.siteURL == "" {
		return html
	}
	html = strings.ReplaceAll(html, p.siteURL+"/", "/")
	return strings.ReplaceAll(html, p.siteURL, "/")
}

// expandShortcodes rewrites [tag attr="v"]inner[/tag] markup. Inner
// content is not re-scanned, so nested shortcodes stay literal.
func (p *Processor) expandShortcodes(html string) string {
	var b strings.Builder
	pos := 0
	for pos < len(html) {
		loc := openTagRe.FindStringSubmatchIndex(html[pos:])
		if loc == nil {
			b.WriteString(html[pos:])
			break
		}
		b.WriteString(html[pos : pos+loc[0]])

		tag := html[pos+loc[2] : pos+loc[3]]
		attrs := parseShortcodeAttrs(html[pos+loc[4] : pos+loc[5]])
		end := pos + loc[1]

		inner := ""
		closing := "[/" + tag + "]"
		if idx := strings.Index(html[end:], closing); idx >= 0 {
			inner = html[end : end+idx]
			end += idx + len(closing)
		}

		b.WriteString(renderShortcode(tag, attrs, inner))
		pos = end
	}
	return b.String()
}

func parseShortcodeAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(s, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		attrs[m[1]] = value
	}
	return attrs
}

func renderShortcode(tag string, attrs map[string]string, inner string) string {
	switch tag {
	case "caption":
		cssClass := strings.TrimSpace("wp-caption " + attrs["align"])
		style := ""
		if w := attrs["width"]; w != "" {
			style = fmt.Sprintf("width: %spx;", w)
		}
		return fmt.Sprintf(`<figure class="%s" style="%s">%s</figure>`, cssClass, style, strings.TrimSpace(inner))
	case "gallery":
		return fmt.Sprintf(`<div class="wp-gallery" data-ids="%s"></div>`, attrs["ids"])
	case "youtube", "vimeo", "video":
		src := attrs["src"]
		if src == "" {
			src = attrs["url"]
		}
		if src == "" {
			src = strings.TrimSpace(inner)
		}
		if src != "" {
			return fmt.Sprintf(`<div class="video-embed"><iframe src="%s" frameborder="0" allowfullscreen></iframe></div>`, src)
		}
	case "audio":
		src := attrs["src"]
		if src == "" {
			src = attrs["mp3"]
		}
		if src != "" {
			return fmt.Sprintf(`<audio controls src="%s"></audio>`, src)
		}
	case "embed":
		return inner
	case "code":
		lang := attrs["language"]
		if lang == "" {
			lang = attrs["lang"]
		}
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`, lang, inner)
	}
	return inner
}

func (p *Processor) cleanMarkup(html string) string {
	html = wpImgClassRe.ReplaceAllString(html, "")
	html = emptyParaRe.ReplaceAllString(html, "")
	html = strings.ReplaceAll(html, "<!--more-->", `<span id="more"></span>`)
	html = strings.ReplaceAll(html, "<!--nextpage-->", "")
	return html
}

// fixImageTags adds loading="lazy" to image tags that lack a loading
// attribute.
func (p *Processor) fixImageTags(html string) string {
	return imgTagRe.ReplaceAllStringFunc(html, func(tag string) string {
		if strings.Contains(tag, "loading=") {
			return tag
		}
		return `<img loading="lazy"` + tag[len("<img"):]
	})
}
