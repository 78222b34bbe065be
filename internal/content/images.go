package content

import (
	"regexp"
	"strings"
)

// ExtractedImage is one upload-hosted image pulled out of a post body.
type ExtractedImage struct {
	URL string
	Alt string
}

var (
	figureBlockRe = regexp.MustCompile(`(?s)<figure\b[^>]*>.*?</figure>`)
	paraBlockRe   = regexp.MustCompile(`(?s)<p\b[^>]*>\s*(?:<a\b[^>]*>\s*)?<img\b[^>]*/?>\s*(?:</a>\s*)?</p>`)
	anchorBlockRe = regexp.MustCompile(`(?s)<a\b[^>]*>\s*<img\b[^>]*/?>\s*</a>`)
	imgSrcRe      = regexp.MustCompile(`src\s*=\s*["']([^"']+)["']`)
	imgAltRe      = regexp.MustCompile(`alt\s*=\s*["']([^"']*)["']`)
	sizeSuffixRe  = regexp.MustCompile(`-\d+x\d+(\.\w+)$`)
)

// ExtractImages removes upload-directory images from a post body and
// returns them as a gallery list. Wrappers are handled outermost first
// (figure, then paragraph, then anchor, then bare img) so an already
// handled tag is never re-processed. The image matching featuredURL is
// removed from the body but kept out of the gallery, as are duplicates
// of an image already collected. Images on external hosts stay in the
// body untouched.
func (p *Processor) ExtractImages(html, featuredURL string) (string, []ExtractedImage) {
	if html == "" {
		return "", nil
	}

	featured := normalizeImagePath(featuredURL)
	seen := make(map[string]bool)
	var images []ExtractedImage

	handleBlock := func(block string) string {
		src := firstMatch(imgSrcRe, block)
		if src == "" || !p.isUploadPath(src) {
			return block
		}
		key := normalizeImagePath(src)
		if featured != "" && key == featured {
			return ""
		}
		if seen[key] {
			return ""
		}
		seen[key] = true
		images = append(images, ExtractedImage{URL: src, Alt: firstMatch(imgAltRe, block)})
		return ""
	}

	// Figures without an image inside must survive.
	html = figureBlockRe.ReplaceAllStringFunc(html, func(block string) string {
		if !strings.Contains(block, "<img") {
			return block
		}
		return handleBlock(block)
	})
	html = paraBlockRe.ReplaceAllStringFunc(html, handleBlock)
	html = anchorBlockRe.ReplaceAllStringFunc(html, handleBlock)
	html = imgTagRe.ReplaceAllStringFunc(html, handleBlock)

	return html, images
}

// isUploadPath reports whether a src points into the legacy or target
// upload directory. External hosts only count when they carry the
// legacy wp-content path.
func (p *Processor) isUploadPath(src string) bool {
	if strings.Contains(src, "/wp-content/uploads/") {
		return true
	}
	return strings.Contains(src, p.mediaBase+"uploads/")
}

// normalizeImagePath strips the rendered-size suffix (-300x200 etc.) so
// size variants of one asset compare equal.
func normalizeImagePath(src string) string {
	if src == "" {
		return ""
	}
	src = sizeSuffixRe.ReplaceAllString(src, "$1")
	src = strings.TrimPrefix(src, "https://")
	src = strings.TrimPrefix(src, "http://")
	if idx := strings.Index(src, "/"); idx > 0 && !strings.HasPrefix(src, "/") {
		src = src[idx:]
	}
	return src
}

// UploadRelPath returns the path of an upload-hosted image relative to
// the uploads directory, with size suffix stripped ("" when the image
// is not upload-hosted).
func (p *Processor) UploadRelPath(src string) string {
	norm := normalizeImagePath(src)
	for _, marker := range []string{"/wp-content/uploads/", p.mediaBase + "uploads/"} {
		if idx := strings.Index(norm, marker); idx >= 0 {
			return norm[idx+len(marker):]
		}
	}
	return ""
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
