package importer

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 500

var (
	deaccenter  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonSlugRe   = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRunRe = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL slug: accents stripped, lowercased,
// non-alphanumerics collapsed to single hyphens. Empty titles become
// "untitled".
func Slugify(text string) string {
	if flat, _, err := transform.String(deaccenter, text); err == nil {
		text = flat
	}
	text = strings.ToLower(text)
	text = nonSlugRe.ReplaceAllString(text, "-")
	text = hyphenRunRe.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")
	if text == "" {
		return "untitled"
	}
	if len(text) > maxSlugLen {
		text = strings.Trim(text[:maxSlugLen], "-")
	}
	return text
}

// CleanWPSlug normalizes a legacy slug. WordPress allows URL-encoded
// unicode in post_name (e.g. %e2%80%99 for a curly apostrophe); those
// are decoded and re-slugified.
func CleanWPSlug(slug string) string {
	if slug == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(slug); err == nil {
		slug = decoded
	}
	return Slugify(slug)
}

// uniqueSlug suffixes -1, -2, ... until the slug is free both in this
// run's used-set and in persisted storage.
func uniqueSlug(slug string, used map[string]bool, exists func(string) (bool, error)) (string, error) {
	if slug == "" {
		slug = "untitled"
	}
	original := slug
	for counter := 1; ; counter++ {
		taken := used[slug]
		if !taken {
			stored, err := exists(slug)
			if err != nil {
				return "", err
			}
			taken = stored
		}
		if !taken {
			return slug, nil
		}
		slug = original + "-" + strconv.Itoa(counter)
	}
}
