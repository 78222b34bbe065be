package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// RedirectGenerator is the final stage: it reconstructs the old
// WordPress URL of every migrated entity from the legacy permalink
// configuration and records old -> new redirects. Redirects whose old
// path already equals the new path are skipped; the legacy-id query
// forms (?p=, ?page_id=, ?cat=) are always emitted.
type RedirectGenerator struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report

	postMap map[int]*models.Post
	pageMap map[int]*models.Page
	catMap  map[int]*models.Category
	tagMap  map[int]*models.Tag
}

var permalinkTagRe = regexp.MustCompile(`%\w+%`)

// Run generates all redirect rules.
func (rg *RedirectGenerator) Run() error {
	structure := rg.dump.Option("permalink_structure")
	if structure == "" {
		structure = "/%postname%/"
	}

	for _, row := range rg.dump.GetTable("posts").Rows {
		wpID := row.Int("ID")
		slug := row.String("post_name")
		if slug == "" {
			continue
		}

		switch row.String("post_type") {
		case "post":
			post, ok := rg.postMap[wpID]
			if !ok {
				continue
			}
			newPath := "/articles/" + post.Slug + "/"
			oldPath := buildPermalink(structure, slug, row.String("post_date"))
			if oldPath != "" && oldPath != newPath {
				if err := rg.add(oldPath, newPath); err != nil {
					return err
				}
			}
			if err := rg.add(fmt.Sprintf("/?p=%d", wpID), newPath); err != nil {
				return err
			}

		case "page":
			page, ok := rg.pageMap[wpID]
			if !ok {
				continue
			}
			newPath := "/" + page.Slug + "/"
			oldPath := "/" + slug + "/"
			if oldPath != newPath {
				if err := rg.add(oldPath, newPath); err != nil {
					return err
				}
			}
			if err := rg.add(fmt.Sprintf("/?page_id=%d", wpID), newPath); err != nil {
				return err
			}
		}
	}

	for tid, cat := range rg.catMap {
		newPath := "/categorie/" + cat.Slug + "/"
		oldPath := "/category/" + cat.Slug + "/"
		if oldPath != newPath {
			if err := rg.add(oldPath, newPath); err != nil {
				return err
			}
		}
		if err := rg.add(fmt.Sprintf("/?cat=%d", tid), newPath); err != nil {
			return err
		}
	}
	for _, tag := range rg.tagMap {
		newPath := "/tag/" + tag.Slug + "/"
		oldPath := "/?tag=" + tag.Slug
		if oldPath != newPath {
			if err := rg.add(oldPath, newPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rg *RedirectGenerator) add(oldPath, newPath string) error {
	_, created, err := rg.store.GetOrCreateRedirect(oldPath, newPath, true)
	if err != nil {
		return err
	}
	if created {
		rg.report.Redirects++
	}
	return nil
}

// buildPermalink substitutes the permalink template placeholders
// (%postname%, %year%, %monthnum%, %day%) to reconstruct the legacy
// path of one post. Unknown placeholders are dropped.
func buildPermalink(structure, slug, date string) string {
	if structure == "" {
		return ""
	}
	url := strings.ReplaceAll(structure, "%postname%", slug)

	t := parseWPDatetime(date)
	if t == nil && len(date) >= 10 {
		if parsed, err := time.Parse("2006-01-02", date[:10]); err == nil {
			t = &parsed
		}
	}
	if t != nil {
		url = strings.ReplaceAll(url, "%year%", t.Format("2006"))
		url = strings.ReplaceAll(url, "%monthnum%", t.Format("01"))
		url = strings.ReplaceAll(url, "%day%", t.Format("02"))
	}

	return permalinkTagRe.ReplaceAllString(url, "")
}
