package importer

import (
	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// TaxonomyImporter imports wp_terms/wp_term_taxonomy rows into
// categories and tags. Category parents are wired in a second pass so
// forward references to not-yet-created siblings resolve.
type TaxonomyImporter struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report
}

type taxEntry struct {
	termTaxonomyID int
	termID         int
	taxonomy       string
	description    string
	parent         int
}

// Run creates all categories and tags and returns their legacy-id maps.
func (ti *TaxonomyImporter) Run() (map[int]*models.Category, map[int]*models.Tag, error) {
	type termData struct{ name, slug string }
	terms := make(map[int]termData)
	for _, row := range ti.dump.GetTable("terms").Rows {
		terms[row.Int("term_id")] = termData{
			name: row.String("name"),
			slug: CleanWPSlug(row.String("slug")),
		}
	}

	var entries []taxEntry
	for _, row := range ti.dump.GetTable("term_taxonomy").Rows {
		entries = append(entries, taxEntry{
			termTaxonomyID: row.Int("term_taxonomy_id"),
			termID:         row.Int("term_id"),
			taxonomy:       row.String("taxonomy"),
			description:    row.String("description"),
			parent:         row.Int("parent"),
		})
	}

	catMap := make(map[int]*models.Category)
	tagMap := make(map[int]*models.Tag)
	usedCatSlugs := make(map[string]bool)
	usedTagSlugs := make(map[string]bool)

	for _, entry := range entries {
		data := terms[entry.termID]
		if data.name == "" {
			continue
		}
		slug := data.slug
		if slug == "" {
			slug = Slugify(data.name)
		}

		switch entry.taxonomy {
		case "category":
			slug, err := uniqueSlug(slug, usedCatSlugs, func(s string) (bool, error) {
				return ti.store.SlugExists("categories", s)
			})
			if err != nil {
				return nil, nil, err
			}
			cat, created, err := ti.store.GetOrCreateCategory(entry.termID, &models.Category{
				Name: data.name, Slug: slug, Description: entry.description,
			})
			if err != nil {
				return nil, nil, err
			}
			if created {
				usedCatSlugs[slug] = true
			}
			catMap[entry.termID] = cat

		case "post_tag":
			slug, err := uniqueSlug(slug, usedTagSlugs, func(s string) (bool, error) {
				return ti.store.SlugExists("tags", s)
			})
			if err != nil {
				return nil, nil, err
			}
			tag, created, err := ti.store.GetOrCreateTag(entry.termID, &models.Tag{
				Name: data.name, Slug: slug, Description: entry.description,
			})
			if err != nil {
				return nil, nil, err
			}
			if created {
				usedTagSlugs[slug] = true
			}
			tagMap[entry.termID] = tag
		}
	}

	// Second pass: parents, only between categories created this run.
	for _, entry := range entries {
		if entry.taxonomy != "category" || entry.parent == 0 {
			continue
		}
		child, okChild := catMap[entry.termID]
		parent, okParent := catMap[entry.parent]
		if !okChild || !okParent {
			continue
		}
		if err := ti.store.UpdateCategory(child.ID, map[string]any{"parent_id": parent.ID}); err != nil {
			return nil, nil, err
		}
	}

	ti.report.Categories = len(catMap)
	ti.report.Tags = len(tagMap)
	return catMap, tagMap, nil
}
