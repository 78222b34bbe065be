package importer

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/asso-refuge/wpmigrate/internal/animal"
	"github.com/asso-refuge/wpmigrate/internal/content"
	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// ContentImporter imports wp_posts rows: attachments first (so
// featured-image references can resolve), then articles and pages.
// Page parents and featured images are wired in later passes over the
// completed ID maps.
type ContentImporter struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report
	proc   *content.Processor

	userMap map[int]*models.User
	catMap  map[int]*models.Category
	tagMap  map[int]*models.Tag
}

var guidUploadRe = regexp.MustCompile(`/wp-content/uploads/(.+)$`)

// Run imports all content rows and returns the post, page and media maps.
func (ci *ContentImporter) Run() (map[int]*models.Post, map[int]*models.Page, map[int]*models.Media, error) {
	postmeta := metaLookup(ci.dump.GetTable("postmeta"), "post_id")
	relMap, taxLookup := ci.termRelationships()

	rows := make([]sqldump.Row, len(ci.dump.GetTable("posts").Rows))
	copy(rows, ci.dump.GetTable("posts").Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].String("post_type") == "attachment" && rows[j].String("post_type") != "attachment"
	})

	postMap := make(map[int]*models.Post)
	pageMap := make(map[int]*models.Page)
	mediaMap := make(map[int]*models.Media)
	usedPostSlugs := make(map[string]bool)
	usedPageSlugs := make(map[string]bool)

	for _, row := range rows {
		wpID := row.Int("ID")
		meta := postmeta[wpID]

		switch row.String("post_type") {
		case "attachment":
			media, err := ci.importAttachment(wpID, row, meta)
			if err != nil {
				return nil, nil, nil, err
			}
			mediaMap[wpID] = media

		case "post":
			post, err := ci.importPost(wpID, row, meta, usedPostSlugs, relMap[wpID], taxLookup)
			if err != nil {
				return nil, nil, nil, err
			}
			postMap[wpID] = post

		case "page":
			page, err := ci.importPage(wpID, row, meta, usedPageSlugs)
			if err != nil {
				return nil, nil, nil, err
			}
			pageMap[wpID] = page

		case "nav_menu_item":
			// Handled by MenuImporter.
		default:
			// Revisions, auto-drafts and custom post types are skipped.
		}
	}

	if err := ci.setPageParents(pageMap); err != nil {
		return nil, nil, nil, err
	}
	if err := ci.setFeaturedImages(postMap, mediaMap, postmeta); err != nil {
		return nil, nil, nil, err
	}

	ci.report.Posts = len(postMap)
	ci.report.Pages = len(pageMap)
	ci.report.Media = len(mediaMap)
	return postMap, pageMap, mediaMap, nil
}

func (ci *ContentImporter) termRelationships() (map[int][]int, map[int]taxEntry) {
	taxLookup := make(map[int]taxEntry)
	for _, row := range ci.dump.GetTable("term_taxonomy").Rows {
		ttid := row.Int("term_taxonomy_id")
		taxLookup[ttid] = taxEntry{
			termTaxonomyID: ttid,
			termID:         row.Int("term_id"),
			taxonomy:       row.String("taxonomy"),
		}
	}
	relMap := make(map[int][]int)
	for _, row := range ci.dump.GetTable("term_relationships").Rows {
		oid := row.Int("object_id")
		relMap[oid] = append(relMap[oid], row.Int("term_taxonomy_id"))
	}
	return relMap, taxLookup
}

func (ci *ContentImporter) importAttachment(wpID int, row sqldump.Row, meta map[string]string) (*models.Media, error) {
	guid := row.String("guid")
	file := meta["_wp_attached_file"]
	if file == "" && guid != "" {
		if m := guidUploadRe.FindStringSubmatch(guid); m != nil {
			file = m[1]
		}
	}
	if file != "" {
		file = "uploads/" + file
	}
	media, _, err := ci.store.GetOrCreateMedia(wpID, &models.Media{
		Title:       row.String("post_title"),
		File:        file,
		AltText:     meta["_wp_attachment_image_alt"],
		MimeType:    row.String("post_mime_type"),
		OriginalURL: guid,
	})
	return media, err
}

func (ci *ContentImporter) importPost(wpID int, row sqldump.Row, meta map[string]string,
	usedSlugs map[string]bool, ttids []int, taxLookup map[int]taxEntry) (*models.Post, error) {

	title := row.String("post_title")
	slug := CleanWPSlug(row.String("post_name"))
	if slug == "" {
		slug = Slugify(title)
	}
	slug, err := uniqueSlug(slug, usedSlugs, func(s string) (bool, error) {
		return ci.store.SlugExists("posts", s)
	})
	if err != nil {
		return nil, err
	}

	authorID := ci.resolveAuthor(wpID, row)

	post, created, err := ci.store.GetOrCreatePost(wpID, &models.Post{
		Title:          title,
		Slug:           slug,
		Content:        row.String("post_content"),
		Excerpt:        row.String("post_excerpt"),
		Status:         models.MapPostStatus(row.String("post_status")),
		AuthorID:       authorID,
		PublishedAt:    parseWPDatetime(row.String("post_date")),
		SEOTitle:       firstNonEmpty(meta["_yoast_wpseo_title"], meta["rank_math_title"]),
		SEODescription: firstNonEmpty(meta["_yoast_wpseo_metadesc"], meta["rank_math_description"]),
	})
	if err != nil {
		return nil, err
	}
	if created {
		usedSlugs[slug] = true
	}

	// Categories and tags attach on every run; the join inserts are
	// duplicate-safe.
	var categoryNames []string
	for _, ttid := range ttids {
		tax := taxLookup[ttid]
		switch tax.taxonomy {
		case "category":
			if cat, ok := ci.catMap[tax.termID]; ok {
				if err := ci.store.AttachCategory(post.ID, cat.ID); err != nil {
					return nil, err
				}
				categoryNames = append(categoryNames, cat.Name)
			}
		case "post_tag":
			if tag, ok := ci.tagMap[tax.termID]; ok {
				if err := ci.store.AttachTag(post.ID, tag.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	if created {
		if err := ci.extractProfile(post, meta, categoryNames); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// extractProfile mines animal attributes out of a newly created post
// and strips the matched declarative lines from its body.
func (ci *ContentImporter) extractProfile(post *models.Post, meta map[string]string, categoryNames []string) error {
	profile, cleaned := animal.Extract(post.Content, post.Excerpt, meta, categoryNames)
	if profile.IsEmpty() {
		return nil
	}

	name := profile.Name
	if name == "" {
		name = post.Title
	}
	fields := map[string]any{
		"animal_name":    name,
		"species":        profile.Species,
		"breed":          profile.Breed,
		"sex":            profile.Sex,
		"birth_date":     profile.BirthDate,
		"weight_kg":      profile.WeightKg,
		"identification": profile.Identification,
		"is_vaccinated":  profile.IsVaccinated,
		"is_sterilized":  profile.IsSterilized,
		"foster_family":  profile.FosterFamily,
	}
	if cleaned != post.Content {
		fields["content"] = cleaned
		post.Content = cleaned
	}
	if err := ci.store.UpdatePost(post.ID, fields); err != nil {
		return err
	}
	ci.report.AnimalProfiles++
	return nil
}

func (ci *ContentImporter) importPage(wpID int, row sqldump.Row, meta map[string]string,
	usedSlugs map[string]bool) (*models.Page, error) {

	title := row.String("post_title")
	slug := CleanWPSlug(row.String("post_name"))
	if slug == "" {
		slug = Slugify(title)
	}
	slug, err := uniqueSlug(slug, usedSlugs, func(s string) (bool, error) {
		return ci.store.SlugExists("pages", s)
	})
	if err != nil {
		return nil, err
	}

	template := meta["_wp_page_template"]
	if template == "default" {
		template = ""
	}

	page, created, err := ci.store.GetOrCreatePage(wpID, &models.Page{
		Title:          title,
		Slug:           slug,
		Content:        row.String("post_content"),
		Status:         models.MapPostStatus(row.String("post_status")),
		AuthorID:       ci.resolveAuthor(wpID, row),
		MenuOrder:      row.Int("menu_order"),
		Template:       template,
		PublishedAt:    parseWPDatetime(row.String("post_date")),
		SEOTitle:       firstNonEmpty(meta["_yoast_wpseo_title"], meta["rank_math_title"]),
		SEODescription: firstNonEmpty(meta["_yoast_wpseo_metadesc"], meta["rank_math_description"]),
	})
	if err != nil {
		return nil, err
	}
	if created {
		usedSlugs[slug] = true
	}
	return page, nil
}

// resolveAuthor maps the legacy author id, warning once per miss.
func (ci *ContentImporter) resolveAuthor(wpID int, row sqldump.Row) *int64 {
	authorWPID := row.Int("post_author")
	if authorWPID == 0 {
		return nil
	}
	user, ok := ci.userMap[authorWPID]
	if !ok {
		ci.report.Warn("post %d references missing author %d", wpID, authorWPID)
		return nil
	}
	return &user.ID
}

// setPageParents is the second pass over pages, once all exist.
func (ci *ContentImporter) setPageParents(pageMap map[int]*models.Page) error {
	for _, row := range ci.dump.GetTable("posts").Rows {
		if row.String("post_type") != "page" {
			continue
		}
		wpID := row.Int("ID")
		parentID := row.Int("post_parent")
		if parentID == 0 {
			continue
		}
		child, okChild := pageMap[wpID]
		parent, okParent := pageMap[parentID]
		if !okChild || !okParent {
			continue
		}
		if err := ci.store.UpdatePage(child.ID, map[string]any{"parent_id": parent.ID}); err != nil {
			return err
		}
	}
	return nil
}

// setFeaturedImages is the third pass: resolve _thumbnail_id references
// now that every attachment is known, then pull remaining body images
// into the gallery.
func (ci *ContentImporter) setFeaturedImages(postMap map[int]*models.Post, mediaMap map[int]*models.Media,
	postmeta map[int]map[string]string) error {

	for wpID, post := range postMap {
		var featured *models.Media
		if thumb := postmeta[wpID]["_thumbnail_id"]; thumb != "" {
			thumbID, err := strconv.Atoi(thumb)
			if err == nil {
				if media, ok := mediaMap[thumbID]; ok {
					featured = media
					if err := ci.store.UpdatePost(post.ID, map[string]any{"featured_media_id": media.ID}); err != nil {
						return err
					}
				} else {
					ci.report.Warn("post %d references missing attachment %d", wpID, thumbID)
				}
			}
		}
		if err := ci.extractGallery(post, featured); err != nil {
			return err
		}
	}
	return nil
}

// extractGallery removes upload images from the body and registers
// them as gallery entries, resolving each back to its media row by
// stored file path.
func (ci *ContentImporter) extractGallery(post *models.Post, featured *models.Media) error {
	featuredURL := ""
	if featured != nil {
		featuredURL = featured.OriginalURL
	}
	residual, images := ci.proc.ExtractImages(post.Content, featuredURL)
	if len(images) == 0 && residual == post.Content {
		return nil
	}

	position := 0
	for _, img := range images {
		rel := ci.proc.UploadRelPath(img.URL)
		if rel == "" {
			continue
		}
		media, err := ci.store.FindMediaByFile("uploads/" + rel)
		if err != nil {
			return err
		}
		if media == nil {
			ci.report.Warn("post %d gallery image %q has no media row", post.WPPostID, img.URL)
			continue
		}
		if err := ci.store.AddGalleryImage(post.ID, media.ID, position); err != nil {
			return err
		}
		position++
		ci.report.GalleryImages++
	}

	if residual != post.Content {
		if err := ci.store.UpdatePost(post.ID, map[string]any{"content": residual}); err != nil {
			return err
		}
		post.Content = residual
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
