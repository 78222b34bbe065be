package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asso-refuge/wpmigrate/internal/models"
)

// GetOrCreatePost looks a post up by its legacy id and creates it from
// defaults when absent. First write wins: an existing row keeps its
// stored attributes.
func (s *Store) GetOrCreatePost(wpID int, defaults *models.Post) (*models.Post, bool, error) {
	var existing models.Post
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM posts WHERE wp_post_id = ?"), wpID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup post %d: %w", wpID, err)
	}

	id, err := s.insert(`INSERT INTO posts
		(title, slug, content, excerpt, status, author_id, published_at, seo_title, seo_description, wp_post_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		defaults.Title, defaults.Slug, defaults.Content, defaults.Excerpt, defaults.Status,
		defaults.AuthorID, defaults.PublishedAt, defaults.SEOTitle, defaults.SEODescription, wpID)
	if err != nil {
		return nil, false, fmt.Errorf("create post %d: %w", wpID, err)
	}
	created := *defaults
	created.ID = id
	created.WPPostID = wpID
	return &created, true, nil
}

// GetOrCreatePage mirrors GetOrCreatePost for static pages.
func (s *Store) GetOrCreatePage(wpID int, defaults *models.Page) (*models.Page, bool, error) {
	var existing models.Page
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM pages WHERE wp_post_id = ?"), wpID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup page %d: %w", wpID, err)
	}

	id, err := s.insert(`INSERT INTO pages
		(title, slug, content, status, author_id, menu_order, template, published_at, seo_title, seo_description, wp_post_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		defaults.Title, defaults.Slug, defaults.Content, defaults.Status,
		defaults.AuthorID, defaults.MenuOrder, defaults.Template, defaults.PublishedAt,
		defaults.SEOTitle, defaults.SEODescription, wpID)
	if err != nil {
		return nil, false, fmt.Errorf("create page %d: %w", wpID, err)
	}
	created := *defaults
	created.ID = id
	created.WPPostID = wpID
	return &created, true, nil
}

// GetOrCreateMedia imports an attachment once per legacy id.
func (s *Store) GetOrCreateMedia(wpID int, defaults *models.Media) (*models.Media, bool, error) {
	var existing models.Media
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM media WHERE wp_post_id = ?"), wpID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup media %d: %w", wpID, err)
	}

	id, err := s.insert(`INSERT INTO media
		(title, file, alt_text, mime_type, original_url, wp_post_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		defaults.Title, defaults.File, defaults.AltText, defaults.MimeType, defaults.OriginalURL, wpID)
	if err != nil {
		return nil, false, fmt.Errorf("create media %d: %w", wpID, err)
	}
	created := *defaults
	created.ID = id
	created.WPPostID = wpID
	return &created, true, nil
}

// FindMediaByFile resolves a media asset by its stored file path.
func (s *Store) FindMediaByFile(file string) (*models.Media, error) {
	var m models.Media
	err := s.db.Get(&m, s.db.Rebind("SELECT * FROM media WHERE file = ?"), file)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by file: %w", err)
	}
	return &m, nil
}

// UpdatePost applies a column->value map to a post row.
func (s *Store) UpdatePost(id int64, fields map[string]any) error {
	return s.update("posts", id, fields)
}

// UpdatePage applies a column->value map to a page row.
func (s *Store) UpdatePage(id int64, fields map[string]any) error {
	return s.update("pages", id, fields)
}

// AttachCategory links a post to a category, ignoring duplicates.
func (s *Store) AttachCategory(postID, categoryID int64) error {
	return s.attach("post_categories", "category_id", postID, categoryID)
}

// AttachTag links a post to a tag, ignoring duplicates.
func (s *Store) AttachTag(postID, tagID int64) error {
	return s.attach("post_tags", "tag_id", postID, tagID)
}

func (s *Store) attach(table, col string, postID, otherID int64) error {
	var n int
	query := s.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE post_id = ? AND %s = ?", table, col))
	if err := s.db.Get(&n, query, postID, otherID); err != nil {
		return fmt.Errorf("probe %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	query = s.db.Rebind(fmt.Sprintf("INSERT INTO %s (post_id, %s) VALUES (?, ?)", table, col))
	if _, err := s.db.Exec(query, postID, otherID); err != nil {
		return fmt.Errorf("attach %s: %w", table, err)
	}
	return nil
}

// AddGalleryImage records an image extracted from a post body. The
// (post, media) pair is unique; duplicates are ignored.
func (s *Store) AddGalleryImage(postID, mediaID int64, position int) error {
	var n int
	query := s.db.Rebind("SELECT COUNT(*) FROM gallery_images WHERE post_id = ? AND media_id = ?")
	if err := s.db.Get(&n, query, postID, mediaID); err != nil {
		return fmt.Errorf("probe gallery: %w", err)
	}
	if n > 0 {
		return nil
	}
	query = s.db.Rebind("INSERT INTO gallery_images (post_id, media_id, position) VALUES (?, ?, ?)")
	if _, err := s.db.Exec(query, postID, mediaID, position); err != nil {
		return fmt.Errorf("add gallery image: %w", err)
	}
	return nil
}

// ListPosts returns all posts, used by the content rewrite pass.
func (s *Store) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Select(&posts, "SELECT * FROM posts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListPages returns all pages, used by the content rewrite pass.
func (s *Store) ListPages() ([]models.Page, error) {
	var pages []models.Page
	if err := s.db.Select(&pages, "SELECT * FROM pages ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}
