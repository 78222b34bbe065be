package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asso-refuge/wpmigrate/internal/models"
)

// GetOrCreateCategory imports a category term once per legacy term id.
func (s *Store) GetOrCreateCategory(wpTermID int, defaults *models.Category) (*models.Category, bool, error) {
	var existing models.Category
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM categories WHERE wp_term_id = ?"), wpTermID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup category %d: %w", wpTermID, err)
	}

	id, err := s.insert(`INSERT INTO categories (name, slug, description, wp_term_id) VALUES (?, ?, ?, ?)`,
		defaults.Name, defaults.Slug, defaults.Description, wpTermID)
	if err != nil {
		return nil, false, fmt.Errorf("create category %d: %w", wpTermID, err)
	}
	created := *defaults
	created.ID = id
	created.WPTermID = wpTermID
	return &created, true, nil
}

// GetOrCreateTag imports a tag term once per legacy term id.
func (s *Store) GetOrCreateTag(wpTermID int, defaults *models.Tag) (*models.Tag, bool, error) {
	var existing models.Tag
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM tags WHERE wp_term_id = ?"), wpTermID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup tag %d: %w", wpTermID, err)
	}

	id, err := s.insert(`INSERT INTO tags (name, slug, description, wp_term_id) VALUES (?, ?, ?, ?)`,
		defaults.Name, defaults.Slug, defaults.Description, wpTermID)
	if err != nil {
		return nil, false, fmt.Errorf("create tag %d: %w", wpTermID, err)
	}
	created := *defaults
	created.ID = id
	created.WPTermID = wpTermID
	return &created, true, nil
}

// UpdateCategory applies a column->value map to a category row.
func (s *Store) UpdateCategory(id int64, fields map[string]any) error {
	return s.update("categories", id, fields)
}

// GetOrCreateMenu imports a navigation menu once per legacy term id.
func (s *Store) GetOrCreateMenu(wpTermID int, defaults *models.Menu) (*models.Menu, bool, error) {
	var existing models.Menu
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM menus WHERE wp_term_id = ?"), wpTermID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup menu %d: %w", wpTermID, err)
	}

	id, err := s.insert(`INSERT INTO menus (name, slug, wp_term_id) VALUES (?, ?, ?)`,
		defaults.Name, defaults.Slug, wpTermID)
	if err != nil {
		return nil, false, fmt.Errorf("create menu %d: %w", wpTermID, err)
	}
	created := *defaults
	created.ID = id
	created.WPTermID = wpTermID
	return &created, true, nil
}

// GetOrCreateMenuItem imports a menu entry once per legacy post id.
func (s *Store) GetOrCreateMenuItem(wpPostID int, defaults *models.MenuItem) (*models.MenuItem, bool, error) {
	var existing models.MenuItem
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM menu_items WHERE wp_post_id = ?"), wpPostID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup menu item %d: %w", wpPostID, err)
	}

	id, err := s.insert(`INSERT INTO menu_items
		(menu_id, title, url, target, css_classes, position, content_type, object_id,
		 linked_post_id, linked_page_id, linked_category_id, wp_post_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		defaults.MenuID, defaults.Title, defaults.URL, defaults.Target, defaults.CSSClasses,
		defaults.Position, defaults.ContentType, defaults.ObjectID,
		defaults.LinkedPostID, defaults.LinkedPageID, defaults.LinkedCategoryID, wpPostID)
	if err != nil {
		return nil, false, fmt.Errorf("create menu item %d: %w", wpPostID, err)
	}
	created := *defaults
	created.ID = id
	created.WPPostID = wpPostID
	return &created, true, nil
}

// ListMenuItems returns all menu items ordered by position.
func (s *Store) ListMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Select(&items, "SELECT * FROM menu_items ORDER BY position, id"); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// UpdateMenuItem applies a column->value map to a menu item row.
func (s *Store) UpdateMenuItem(id int64, fields map[string]any) error {
	return s.update("menu_items", id, fields)
}
