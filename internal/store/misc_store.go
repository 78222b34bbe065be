package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asso-refuge/wpmigrate/internal/models"
)

// GetOrCreateUser imports an author once per legacy user id. A user
// with the same username but no legacy id (e.g. created by hand in the
// target system) is reused rather than duplicated.
func (s *Store) GetOrCreateUser(wpUserID int, defaults *models.User) (*models.User, bool, error) {
	var existing models.User
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM users WHERE wp_user_id = ?"), wpUserID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup user %d: %w", wpUserID, err)
	}

	err = s.db.Get(&existing, s.db.Rebind("SELECT * FROM users WHERE username = ?"), defaults.Username)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup user %q: %w", defaults.Username, err)
	}

	id, err := s.insert(`INSERT INTO users
		(username, email, first_name, last_name, display_name, wp_user_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		defaults.Username, defaults.Email, defaults.FirstName, defaults.LastName, defaults.DisplayName, wpUserID)
	if err != nil {
		return nil, false, fmt.Errorf("create user %d: %w", wpUserID, err)
	}
	created := *defaults
	created.ID = id
	created.WPUserID = wpUserID
	return &created, true, nil
}

// GetOrCreateComment imports a comment once per legacy comment id.
func (s *Store) GetOrCreateComment(wpCommentID int, defaults *models.Comment) (*models.Comment, bool, error) {
	var existing models.Comment
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM comments WHERE wp_comment_id = ?"), wpCommentID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup comment %d: %w", wpCommentID, err)
	}

	id, err := s.insert(`INSERT INTO comments
		(post_id, author_name, author_email, author_url, content, status, created_at, wp_comment_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		defaults.PostID, defaults.AuthorName, defaults.AuthorEmail, defaults.AuthorURL,
		defaults.Content, defaults.Status, defaults.CreatedAt, wpCommentID)
	if err != nil {
		return nil, false, fmt.Errorf("create comment %d: %w", wpCommentID, err)
	}
	created := *defaults
	created.ID = id
	created.WPCommentID = wpCommentID
	return &created, true, nil
}

// UpdateComment applies a column->value map to a comment row.
func (s *Store) UpdateComment(id int64, fields map[string]any) error {
	return s.update("comments", id, fields)
}

// GetOrCreateRedirect records a redirect keyed by its old path.
func (s *Store) GetOrCreateRedirect(oldPath, newPath string, permanent bool) (*models.Redirect, bool, error) {
	var existing models.Redirect
	err := s.db.Get(&existing, s.db.Rebind("SELECT * FROM redirects WHERE old_path = ?"), oldPath)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup redirect %q: %w", oldPath, err)
	}

	id, err := s.insert(`INSERT INTO redirects (old_path, new_path, is_permanent) VALUES (?, ?, ?)`,
		oldPath, newPath, permanent)
	if err != nil {
		return nil, false, fmt.Errorf("create redirect %q: %w", oldPath, err)
	}
	return &models.Redirect{ID: id, OldPath: oldPath, NewPath: newPath, IsPermanent: permanent}, true, nil
}

// FindRedirect returns the redirect for an old path, or nil when none
// was recorded.
func (s *Store) FindRedirect(oldPath string) (*models.Redirect, error) {
	var r models.Redirect
	err := s.db.Get(&r, s.db.Rebind("SELECT * FROM redirects WHERE old_path = ?"), oldPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find redirect %q: %w", oldPath, err)
	}
	return &r, nil
}

// AddPluginData appends one opaque plugin row. Plugin rows carry no
// usable external id, so re-imports first flush the plugin_data table.
func (s *Store) AddPluginData(d *models.PluginData) error {
	id, err := s.insert(`INSERT INTO plugin_data
		(plugin_name, source_table, data, post_id, page_id)
		VALUES (?, ?, ?, ?, ?)`,
		d.PluginName, d.SourceTable, d.Data, d.PostID, d.PageID)
	if err != nil {
		return fmt.Errorf("add plugin data: %w", err)
	}
	d.ID = id
	return nil
}

// DeleteAllPluginData clears the plugin_data table before a re-import.
func (s *Store) DeleteAllPluginData() error {
	if _, err := s.db.Exec("DELETE FROM plugin_data"); err != nil {
		return fmt.Errorf("clear plugin data: %w", err)
	}
	return nil
}
