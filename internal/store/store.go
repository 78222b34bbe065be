// Package store is the content repository the importers write into.
// Every create goes through get-or-create keyed by the legacy
// WordPress id, so re-running an import never duplicates entities.
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Store wraps the target database connection.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the target database and, for SQLite targets,
// bootstraps the schema.
func Open(driver, dsn string) (*Store, error) {
	if err := ValidateDriver(driver); err != nil {
		return nil, err
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	s := &Store{db: db, driver: driver}
	if driver == DriverSQLite {
		if _, err := db.Exec(schemaDDL); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error { return s.db.Close() }

// insert runs an INSERT and returns the new row id, papering over the
// LastInsertId / RETURNING split between drivers.
func (s *Store) insert(query string, args ...any) (int64, error) {
	query = s.db.Rebind(query)
	if s.driver == DriverPostgres {
		var id int64
		if err := s.db.QueryRowx(query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// update applies a column->value map to one row. Column names come from
// importer code, never from dump input.
func (s *Store) update(table string, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		sets = append(sets, col+" = ?")
		args = append(args, fields[col])
	}
	args = append(args, id)
	query := s.db.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")))
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("update %s %d: %w", table, id, err)
	}
	return nil
}

// SlugExists reports whether a slug is already taken in the given table.
func (s *Store) SlugExists(table, slug string) (bool, error) {
	var n int
	query := s.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE slug = ?", table))
	if err := s.db.Get(&n, query, slug); err != nil {
		return false, fmt.Errorf("slug probe %s: %w", table, err)
	}
	return n > 0, nil
}

// Count returns the number of rows in a table.
func (s *Store) Count(table string) (int, error) {
	var n int
	if err := s.db.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// flushOrder deletes children before parents so foreign keys hold.
var flushOrder = []string{
	"plugin_data", "redirects", "menu_items", "menus",
	"gallery_images", "comments", "post_categories", "post_tags",
	"posts", "pages", "media", "tags", "categories", "users",
}

// Flush deletes every previously imported entity. It runs to completion
// before any creation stage starts.
func (s *Store) Flush() (map[string]int, error) {
	deleted := make(map[string]int, len(flushOrder))
	for _, table := range flushOrder {
		n, err := s.Count(table)
		if err != nil {
			return deleted, err
		}
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return deleted, fmt.Errorf("flush %s: %w", table, err)
		}
		deleted[table] = n
	}
	return deleted, nil
}
