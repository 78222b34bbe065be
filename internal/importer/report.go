package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/asso-refuge/wpmigrate/internal/sqldump"
)

// PluginTableInfo summarizes one detected plugin table.
type PluginTableInfo struct {
	Table string `json:"table" yaml:"table"`
	Rows  int    `json:"rows" yaml:"rows"`
}

// Report is the structured summary of a run: what the dump contained
// and what the importers created. It is the only observable output of
// a dry run.
type Report struct {
	RunID        string                       `json:"run_id" yaml:"run_id"`
	DryRun       bool                         `json:"dry_run" yaml:"dry_run"`
	TablePrefix  string                       `json:"table_prefix" yaml:"table_prefix"`
	CoreTables   map[string]int               `json:"core_tables" yaml:"core_tables"`
	PluginTables map[string][]PluginTableInfo `json:"plugin_tables" yaml:"plugin_tables"`

	Users            int `json:"users" yaml:"users"`
	Categories       int `json:"categories" yaml:"categories"`
	Tags             int `json:"tags" yaml:"tags"`
	Posts            int `json:"posts" yaml:"posts"`
	Pages            int `json:"pages" yaml:"pages"`
	Media            int `json:"media" yaml:"media"`
	Comments         int `json:"comments" yaml:"comments"`
	Menus            int `json:"menus" yaml:"menus"`
	MenuItems        int `json:"menu_items" yaml:"menu_items"`
	PluginRows       int `json:"plugin_rows" yaml:"plugin_rows"`
	Redirects        int `json:"redirects" yaml:"redirects"`
	AnimalProfiles   int `json:"animal_profiles" yaml:"animal_profiles"`
	GalleryImages    int `json:"gallery_images" yaml:"gallery_images"`
	ContentRewritten int `json:"content_rewritten" yaml:"content_rewritten"`
	MediaFilesCopied int `json:"media_files_copied" yaml:"media_files_copied"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newReport(dump *sqldump.Dump, dryRun bool) *Report {
	r := &Report{
		RunID:        uuid.NewString(),
		DryRun:       dryRun,
		TablePrefix:  dump.Prefix,
		CoreTables:   make(map[string]int),
		PluginTables: make(map[string][]PluginTableInfo),
	}
	for _, suffix := range dump.CoreTables() {
		r.CoreTables[suffix] = len(dump.GetTable(suffix).Rows)
	}
	for plugin, tables := range dump.PluginTables() {
		for _, t := range tables {
			rows := 0
			if table, ok := dump.Tables[t]; ok {
				rows = len(table.Rows)
			}
			r.PluginTables[plugin] = append(r.PluginTables[plugin], PluginTableInfo{Table: t, Rows: rows})
		}
	}
	return r
}

// Warn records a non-fatal condition on the report.
func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// JSON renders the report for machine consumption.
func (r *Report) JSON() ([]byte, error) { return json.MarshalIndent(r, "", "  ") }

// YAML renders the report for machine consumption.
func (r *Report) YAML() ([]byte, error) { return yaml.Marshal(r) }

// Text renders the report for humans.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Import report (%s) ---\n", r.RunID)
	fmt.Fprintf(&b, "Table prefix: %s\n", r.TablePrefix)

	suffixes := make([]string, 0, len(r.CoreTables))
	for s := range r.CoreTables {
		suffixes = append(suffixes, s)
	}
	sort.Strings(suffixes)
	fmt.Fprintf(&b, "Core tables (%d):\n", len(suffixes))
	for _, s := range suffixes {
		fmt.Fprintf(&b, "  %s%s: %d rows\n", r.TablePrefix, s, r.CoreTables[s])
	}

	if len(r.PluginTables) > 0 {
		plugins := make([]string, 0, len(r.PluginTables))
		for p := range r.PluginTables {
			plugins = append(plugins, p)
		}
		sort.Strings(plugins)
		fmt.Fprintf(&b, "Plugin tables (%d plugins):\n", len(plugins))
		for _, p := range plugins {
			for _, t := range r.PluginTables[p] {
				fmt.Fprintf(&b, "  [%s] %s: %d rows\n", p, t.Table, t.Rows)
			}
		}
	} else {
		b.WriteString("No plugin tables detected.\n")
	}

	if r.DryRun {
		b.WriteString("Dry run: nothing imported.\n")
		return b.String()
	}

	b.WriteString("Imported:\n")
	fmt.Fprintf(&b, "  Users:       %d\n", r.Users)
	fmt.Fprintf(&b, "  Categories:  %d\n", r.Categories)
	fmt.Fprintf(&b, "  Tags:        %d\n", r.Tags)
	fmt.Fprintf(&b, "  Posts:       %d (%d animal profiles)\n", r.Posts, r.AnimalProfiles)
	fmt.Fprintf(&b, "  Pages:       %d\n", r.Pages)
	fmt.Fprintf(&b, "  Media:       %d\n", r.Media)
	fmt.Fprintf(&b, "  Comments:    %d\n", r.Comments)
	fmt.Fprintf(&b, "  Menus:       %d (%d items)\n", r.Menus, r.MenuItems)
	fmt.Fprintf(&b, "  Plugin rows: %d\n", r.PluginRows)
	fmt.Fprintf(&b, "  Redirects:   %d\n", r.Redirects)
	fmt.Fprintf(&b, "  Gallery:     %d images\n", r.GalleryImages)
	if r.MediaFilesCopied > 0 {
		fmt.Fprintf(&b, "  Media files copied: %d\n", r.MediaFilesCopied)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "Warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}
