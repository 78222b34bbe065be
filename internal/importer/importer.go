// Package importer orchestrates the migration of a parsed WordPress
// dump into the target content repository. Importers run in strict
// dependency order, each consuming the ID maps produced by earlier
// stages and returning its own; every create is idempotent per legacy
// id, so a rerun fills gaps instead of duplicating.
package importer

import (
	"fmt"
	"log"
	"time"

	"github.com/asso-refuge/wpmigrate/internal/content"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// Options controls one import run.
type Options struct {
	SiteURL     string // legacy site base URL, for link rewriting and old paths
	MediaBase   string // target media base path, e.g. "/media/"
	MediaRoot   string // filesystem root the media base serves from
	MediaDir    string // optional wp-content/uploads directory to bulk-copy
	SkipPlugins bool
	Flush       bool
	DryRun      bool
}

// Runner sequences the import pipeline.
type Runner struct {
	dump   *sqldump.Dump
	store  *store.Store
	opts   Options
	proc   *content.Processor
	report *Report
}

// New builds a runner. The store may be nil for dry runs.
func New(dump *sqldump.Dump, st *store.Store, opts Options) *Runner {
	siteURL := opts.SiteURL
	if siteURL == "" {
		siteURL = dump.Option("siteurl")
	}
	return &Runner{
		dump:  dump,
		store: st,
		opts:  opts,
		proc:  content.NewProcessor(siteURL, opts.MediaBase),
	}
}

// Run executes the full pipeline and returns the run report. A dry run
// stops after dump analysis and reports counts without writing.
func (r *Runner) Run() (*Report, error) {
	report := newReport(r.dump, r.opts.DryRun)
	r.report = report

	if r.opts.DryRun {
		log.Printf("dry run: dump analyzed, nothing imported")
		return report, nil
	}
	if r.store == nil {
		return nil, fmt.Errorf("importer: no store configured")
	}

	if r.opts.Flush {
		log.Printf("flushing previously imported data")
		deleted, err := r.store.Flush()
		if err != nil {
			return report, fmt.Errorf("flush: %w", err)
		}
		for table, n := range deleted {
			if n > 0 {
				log.Printf("  deleted %d from %s", n, table)
			}
		}
	}

	log.Printf("[1/7] importing users")
	users := &UserImporter{dump: r.dump, store: r.store, report: report}
	userMap, err := users.Run()
	if err != nil {
		return report, fmt.Errorf("users: %w", err)
	}

	log.Printf("[2/7] importing categories and tags")
	taxonomies := &TaxonomyImporter{dump: r.dump, store: r.store, report: report}
	catMap, tagMap, err := taxonomies.Run()
	if err != nil {
		return report, fmt.Errorf("taxonomies: %w", err)
	}

	log.Printf("[3/7] importing posts, pages and media")
	contents := &ContentImporter{
		dump: r.dump, store: r.store, report: report, proc: r.proc,
		userMap: userMap, catMap: catMap, tagMap: tagMap,
	}
	postMap, pageMap, _, err := contents.Run()
	if err != nil {
		return report, fmt.Errorf("content: %w", err)
	}

	log.Printf("[4/7] importing comments")
	comments := &CommentImporter{dump: r.dump, store: r.store, report: report, postMap: postMap}
	if _, err := comments.Run(); err != nil {
		return report, fmt.Errorf("comments: %w", err)
	}

	log.Printf("[5/7] importing menus")
	menus := &MenuImporter{
		dump: r.dump, store: r.store, report: report,
		postMap: postMap, pageMap: pageMap, catMap: catMap,
	}
	if err := menus.Run(); err != nil {
		return report, fmt.Errorf("menus: %w", err)
	}

	if !r.opts.SkipPlugins {
		log.Printf("[6/7] importing plugin data")
		plugins := &PluginDataImporter{
			dump: r.dump, store: r.store, report: report,
			postMap: postMap, pageMap: pageMap,
		}
		if err := plugins.Run(); err != nil {
			return report, fmt.Errorf("plugin data: %w", err)
		}
	} else {
		log.Printf("[6/7] plugin data skipped")
	}

	log.Printf("[7/7] rewriting content and generating redirects")
	if err := r.processAllContent(); err != nil {
		return report, fmt.Errorf("content rewrite: %w", err)
	}
	redirects := &RedirectGenerator{
		dump: r.dump, store: r.store, report: report,
		postMap: postMap, pageMap: pageMap, catMap: catMap, tagMap: tagMap,
	}
	if err := redirects.Run(); err != nil {
		return report, fmt.Errorf("redirects: %w", err)
	}

	if r.opts.MediaDir != "" {
		n, err := r.copyMedia(r.opts.MediaDir)
		if err != nil {
			report.Warn("media copy: %v", err)
		} else {
			report.MediaFilesCopied = n
		}
	}

	return report, nil
}

// processAllContent runs the content transformer over every stored
// post and page body, persisting only actual changes.
func (r *Runner) processAllContent() error {
	posts, err := r.store.ListPosts()
	if err != nil {
		return err
	}
	for _, post := range posts {
		if rewritten := r.proc.Process(post.Content); rewritten != post.Content {
			if err := r.store.UpdatePost(post.ID, map[string]any{"content": rewritten}); err != nil {
				return err
			}
			r.report.ContentRewritten++
		}
	}
	pages, err := r.store.ListPages()
	if err != nil {
		return err
	}
	for _, page := range pages {
		if rewritten := r.proc.Process(page.Content); rewritten != page.Content {
			if err := r.store.UpdatePage(page.ID, map[string]any{"content": rewritten}); err != nil {
				return err
			}
			r.report.ContentRewritten++
		}
	}
	return nil
}

// parseWPDatetime parses WordPress "2006-01-02 15:04:05" timestamps.
// The zero sentinel and anything unparsable yield nil.
func parseWPDatetime(value string) *time.Time {
	if value == "" || value == "0000-00-00 00:00:00" {
		return nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return nil
	}
	return &t
}
