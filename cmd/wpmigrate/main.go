package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asso-refuge/wpmigrate/internal/config"
	"github.com/asso-refuge/wpmigrate/internal/importer"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wpmigrate",
	Short: "WordPress migration tool - import a SQL dump into the content repository",
	Long: `wpmigrate imports a WordPress SQL dump into the normalized content
repository: users, categories, tags, posts, pages, media, comments,
menus and redirects. Reruns are idempotent; every WordPress entity is
matched by its legacy id.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var (
	configFileFlag  string
	siteURLFlag     string
	dbDriverFlag    string
	dbDSNFlag       string
	mediaDirFlag    string
	reportFlag      string
	dryRunFlag      bool
	flushFlag       bool
	skipPluginsFlag bool
)

var importCmd = &cobra.Command{
	Use:   "import <dump.sql>",
	Short: "Import a WordPress SQL dump",
	Long: `Import parses the dump, imports every supported entity into the
target database and prints a run report. Pass --dry-run to see what
the dump contains without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dump.sql>",
	Short: "Analyze a WordPress SQL dump without importing",
	Long: `Analyze parses the dump and reports the detected table prefix, the
core table row counts and any plugin tables. No database is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Delete all previously imported content",
	Long: `Flush removes every imported row from the target database, children
first so foreign keys stay satisfied.`,
	RunE: runFlush,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wpmigrate %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "Path to config file (default: ./wpmigrate.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbDriverFlag, "db-driver", "", "Database driver: sqlite3, mysql or postgres")
	rootCmd.PersistentFlags().StringVar(&dbDSNFlag, "db-dsn", "", "Database connection string")

	importCmd.Flags().StringVar(&siteURLFlag, "site-url", "", "Legacy site URL (default: siteurl option from the dump)")
	importCmd.Flags().StringVar(&mediaDirFlag, "media-dir", "", "wp-content/uploads directory to copy into the media root")
	importCmd.Flags().StringVar(&reportFlag, "report", "", "Report format: text, json or yaml")
	importCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Parse and report only, write nothing")
	importCmd.Flags().BoolVar(&flushFlag, "flush", false, "Delete previously imported content before importing")
	importCmd.Flags().BoolVar(&skipPluginsFlag, "skip-plugins", false, "Skip plugin table import")

	analyzeCmd.Flags().StringVar(&reportFlag, "report", "", "Report format: text, json or yaml")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(flushCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFileFlag)
	if err != nil {
		return nil, err
	}
	if dbDriverFlag != "" {
		cfg.Database.Driver = dbDriverFlag
	}
	if dbDSNFlag != "" {
		cfg.Database.DSN = dbDSNFlag
	}
	if siteURLFlag != "" {
		cfg.Site.URL = siteURLFlag
	}
	if mediaDirFlag != "" {
		cfg.Media.UploadsDir = mediaDirFlag
	}
	if reportFlag != "" {
		cfg.Import.Report = reportFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dump, err := sqldump.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	var st *store.Store
	if !dryRunFlag {
		st, err = store.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()
	}

	runner := importer.New(dump, st, importer.Options{
		SiteURL:     cfg.Site.URL,
		MediaBase:   cfg.Media.Base,
		MediaRoot:   cfg.Media.Root,
		MediaDir:    cfg.Media.UploadsDir,
		SkipPlugins: skipPluginsFlag || cfg.Import.SkipPlugins,
		Flush:       flushFlag || cfg.Import.Flush,
		DryRun:      dryRunFlag,
	})

	report, err := runner.Run()
	if err != nil {
		return err
	}
	return printReport(report, cfg.Import.Report)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dump, err := sqldump.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	runner := importer.New(dump, nil, importer.Options{DryRun: true})
	report, err := runner.Run()
	if err != nil {
		return err
	}
	format := cfg.Import.Report
	if reportFlag != "" {
		format = reportFlag
	}
	return printReport(report, format)
}

func runFlush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	deleted, err := st.Flush()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	total := 0
	for table, n := range deleted {
		if n > 0 {
			fmt.Printf("  %s: %d rows deleted\n", table, n)
		}
		total += n
	}
	fmt.Printf("Flushed %d rows.\n", total)
	return nil
}

func printReport(report *importer.Report, format string) error {
	switch format {
	case "json":
		out, err := report.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := report.YAML()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		fmt.Print(report.Text())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
