package sqldump

import (
	"sort"
	"strings"
)

// knownPlugins maps a plugin identifier to the table-name prefixes it is
// known to create (after the site prefix). Best effort; unmatched tables
// land in the "unknown" bucket.
var knownPlugins = map[string][]string{
	"woocommerce":    {"woocommerce_", "wc_"},
	"yoast_seo":      {"yoast_", "yoast_seo_"},
	"acf":            {"acf_"},
	"contact_form_7": {"cf7_", "contact_form_"},
	"wpforms":        {"wpforms_"},
	"gravity_forms":  {"gf_", "rg_"},
	"elementor":      {"elementor_"},
	"wpseo":          {"wpseo_"},
	"redirection":    {"redirection_"},
	"wordfence": {
		"wfls_", "wfblockediplog", "wfconfig", "wfcrawlers",
		"wffilechanges", "wfhits", "wfhoover", "wfissues",
		"wfknownfilelist", "wflivetraffichuman", "wflocs",
		"wflogins", "wfnotifications", "wfpendingissues",
		"wfreversecache", "wfsnipcache", "wfstatus",
		"wftrafficrates",
	},
	"wpml":     {"icl_"},
	"polylang": {"term_language", "term_translations"},
}

// PluginTables groups every non-core prefixed table by the plugin it
// appears to belong to. Table names within a plugin are sorted for
// stable reporting.
func (d *Dump) PluginTables() map[string][]string {
	core := make(map[string]bool, len(CoreSuffixes))
	for _, s := range CoreSuffixes {
		core[d.Prefix+s] = true
	}

	plugins := make(map[string][]string)
	for name := range d.Tables {
		if core[name] || !strings.HasPrefix(name, d.Prefix) {
			continue
		}
		plugin := identifyPlugin(name[len(d.Prefix):])
		plugins[plugin] = append(plugins[plugin], name)
	}
	for _, names := range plugins {
		sort.Strings(names)
	}
	return plugins
}

func identifyPlugin(suffix string) string {
	for plugin, prefixes := range knownPlugins {
		for _, p := range prefixes {
			if strings.HasPrefix(suffix, p) {
				return plugin
			}
		}
	}
	return "unknown"
}
