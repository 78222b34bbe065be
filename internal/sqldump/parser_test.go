package sqldump

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `
-- WordPress dump
CREATE TABLE ` + "`wp_posts`" + ` (
  ` + "`ID`" + ` bigint(20) unsigned NOT NULL AUTO_INCREMENT,
  ` + "`post_title`" + ` text NOT NULL,
  ` + "`post_status`" + ` varchar(20) NOT NULL DEFAULT 'publish',
  PRIMARY KEY (` + "`ID`" + `),
  KEY ` + "`post_status`" + ` (` + "`post_status`" + `)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

INSERT INTO ` + "`wp_posts`" + ` VALUES (1,'Hello world','publish'),(2,'It\'s a test','draft');

CREATE TABLE ` + "`wp_options`" + ` (
  ` + "`option_id`" + ` bigint(20) unsigned NOT NULL AUTO_INCREMENT,
  ` + "`option_name`" + ` varchar(191) NOT NULL DEFAULT '',
  ` + "`option_value`" + ` longtext NOT NULL,
  PRIMARY KEY (` + "`option_id`" + `),
  UNIQUE KEY ` + "`option_name`" + ` (` + "`option_name`" + `)
) ENGINE=InnoDB;

INSERT INTO ` + "`wp_options`" + ` (` + "`option_id`" + `, ` + "`option_name`" + `, ` + "`option_value`" + `) VALUES (1,'siteurl','https://example.org'),(2,'blogname','Example');
`

func TestParseBytes(t *testing.T) {
	d, err := ParseBytes([]byte(sampleDump))
	require.NoError(t, err)

	t.Run("detects prefix", func(t *testing.T) {
		assert.Equal(t, "wp_", d.Prefix)
	})

	t.Run("index lines are not columns", func(t *testing.T) {
		posts := d.GetTable("posts")
		assert.Equal(t, []string{"ID", "post_title", "post_status"}, posts.Columns)
	})

	t.Run("rows keyed by declared columns", func(t *testing.T) {
		posts := d.GetTable("posts")
		require.Len(t, posts.Rows, 2)
		assert.Equal(t, int64(1), posts.Rows[0]["ID"])
		assert.Equal(t, "Hello world", posts.Rows[0]["post_title"])
	})

	t.Run("backslash escaped quote", func(t *testing.T) {
		posts := d.GetTable("posts")
		assert.Equal(t, "It's a test", posts.Rows[1]["post_title"])
	})

	t.Run("explicit column list", func(t *testing.T) {
		opts := d.GetTable("options")
		require.Len(t, opts.Rows, 2)
		assert.Equal(t, "siteurl", opts.Rows[0]["option_name"])
	})

	t.Run("option lookup", func(t *testing.T) {
		assert.Equal(t, "https://example.org", d.Option("siteurl"))
		assert.Equal(t, "", d.Option("does_not_exist"))
	})

	t.Run("core tables listed with data only", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"posts", "options"}, d.CoreTables())
	})
}

func TestParseBytesCustomPrefix(t *testing.T) {
	dump := "CREATE TABLE `site1_options` (\n  `option_id` bigint(20) NOT NULL\n) ENGINE=InnoDB;\n"
	d, err := ParseBytes([]byte(dump))
	require.NoError(t, err)
	assert.Equal(t, "site1_", d.Prefix)
}

func TestParseBytesNoStatements(t *testing.T) {
	_, err := ParseBytes([]byte("-- just a comment\nSET NAMES utf8;\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "no recognizable SQL statements")
}

func TestScanValues(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		want  []any
	}{
		{
			name: "null and numbers",
			sql:  "INSERT INTO `wp_t` VALUES (NULL, 42, 3.14, 'x');",
			want: []any{nil, int64(42), 3.14, "x"},
		},
		{
			name: "doubled quote escape",
			sql:  "INSERT INTO `wp_t` VALUES ('it''s');",
			want: []any{"it's"},
		},
		{
			name: "backslash escapes",
			sql:  `INSERT INTO ` + "`wp_t`" + ` VALUES ('a\nb\tc');`,
			want: []any{"a\nb\tc"},
		},
		{
			name: "negative and bare tokens",
			sql:  "INSERT INTO `wp_t` VALUES (-7, CURRENT_TIMESTAMP);",
			want: []any{int64(-7), "CURRENT_TIMESTAMP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseBytes([]byte(tt.sql))
			require.NoError(t, err)
			rows := d.Tables["wp_t"].Rows
			require.Len(t, rows, 1)
			got := make([]any, len(tt.want))
			for i := range tt.want {
				got[i] = rows[0][strconv.Itoa(i)]
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionalFallback(t *testing.T) {
	// Two declared columns, three values: the row survives under
	// positional keys instead of being dropped.
	dump := "CREATE TABLE `wp_t` (\n  `a` int(11),\n  `b` int(11)\n) ENGINE=InnoDB;\n" +
		"INSERT INTO `wp_t` VALUES (1, 2, 3);"
	d, err := ParseBytes([]byte(dump))
	require.NoError(t, err)
	rows := d.Tables["wp_t"].Rows
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["2"])
}

func TestDecodePermissive(t *testing.T) {
	// 0xE9 is latin-1 e-acute, invalid as UTF-8.
	raw := []byte("caf\xe9")
	assert.Equal(t, "café", decodePermissive(raw))
	assert.Equal(t, "plain", decodePermissive([]byte("plain")))
}

func TestDecodePermissiveMixedEncoding(t *testing.T) {
	// A dump that is valid UTF-8 except for a single stray cp1252 byte
	// must keep its UTF-8 sequences intact. "caf\xc3\xa9" is UTF-8
	// "café"; \x92 is a cp1252 right single quote.
	raw := []byte("INSERT INTO `wp_t` (`v`) VALUES ('caf\xc3\xa9 \x92 caf\xc3\xa9');")

	d, err := ParseBytes(raw)
	require.NoError(t, err)
	table := d.GetTable("t")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "café � café", table.Rows[0].String("v"))
}

func TestGetTableMissing(t *testing.T) {
	d := &Dump{Tables: map[string]*Table{}, Prefix: "wp_"}
	table := d.GetTable("comments")
	require.NotNil(t, table)
	assert.Empty(t, table.Rows)
}

func TestRowCoercion(t *testing.T) {
	row := Row{"n": int64(5), "f": 2.5, "s": "10", "nil": nil}
	assert.Equal(t, "5", row.String("n"))
	assert.Equal(t, "2.5", row.String("f"))
	assert.Equal(t, "", row.String("nil"))
	assert.Equal(t, "", row.String("missing"))
	assert.Equal(t, 5, row.Int("n"))
	assert.Equal(t, 2, row.Int("f"))
	assert.Equal(t, 10, row.Int("s"))
	assert.Equal(t, 0, row.Int("missing"))
}

func TestPluginTables(t *testing.T) {
	d := &Dump{
		Prefix: "wp_",
		Tables: map[string]*Table{
			"wp_posts":                {Name: "wp_posts"},
			"wp_yoast_indexable":      {Name: "wp_yoast_indexable"},
			"wp_wfconfig":             {Name: "wp_wfconfig"},
			"wp_wflogins":             {Name: "wp_wflogins"},
			"wp_mystery_table":        {Name: "wp_mystery_table"},
			"not_prefixed":            {Name: "not_prefixed"},
			"wp_woocommerce_sessions": {Name: "wp_woocommerce_sessions"},
		},
	}

	plugins := d.PluginTables()
	assert.Equal(t, []string{"wp_yoast_indexable"}, plugins["yoast_seo"])
	assert.Equal(t, []string{"wp_wfconfig", "wp_wflogins"}, plugins["wordfence"])
	assert.Equal(t, []string{"wp_woocommerce_sessions"}, plugins["woocommerce"])
	assert.Equal(t, []string{"wp_mystery_table"}, plugins["unknown"])
	_, hasCore := plugins["posts"]
	assert.False(t, hasCore)
}
