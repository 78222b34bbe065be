// Package sqldump parses WordPress MySQL dump files into an in-memory
// table set without touching a live database.
package sqldump

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Row maps a column name to a parsed scalar: nil, int64, float64 or string.
type Row map[string]any

// Table holds one table's declared columns (in declaration order) and data rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Dump is the parsed result of a WordPress SQL dump.
type Dump struct {
	Tables map[string]*Table
	Prefix string
}

// ParseError indicates the dump file could not be read or contained no
// recognizable statements. It is fatal; no partial recovery is attempted.
type ParseError struct {
	File string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("sqldump: %s: %s", e.File, e.Msg)
	}
	return "sqldump: " + e.Msg
}

const defaultPrefix = "wp_"

var (
	createTableRe = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` + "`?(\\w+)`?" + `\s*\((.*?)\)\s*(?:ENGINE|TYPE)\s*=`)
	insertRe      = regexp.MustCompile(`(?i)INSERT\s+(?:INTO\s+)?` + "`?(\\w+)`?" + `\s*(?:\(([^)]*)\))?\s*VALUES\s*`)
	prefixOptsRe  = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`?(\\w+?)options`")
	prefixPostsRe = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`?(\\w+?)posts`")
	columnDefRe   = regexp.MustCompile("^`(\\w+)`\\s+[\\w()]+")
)

// CoreSuffixes are the WordPress core table suffixes the importers consume.
var CoreSuffixes = []string{
	"posts", "postmeta", "comments", "commentmeta",
	"terms", "termmeta", "term_taxonomy", "term_relationships",
	"users", "usermeta", "options", "links",
}

// Parse reads and parses a dump file from disk.
func Parse(path string) (*Dump, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Msg: err.Error()}
	}
	d, err := ParseBytes(raw)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return d, nil
}

// ParseBytes parses dump content already held in memory. Text is decoded
// permissively: invalid UTF-8 falls back to Windows-1252, and anything
// still undecodable is replaced rather than rejected.
func ParseBytes(raw []byte) (*Dump, error) {
	content := decodePermissive(raw)

	d := &Dump{
		Tables: make(map[string]*Table),
		Prefix: defaultPrefix,
	}
	d.detectPrefix(content)
	d.parseCreateTables(content)
	d.parseInserts(content)

	if len(d.Tables) == 0 {
		return nil, &ParseError{Msg: "no recognizable SQL statements found"}
	}
	return d, nil
}

// decodePermissive returns dump bytes as a UTF-8 string. Legacy exports
// that are wholly latin-1/cp1252 decode losslessly; a mostly-UTF-8 dump
// with stray cp1252 fragments keeps its valid sequences and gets the
// replacement rune for the rest.
func decodePermissive(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	invalid, total := 0, 0
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		total++
		i += size
	}
	// The cp1252 path reinterprets every multi-byte UTF-8 sequence as
	// mojibake, so it only applies when the stream is predominantly
	// non-UTF-8.
	if invalid*10 > total {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(string(raw), "�")
}

func (d *Dump) detectPrefix(content string) {
	if m := prefixOptsRe.FindStringSubmatch(content); m != nil {
		d.Prefix = m[1]
		return
	}
	if m := prefixPostsRe.FindStringSubmatch(content); m != nil {
		d.Prefix = m[1]
	}
}

func (d *Dump) parseCreateTables(content string) {
	for _, m := range createTableRe.FindAllStringSubmatch(content, -1) {
		name, body := m[1], m[2]
		var columns []string
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			upper := strings.ToUpper(line)
			// Index declarations must never be treated as columns.
			if strings.HasPrefix(upper, "PRIMARY KEY") ||
				strings.HasPrefix(upper, "UNIQUE KEY") ||
				strings.HasPrefix(upper, "KEY ") ||
				strings.HasPrefix(upper, "KEY`") ||
				strings.HasPrefix(upper, "FULLTEXT") ||
				strings.HasPrefix(upper, "CONSTRAINT") {
				continue
			}
			if cm := columnDefRe.FindStringSubmatch(line); cm != nil {
				columns = append(columns, cm[1])
			}
		}
		if len(columns) > 0 {
			d.Tables[name] = &Table{Name: name, Columns: columns}
		}
	}
}

func (d *Dump) parseInserts(content string) {
	for _, loc := range insertRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		table := d.Tables[name]
		if table == nil {
			// Dumps sometimes carry inserts for tables without a CREATE.
			table = &Table{Name: name}
			d.Tables[name] = table
		}

		cols := table.Columns
		if loc[4] >= 0 {
			explicit := content[loc[4]:loc[5]]
			cols = nil
			for _, c := range strings.Split(explicit, ",") {
				cols = append(cols, strings.Trim(strings.TrimSpace(c), "`"))
			}
		}

		for _, values := range scanValueTuples(content, loc[1]) {
			if len(cols) > 0 && len(values) == len(cols) {
				row := make(Row, len(values))
				for i, v := range values {
					row[cols[i]] = v
				}
				table.Rows = append(table.Rows, row)
			} else if len(values) > 0 {
				// Column count mismatch: keep the row under positional keys.
				row := make(Row, len(values))
				for i, v := range values {
					row[strconv.Itoa(i)] = v
				}
				table.Rows = append(table.Rows, row)
			}
		}
	}
}

// scanValueTuples walks VALUES (...), (...), ...; from pos collecting tuples.
func scanValueTuples(content string, pos int) [][]any {
	var tuples [][]any
	n := len(content)
	for pos < n {
		for pos < n && (content[pos] == ' ' || content[pos] == '\t' || content[pos] == '\r' || content[pos] == '\n' || content[pos] == ',') {
			pos++
		}
		if pos >= n || content[pos] == ';' {
			break
		}
		if content[pos] != '(' {
			break
		}
		var values []any
		values, pos = scanTuple(content, pos)
		if values != nil {
			tuples = append(tuples, values)
		}
	}
	return tuples
}

func scanTuple(content string, pos int) ([]any, int) {
	pos++ // opening paren
	values := []any{}
	n := len(content)
	for pos < n {
		for pos < n && (content[pos] == ' ' || content[pos] == '\t' || content[pos] == '\r' || content[pos] == '\n') {
			pos++
		}
		if pos >= n {
			break
		}
		switch content[pos] {
		case ')':
			return values, pos + 1
		case ',':
			pos++
		default:
			var v any
			v, pos = scanValue(content, pos)
			values = append(values, v)
		}
	}
	return values, pos
}

func scanValue(content string, pos int) (any, int) {
	n := len(content)
	for pos < n && (content[pos] == ' ' || content[pos] == '\t' || content[pos] == '\r' || content[pos] == '\n') {
		pos++
	}
	if pos >= n {
		return nil, pos
	}

	if pos+4 <= n && strings.EqualFold(content[pos:pos+4], "NULL") {
		return nil, pos + 4
	}

	if c := content[pos]; c == '\'' || c == '"' {
		return scanQuoted(content, pos)
	}

	start := pos
	for pos < n {
		switch content[pos] {
		case ',', ')', ';', ' ', '\t', '\r', '\n':
			goto done
		}
		pos++
	}
done:
	tok := content[start:pos]
	if strings.Contains(tok, ".") {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return f, pos
		}
	} else if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return i, pos
	}
	return tok, pos
}

// scanQuoted reads a quoted SQL string handling backslash escapes and the
// doubled-quote escape of the active quote character.
func scanQuoted(content string, pos int) (string, int) {
	quote := content[pos]
	pos++
	var b strings.Builder
	n := len(content)
	for pos < n {
		ch := content[pos]
		switch {
		case ch == '\\':
			pos++
			if pos < n {
				switch content[pos] {
				case 'n':
					b.WriteByte('\n')
				case 'r':
					b.WriteByte('\r')
				case 't':
					b.WriteByte('\t')
				case '0':
					b.WriteByte(0)
				default:
					b.WriteByte(content[pos])
				}
			}
			pos++
		case ch == quote:
			if pos+1 < n && content[pos+1] == quote {
				b.WriteByte(quote)
				pos += 2
			} else {
				return b.String(), pos + 1
			}
		default:
			b.WriteByte(ch)
			pos++
		}
	}
	return b.String(), pos
}

// GetTable returns the table for a core suffix (e.g. "posts" -> "wp_posts").
// A missing table yields an empty Table, never nil.
func (d *Dump) GetTable(suffix string) *Table {
	if t, ok := d.Tables[d.Prefix+suffix]; ok {
		return t
	}
	return &Table{Name: d.Prefix + suffix}
}

// CoreTables lists the core suffixes present in the dump with data rows.
func (d *Dump) CoreTables() []string {
	var found []string
	for _, suffix := range CoreSuffixes {
		if t, ok := d.Tables[d.Prefix+suffix]; ok && len(t.Rows) > 0 {
			found = append(found, suffix)
		}
	}
	return found
}

// Option returns the value of a wp_options row by option_name, or "".
func (d *Dump) Option(name string) string {
	for _, row := range d.GetTable("options").Rows {
		if row.String("option_name") == name {
			return row.String("option_value")
		}
	}
	return ""
}

// String returns a row value coerced to string ("" for nil or missing).
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns a row value coerced to int (0 for anything non-numeric).
func (r Row) Int(col string) int {
	switch v := r[col].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	default:
		return 0
	}
}
