package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "Hello World", "hello-world"},
		{"accents stripped", "Léa, chatte stérilisée à adopter", "lea-chatte-sterilisee-a-adopter"},
		{"punctuation collapsed", "Rex !!! (urgent)", "rex-urgent"},
		{"leading trailing hyphens", "--déjà--", "deja"},
		{"empty", "", "untitled"},
		{"only symbols", "###", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestCleanWPSlug(t *testing.T) {
	assert.Equal(t, "", CleanWPSlug(""))
	assert.Equal(t, "deja-vu", CleanWPSlug("d%c3%a9j%c3%a0-vu"))
	assert.Equal(t, "hello-world", CleanWPSlug("hello-world"))
}

func TestUniqueSlug(t *testing.T) {
	neverStored := func(string) (bool, error) { return false, nil }

	t.Run("free slug kept", func(t *testing.T) {
		got, err := uniqueSlug("rex", map[string]bool{}, neverStored)
		require.NoError(t, err)
		assert.Equal(t, "rex", got)
	})

	t.Run("suffix against run set", func(t *testing.T) {
		used := map[string]bool{"rex": true, "rex-1": true}
		got, err := uniqueSlug("rex", used, neverStored)
		require.NoError(t, err)
		assert.Equal(t, "rex-2", got)
	})

	t.Run("suffix against storage", func(t *testing.T) {
		stored := func(s string) (bool, error) { return s == "rex", nil }
		got, err := uniqueSlug("rex", map[string]bool{}, stored)
		require.NoError(t, err)
		assert.Equal(t, "rex-1", got)
	})

	t.Run("empty becomes untitled", func(t *testing.T) {
		got, err := uniqueSlug("", map[string]bool{}, neverStored)
		require.NoError(t, err)
		assert.Equal(t, "untitled", got)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		failing := func(string) (bool, error) { return false, fmt.Errorf("db gone") }
		_, err := uniqueSlug("rex", map[string]bool{}, failing)
		assert.Error(t, err)
	})
}

func TestBuildPermalink(t *testing.T) {
	tests := []struct {
		name      string
		structure string
		slug      string
		date      string
		want      string
	}{
		{"postname only", "/%postname%/", "rex", "2020-05-01 10:00:00", "/rex/"},
		{"dated structure", "/%year%/%monthnum%/%day%/%postname%/", "rex", "2020-05-01 10:00:00", "/2020/05/01/rex/"},
		{"date only prefix", "/%year%/%postname%/", "rex", "2020-05-01", "/2020/rex/"},
		{"unknown placeholder dropped", "/%category%/%postname%/", "rex", "", "//rex/"},
		{"empty structure", "", "rex", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPermalink(tt.structure, tt.slug, tt.date))
		})
	}
}

func TestParseWPDatetime(t *testing.T) {
	assert.Nil(t, parseWPDatetime(""))
	assert.Nil(t, parseWPDatetime("0000-00-00 00:00:00"))
	assert.Nil(t, parseWPDatetime("not a date"))
	got := parseWPDatetime("2019-03-15 08:30:00")
	require.NotNil(t, got)
	assert.Equal(t, 2019, got.Year())
}
