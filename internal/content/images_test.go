package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImages(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")

	t.Run("figure block extracted whole", func(t *testing.T) {
		in := `<p>intro</p><figure class="wp-caption"><img src="/media/uploads/2020/dog.jpg" alt="Rex"><figcaption>Rex</figcaption></figure><p>outro</p>`
		out, images := p.ExtractImages(in, "")
		assert.Equal(t, "<p>intro</p><p>outro</p>", out)
		require.Len(t, images, 1)
		assert.Equal(t, "/media/uploads/2020/dog.jpg", images[0].URL)
		assert.Equal(t, "Rex", images[0].Alt)
	})

	t.Run("paragraph wrapped image extracted", func(t *testing.T) {
		in := `<p><a href="/media/uploads/cat.jpg"><img src="/media/uploads/cat-300x200.jpg" alt=""></a></p>`
		out, images := p.ExtractImages(in, "")
		assert.Equal(t, "", out)
		require.Len(t, images, 1)
		assert.Equal(t, "/media/uploads/cat-300x200.jpg", images[0].URL)
	})

	t.Run("featured image removed but not collected", func(t *testing.T) {
		in := `<img src="https://example.org/wp-content/uploads/hero-1024x768.jpg">`
		out, images := p.ExtractImages(in, "/wp-content/uploads/hero.jpg")
		assert.Equal(t, "", out)
		assert.Empty(t, images)
	})

	t.Run("size variants deduplicated", func(t *testing.T) {
		in := `<img src="/media/uploads/a-150x150.png"><img src="/media/uploads/a-300x300.png">`
		out, images := p.ExtractImages(in, "")
		assert.Equal(t, "", out)
		require.Len(t, images, 1)
	})

	t.Run("external image stays in body", func(t *testing.T) {
		in := `<img src="https://cdn.example.net/banner.jpg">`
		out, images := p.ExtractImages(in, "")
		assert.Equal(t, in, out)
		assert.Empty(t, images)
	})

	t.Run("figure without image survives", func(t *testing.T) {
		in := `<figure><blockquote>quote</blockquote></figure>`
		out, images := p.ExtractImages(in, "")
		assert.Equal(t, in, out)
		assert.Empty(t, images)
	})

	t.Run("empty input", func(t *testing.T) {
		out, images := p.ExtractImages("", "")
		assert.Equal(t, "", out)
		assert.Nil(t, images)
	})
}

func TestNormalizeImagePath(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"size suffix stripped", "/media/uploads/a-300x200.jpg", "/media/uploads/a.jpg"},
		{"host stripped", "https://example.org/wp-content/uploads/b.png", "/wp-content/uploads/b.png"},
		{"plain path unchanged", "/media/uploads/c.gif", "/media/uploads/c.gif"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeImagePath(tt.src))
		})
	}
}

func TestUploadRelPath(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")
	assert.Equal(t, "2020/dog.jpg", p.UploadRelPath("https://example.org/wp-content/uploads/2020/dog-640x480.jpg"))
	assert.Equal(t, "cat.png", p.UploadRelPath("/media/uploads/cat.png"))
	assert.Equal(t, "", p.UploadRelPath("https://cdn.example.net/banner.jpg"))
}
