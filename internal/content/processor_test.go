package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessUploadURLs(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "absolute legacy URL",
			input: `<img src="https://example.org/wp-content/uploads/2020/01/dog.jpg">`,
			want:  `<img loading="lazy" src="/media/uploads/2020/01/dog.jpg">`,
		},
		{
			name:  "relative upload path",
			input: `<img src="/wp-content/uploads/cat.png" loading="eager">`,
			want:  `<img src="/media/uploads/cat.png" loading="eager">`,
		},
		{
			name:  "foreign host with wp-content path",
			input: `<img src="http://cdn.other.net/wp-content/uploads/x.gif" loading="lazy">`,
			want:  `<img src="/media/uploads/x.gif" loading="lazy">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Process(tt.input))
		})
	}
}

func TestProcessInternalLinks(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")
	in := `<a href="https://example.org/a-propos/">About</a>`
	assert.Equal(t, `<a href="/a-propos/">About</a>`, p.Process(in))
}

func TestProcessShortcodes(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")

	t.Run("caption becomes figure", func(t *testing.T) {
		in := `[caption id="attachment_12" align="alignleft" width="300"]<img src="/x.jpg" loading="lazy"> My caption[/caption]`
		out := p.Process(in)
		assert.Contains(t, out, `<figure class="wp-caption alignleft" style="width: 300px;">`)
		assert.Contains(t, out, "My caption")
		assert.Contains(t, out, "</figure>")
	})

	t.Run("gallery becomes placeholder div", func(t *testing.T) {
		out := p.Process(`[gallery ids="1,2,3"]`)
		assert.Equal(t, `<div class="wp-gallery" data-ids="1,2,3"></div>`, out)
	})

	t.Run("youtube becomes iframe", func(t *testing.T) {
		out := p.Process(`[youtube]https://youtu.be/abc123[/youtube]`)
		assert.Contains(t, out, `<div class="video-embed">`)
		assert.Contains(t, out, `src="https://youtu.be/abc123"`)
	})

	t.Run("audio with mp3 attr", func(t *testing.T) {
		out := p.Process(`[audio mp3="/media/uploads/intro.mp3"]`)
		assert.Equal(t, `<audio controls src="/media/uploads/intro.mp3"></audio>`, out)
	})

	t.Run("code keeps inner", func(t *testing.T) {
		out := p.Process(`[code language="go"]x := 1[/code]`)
		assert.Equal(t, `<pre><code class="language-go">x := 1</code></pre>`, out)
	})

	t.Run("unknown tag keeps inner", func(t *testing.T) {
		out := p.Process(`before [mystery foo="bar"]inner[/mystery] after`)
		assert.Equal(t, "before inner after", out)
	})

	t.Run("unclosed unknown tag vanishes", func(t *testing.T) {
		out := p.Process(`hello [contactform] world`)
		assert.Equal(t, "hello  world", out)
	})
}

func TestProcessCleanMarkup(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")

	t.Run("strips wp-image classes", func(t *testing.T) {
		in := `<img class="size-full wp-image-42" src="https://other.net/pic.jpg" loading="lazy">`
		out := p.Process(in)
		assert.NotContains(t, out, "wp-image-42")
	})

	t.Run("removes empty paragraphs", func(t *testing.T) {
		assert.Equal(t, "<p>a</p>", p.Process("<p>a</p><p>  </p>"))
	})

	t.Run("more marker becomes anchor span", func(t *testing.T) {
		out := p.Process("intro<!--more-->rest")
		assert.Equal(t, `intro<span id="more"></span>rest`, out)
	})

	t.Run("nextpage marker dropped", func(t *testing.T) {
		assert.Equal(t, "ab", p.Process("a<!--nextpage-->b"))
	})
}

func TestProcessLazyLoading(t *testing.T) {
	p := NewProcessor("", "/media/")

	t.Run("adds loading attribute", func(t *testing.T) {
		out := p.Process(`<img src="https://other.net/pic.jpg" alt="x">`)
		assert.Equal(t, `<img loading="lazy" src="https://other.net/pic.jpg" alt="x">`, out)
	})

	t.Run("existing attribute untouched", func(t *testing.T) {
		in := `<img src="https://other.net/pic.jpg" loading="eager">`
		assert.Equal(t, in, p.Process(in))
	})
}

func TestProcessEmpty(t *testing.T) {
	p := NewProcessor("https://example.org", "/media/")
	assert.Equal(t, "", p.Process(""))
}
