package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	s := NewCommentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Bravo pour ce sauvetage !",
			want:  "Bravo pour ce sauvetage !",
		},
		{
			name:  "script stripped",
			input: `Bonjour <script>alert("x")</script>tout le monde`,
			want:  "Bonjour tout le monde",
		},
		{
			name:  "formatting kept",
			input: "<p>Un <strong>grand</strong> merci</p>",
			want:  "<p>Un <strong>grand</strong> merci</p>",
		},
		{
			name:  "link gets nofollow",
			input: `<a href="https://example.org">site</a>`,
			want:  `<a href="https://example.org" rel="nofollow">site</a>`,
		},
		{
			name:  "javascript href dropped",
			input: `<a href="javascript:alert(1)">clic</a>`,
			want:  "clic",
		},
		{
			name:  "event handler stripped",
			input: `<p onclick="evil()">texte</p>`,
			want:  "<p>texte</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.input))
		})
	}
}
