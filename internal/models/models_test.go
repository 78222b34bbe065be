package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPostStatus(t *testing.T) {
	tests := []struct {
		wp   string
		want PostStatus
	}{
		{"publish", StatusPublished},
		{"inherit", StatusPublished},
		{"draft", StatusDraft},
		{"auto-draft", StatusDraft},
		{"future", StatusDraft},
		{"pending", StatusPending},
		{"private", StatusPrivate},
		{"trash", StatusTrash},
		{"wc-completed", StatusDraft},
		{"", StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.wp, func(t *testing.T) {
			assert.Equal(t, tt.want, MapPostStatus(tt.wp))
		})
	}
}

func TestMapCommentStatus(t *testing.T) {
	tests := []struct {
		wp   string
		want CommentStatus
	}{
		{"1", CommentApproved},
		{"0", CommentPending},
		{"spam", CommentSpam},
		{"trash", CommentTrash},
		{"hold", CommentPending},
		{"", CommentPending},
	}
	for _, tt := range tests {
		t.Run(tt.wp, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCommentStatus(tt.wp))
		})
	}
}
