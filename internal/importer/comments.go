package importer

import (
	"github.com/asso-refuge/wpmigrate/internal/content"
	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// CommentImporter imports wp_comments rows. Threading is resolved in a
// second pass once every comment of the run exists; a comment whose
// parent is missing from this run keeps no parent link.
type CommentImporter struct {
	dump    *sqldump.Dump
	store   *store.Store
	report  *Report
	postMap map[int]*models.Post
}

// Run creates comments and returns the legacy-id map.
func (ci *CommentImporter) Run() (map[int]*models.Comment, error) {
	sanitizer := content.NewCommentSanitizer()
	commentMap := make(map[int]*models.Comment)
	rows := ci.dump.GetTable("comments").Rows

	for _, row := range rows {
		wpID := row.Int("comment_ID")
		post, ok := ci.postMap[row.Int("comment_post_ID")]
		if !ok {
			ci.report.Warn("comment %d references missing post %d", wpID, row.Int("comment_post_ID"))
			continue
		}

		comment, _, err := ci.store.GetOrCreateComment(wpID, &models.Comment{
			PostID:      post.ID,
			AuthorName:  row.String("comment_author"),
			AuthorEmail: row.String("comment_author_email"),
			AuthorURL:   row.String("comment_author_url"),
			Content:     sanitizer.Sanitize(row.String("comment_content")),
			Status:      models.MapCommentStatus(row.String("comment_approved")),
			CreatedAt:   parseWPDatetime(row.String("comment_date")),
		})
		if err != nil {
			return nil, err
		}
		commentMap[wpID] = comment
	}

	for _, row := range rows {
		parentID := row.Int("comment_parent")
		if parentID == 0 {
			continue
		}
		child, okChild := commentMap[row.Int("comment_ID")]
		parent, okParent := commentMap[parentID]
		if !okChild || !okParent {
			continue
		}
		if err := ci.store.UpdateComment(child.ID, map[string]any{"parent_id": parent.ID}); err != nil {
			return nil, err
		}
	}

	ci.report.Comments = len(commentMap)
	return commentMap, nil
}
