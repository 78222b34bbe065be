// Package models defines the target content entities the importers
// create, plus the closed enumerations legacy vocabularies map onto.
package models

import "time"

// PostStatus is the target publication status enumeration.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusPending   PostStatus = "pending"
	StatusPrivate   PostStatus = "private"
	StatusTrash     PostStatus = "trash"
)

// MapPostStatus translates a WordPress post status. Unmapped legacy
// values default to draft; that matches the source system's behavior
// for statuses it never documented.
func MapPostStatus(wp string) PostStatus {
	switch wp {
	case "publish", "inherit":
		return StatusPublished
	case "draft", "auto-draft", "future":
		return StatusDraft
	case "pending":
		return StatusPending
	case "private":
		return StatusPrivate
	case "trash":
		return StatusTrash
	default:
		return StatusDraft
	}
}

// CommentStatus is the target comment moderation state.
type CommentStatus string

const (
	CommentApproved CommentStatus = "approved"
	CommentPending  CommentStatus = "pending"
	CommentSpam     CommentStatus = "spam"
	CommentTrash    CommentStatus = "trash"
)

// MapCommentStatus translates WordPress comment_approved values.
// Unmapped values default to pending.
func MapCommentStatus(wp string) CommentStatus {
	switch wp {
	case "1":
		return CommentApproved
	case "0":
		return CommentPending
	case "spam":
		return CommentSpam
	case "trash":
		return CommentTrash
	default:
		return CommentPending
	}
}

// Species is the animal species enumeration used on profile posts.
type Species string

const (
	SpeciesDog    Species = "chien"
	SpeciesCat    Species = "chat"
	SpeciesRodent Species = "rongeur"
	SpeciesOther  Species = "autre"
	SpeciesNone   Species = ""
)

// Sex is the animal sex enumeration used on profile posts.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "femelle"
	SexNone   Sex = ""
)

// User is an imported author account.
type User struct {
	ID          int64  `json:"id" db:"id"`
	Username    string `json:"username" db:"username"`
	Email       string `json:"email" db:"email"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	DisplayName string `json:"display_name" db:"display_name"`
	WPUserID    int    `json:"wp_user_id" db:"wp_user_id"`
}

// Category is a hierarchical taxonomy term.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	ParentID    *int64 `json:"parent_id,omitempty" db:"parent_id"`
	WPTermID    int    `json:"wp_term_id" db:"wp_term_id"`
}

// Tag is a flat taxonomy term.
type Tag struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	WPTermID    int    `json:"wp_term_id" db:"wp_term_id"`
}

// Media is an imported attachment.
type Media struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	File        string `json:"file" db:"file"`
	AltText     string `json:"alt_text" db:"alt_text"`
	MimeType    string `json:"mime_type" db:"mime_type"`
	OriginalURL string `json:"original_url" db:"original_url"`
	WPPostID    int    `json:"wp_post_id" db:"wp_post_id"`
}

// Post is an imported article. The animal profile fields stay empty
// unless the profile extractor resolved structured data for the post.
type Post struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Slug           string     `json:"slug" db:"slug"`
	Content        string     `json:"content" db:"content"`
	Excerpt        string     `json:"excerpt" db:"excerpt"`
	Status         PostStatus `json:"status" db:"status"`
	AuthorID       *int64     `json:"author_id,omitempty" db:"author_id"`
	FeaturedMedia  *int64     `json:"featured_media_id,omitempty" db:"featured_media_id"`
	PublishedAt    *time.Time `json:"published_at,omitempty" db:"published_at"`
	SEOTitle       string     `json:"seo_title" db:"seo_title"`
	SEODescription string     `json:"seo_description" db:"seo_description"`

	AnimalName     string     `json:"animal_name" db:"animal_name"`
	Species        Species    `json:"species" db:"species"`
	Breed          string     `json:"breed" db:"breed"`
	Sex            Sex        `json:"sex" db:"sex"`
	BirthDate      *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	WeightKg       *float64   `json:"weight_kg,omitempty" db:"weight_kg"`
	Identification string     `json:"identification" db:"identification"`
	IsVaccinated   *bool      `json:"is_vaccinated,omitempty" db:"is_vaccinated"`
	IsSterilized   *bool      `json:"is_sterilized,omitempty" db:"is_sterilized"`
	FosterFamily   string     `json:"foster_family" db:"foster_family"`

	WPPostID int `json:"wp_post_id" db:"wp_post_id"`
}

// Page is an imported static page.
type Page struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Slug           string     `json:"slug" db:"slug"`
	Content        string     `json:"content" db:"content"`
	Status         PostStatus `json:"status" db:"status"`
	AuthorID       *int64     `json:"author_id,omitempty" db:"author_id"`
	ParentID       *int64     `json:"parent_id,omitempty" db:"parent_id"`
	MenuOrder      int        `json:"menu_order" db:"menu_order"`
	Template       string     `json:"template" db:"template"`
	PublishedAt    *time.Time `json:"published_at,omitempty" db:"published_at"`
	SEOTitle       string     `json:"seo_title" db:"seo_title"`
	SEODescription string     `json:"seo_description" db:"seo_description"`
	WPPostID       int        `json:"wp_post_id" db:"wp_post_id"`
}

// GalleryImage links a post to a media asset pulled out of its body.
type GalleryImage struct {
	ID       int64 `json:"id" db:"id"`
	PostID   int64 `json:"post_id" db:"post_id"`
	MediaID  int64 `json:"media_id" db:"media_id"`
	Position int   `json:"position" db:"position"`
}

// Comment is an imported reader comment, optionally threaded.
type Comment struct {
	ID          int64         `json:"id" db:"id"`
	PostID      int64         `json:"post_id" db:"post_id"`
	AuthorName  string        `json:"author_name" db:"author_name"`
	AuthorEmail string        `json:"author_email" db:"author_email"`
	AuthorURL   string        `json:"author_url" db:"author_url"`
	Content     string        `json:"content" db:"content"`
	Status      CommentStatus `json:"status" db:"status"`
	ParentID    *int64        `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt   *time.Time    `json:"created_at,omitempty" db:"created_at"`
	WPCommentID int           `json:"wp_comment_id" db:"wp_comment_id"`
}

// Menu is an imported navigation menu.
type Menu struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Slug     string `json:"slug" db:"slug"`
	WPTermID int    `json:"wp_term_id" db:"wp_term_id"`
}

// MenuItem is one entry of a menu. It either resolves to imported
// content (via ContentType/ObjectID pointing at a legacy id) or keeps
// its literal URL.
type MenuItem struct {
	ID          int64  `json:"id" db:"id"`
	MenuID      int64  `json:"menu_id" db:"menu_id"`
	Title       string `json:"title" db:"title"`
	URL         string `json:"url" db:"url"`
	Target      string `json:"target" db:"target"`
	CSSClasses  string `json:"css_classes" db:"css_classes"`
	Position    int    `json:"position" db:"position"`
	ParentID    *int64 `json:"parent_id,omitempty" db:"parent_id"`
	ContentType string `json:"content_type" db:"content_type"`
	ObjectID    *int   `json:"object_id,omitempty" db:"object_id"`

	// Resolved targets, one per content type. At most one is set.
	LinkedPostID     *int64 `json:"linked_post_id,omitempty" db:"linked_post_id"`
	LinkedPageID     *int64 `json:"linked_page_id,omitempty" db:"linked_page_id"`
	LinkedCategoryID *int64 `json:"linked_category_id,omitempty" db:"linked_category_id"`

	WPPostID int `json:"wp_post_id" db:"wp_post_id"`
}

// Redirect maps a legacy URL path to its new location.
type Redirect struct {
	ID          int64  `json:"id" db:"id"`
	OldPath     string `json:"old_path" db:"old_path"`
	NewPath     string `json:"new_path" db:"new_path"`
	IsPermanent bool   `json:"is_permanent" db:"is_permanent"`
}

// PluginData preserves one row of a non-core table as an opaque bag.
type PluginData struct {
	ID          int64  `json:"id" db:"id"`
	PluginName  string `json:"plugin_name" db:"plugin_name"`
	SourceTable string `json:"source_table" db:"source_table"`
	Data        string `json:"data" db:"data"`
	PostID      *int64 `json:"post_id,omitempty" db:"post_id"`
	PageID      *int64 `json:"page_id,omitempty" db:"page_id"`
}
