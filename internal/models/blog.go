package models

import (
	"time"
)

// BlogPost is the full persisted row. Unpublished posts are drafts,
// visible only to management tooling.
type BlogPost struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Summary   string    `db:"summary" json:"summary"`
	ImageURL  string    `db:"image_url" json:"image_url,omitempty"`
	AuthorID  *int64    `db:"author_id" json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BlogPostInsert is the creation payload.
type BlogPostInsert struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Summary   string `json:"summary" validate:"required"`
	ImageURL  string `json:"image_url,omitempty"`
	AuthorID  *int64 `json:"author_id,omitempty"`
	Published bool   `json:"published"`
}
