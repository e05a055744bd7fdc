package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing filters accepted by GetAllTags.
const (
	FilterPopular = "popular"
	FilterRecent  = "recent"
	FilterName    = "name"
	FilterOld     = "old"
)

// Tag is a named category attachable to questions. Names are unique
// case-insensitively; the stored casing is whichever spelling arrived first.
type Tag struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}

// TagWithStats is a listing row: tag plus its attached-question count.
type TagWithStats struct {
	Tag
	QuestionCount int `json:"question_count"`
}

// ListOptions is the repository-level query shape for tag listings.
type ListOptions struct {
	SearchQuery string
	Filter      string
	Skip        int
	Limit       int
}
