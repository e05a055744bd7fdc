package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	questionModel "devflow-backend/internal/domains/question/model"
)

// ========================================
// TAG REQUEST DTOs
// ========================================

// ListTagsRequest drives the tags directory page.
type ListTagsRequest struct {
	SearchQuery string `form:"q"`
	Filter      string `form:"filter"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

func (r ListTagsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Filter,
			validation.In(FilterPopular, FilterRecent, FilterName, FilterOld, "").
				Error("unknown filter"),
		),
	)
}

// QuestionsByTagRequest drives the tag detail page listing.
type QuestionsByTagRequest struct {
	SearchQuery string `form:"q"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// TagListResponse pairs a page of tags with the isNext flag.
type TagListResponse struct {
	Tags   []*TagWithStats `json:"tags"`
	IsNext bool            `json:"is_next"`
}

// TagQuestionsResponse is the tag detail page payload.
type TagQuestionsResponse struct {
	TagTitle  string                           `json:"tag_title"`
	Questions []*questionModel.QuestionSummary `json:"questions"`
	IsNext    bool                             `json:"is_next"`
}
