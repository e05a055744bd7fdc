package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing filters accepted by GetAllUsers.
const (
	FilterNewUsers        = "new_users"
	FilterOldUsers        = "old_users"
	FilterTopContributors = "top_contributors"
)

// User is a community member. AuthID is the external identity provider's id;
// authentication itself happens outside this service.
type User struct {
	ID               uuid.UUID `json:"id"`
	AuthID           string    `json:"auth_id"`
	Name             string    `json:"name"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Bio              *string   `json:"bio,omitempty"`
	Picture          string    `json:"picture"`
	Location         *string   `json:"location,omitempty"`
	PortfolioWebsite *string   `json:"portfolio_website,omitempty"`
	Reputation       int       `json:"reputation"`
	JoinedAt         time.Time `json:"joined_at"`
}

// UserInfo is the profile page payload: the user plus content counts.
type UserInfo struct {
	User           *User `json:"user"`
	TotalQuestions int   `json:"total_questions"`
	TotalAnswers   int   `json:"total_answers"`
}

// ListOptions is the repository-level query shape for user listings.
type ListOptions struct {
	SearchQuery string
	Filter      string
	Skip        int
	Limit       int
}
