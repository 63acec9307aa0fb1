package api

import (
	"github.com/kakeru/folio/internal/integrations"
	"github.com/kakeru/folio/internal/models"
)

// SubscribeRequest is the request body for newsletter subscription calls.
type SubscribeRequest struct {
	Email string `json:"email" example:"reader@example.com" validate:"required"`
}

// SubscribeResponse reports the outcome of a subscription attempt.
type SubscribeResponse struct {
	Status string `json:"status" example:"subscribed" validate:"required"`
	Total  int    `json:"total" example:"12"`
}

// ContactRequest is the contact form request body (aliased from the
// integrations layer).
type ContactRequest = integrations.ContactMessage

// PostListResponse wraps post listings.
type PostListResponse struct {
	Posts []models.BlogPost `json:"posts" validate:"required"`
	Total int               `json:"total" example:"3" validate:"required"`
}

// ProjectListResponse wraps project listings.
type ProjectListResponse struct {
	Projects []models.Project `json:"projects" validate:"required"`
	Total    int              `json:"total" example:"2" validate:"required"`
}

// LanguageResponse reports the active UI language and the content locale
// it maps to.
type LanguageResponse struct {
	Language      string `json:"language" example:"zh" validate:"required"`
	ContentLocale string `json:"contentLocale" example:"zh" validate:"required"`
}

// ThemeResponse reports the active theme mode.
type ThemeResponse struct {
	Mode string `json:"mode" example:"light" validate:"required"`
}
