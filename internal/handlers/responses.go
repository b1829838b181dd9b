package handlers

import (
	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/joinfields"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldResponse describes one join form field.
type FieldResponse struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Widget      string `json:"widget"`
	Required    bool   `json:"required"`
}

// FieldsResponse is the JSON view of the current join form.
type FieldsResponse struct {
	ValidateEmail     bool            `json:"validate_email"`
	CanSetOwnPassword bool            `json:"can_set_own_password"`
	Fields            []FieldResponse `json:"fields"`
}

// NewFieldsResponse builds a FieldsResponse from resolved fields.
func NewFieldsResponse(fields []joinfields.Field, cfg domain.SiteConfig) *FieldsResponse {
	out := &FieldsResponse{
		ValidateEmail:     cfg.ValidateEmail,
		CanSetOwnPassword: cfg.CanSetOwnPassword(),
		Fields:            make([]FieldResponse, 0, len(fields)),
	}
	for _, f := range fields {
		out.Fields = append(out.Fields, FieldResponse{
			Name:        string(f.Name),
			Title:       f.Title,
			Description: f.Description,
			Widget:      string(f.Widget),
			Required:    f.Required,
		})
	}
	return out
}
