package deck

import (
	"strings"

	"github.com/youruser/cardbinder/internal/apperr"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 500
)

// CreateInput holds the parameters for creating a user deck.
type CreateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []apperr.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "required"})
	}
	if len([]rune(name)) > maxNameLen {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "max 50 characters"})
	}
	if len([]rune(i.Description)) > maxDescriptionLen {
		errs = append(errs, apperr.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &apperr.ValidationError{Errors: errs}
	}
	return nil
}

// InfoPatch updates deck metadata. Nil fields are left unchanged.
type InfoPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
}

// Validate checks all fields and collects all errors.
func (p InfoPatch) Validate() error {
	var errs []apperr.FieldError

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			errs = append(errs, apperr.FieldError{Field: "name", Message: "required"})
		}
		if len([]rune(name)) > maxNameLen {
			errs = append(errs, apperr.FieldError{Field: "name", Message: "max 50 characters"})
		}
	}
	if p.Description != nil && len([]rune(*p.Description)) > maxDescriptionLen {
		errs = append(errs, apperr.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &apperr.ValidationError{Errors: errs}
	}
	return nil
}

func (p InfoPatch) apply(d *UserDeck) {
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.CoverImage != nil {
		d.CoverImage = *p.CoverImage
	}
}
