package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// SystemSettings is the complete set of runtime knobs an administrator can
// change. Every field is named and typed; unknown keys are rejected at the
// transport boundary.
type SystemSettings struct {
	RegistrationEnabled bool `json:"registration_enabled"`
	DefaultPageSize     int  `json:"default_page_size"`
	MaxPageSize         int  `json:"max_page_size"`
}

// DefaultSystemSettings is used until an administrator saves settings.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		RegistrationEnabled: true,
		DefaultPageSize:     100,
		MaxPageSize:         500,
	}
}

var errDefaultAboveMax = errors.New("must not exceed max_page_size")

func (s SystemSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DefaultPageSize, validation.Required, validation.Min(1), validation.Max(1000),
			validation.By(func(any) error {
				if s.DefaultPageSize > s.MaxPageSize {
					return errDefaultAboveMax
				}
				return nil
			})),
		validation.Field(&s.MaxPageSize, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

// ClampLimit turns a requested page size into one within bounds. A
// non-positive request selects the default page size.
func (s SystemSettings) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.DefaultPageSize
	}
	if limit > s.MaxPageSize {
		return s.MaxPageSize
	}
	return limit
}
