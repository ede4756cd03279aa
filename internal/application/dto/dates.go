package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/Comercial-api/internal/domain"
)

// ParseDate acepta YYYY-MM-DD o RFC3339. Vacío = sin fecha (nil, nil).
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, domain.NewValidation(field, "fecha inválida, use YYYY-MM-DD")
	}
	return &t, nil
}
