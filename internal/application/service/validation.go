package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	telephonePattern = regexp.MustCompile(`^[\d\s+\-]+$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	loginNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\s]+$`)
)

// AnalyticsRefresher republishes the dashboard aggregates after a mutation
type AnalyticsRefresher interface {
	RefreshAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error)
}

func requireText(fe *apperror.FieldErrors, field, message, value string) {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, message)
	}
}

func requireNonNegative(fe *apperror.FieldErrors, field, label string, value *decimal.Decimal) {
	if value != nil && value.IsNegative() {
		fe.Add(field, label+" must be non-negative")
	}
}

func requirePositive(fe *apperror.FieldErrors, field, label string, value decimal.Decimal) {
	if !value.IsPositive() {
		fe.Add(field, label+" must be positive")
	}
}

func validateTelephone(fe *apperror.FieldErrors, telephone *string) {
	if telephone != nil && *telephone != "" && !telephonePattern.MatchString(*telephone) {
		fe.Add("telephone", "Telephone may only contain digits, spaces, + and -")
	}
}

func validateEmail(fe *apperror.FieldErrors, email *string) {
	if email != nil && *email != "" && !emailPattern.MatchString(*email) {
		fe.Add("email", "Invalid email format")
	}
}

// trimPtr trims an optional string, returning nil when nothing remains
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// refresh republishes analytics, logging instead of failing the mutation
func refresh(ctx context.Context, analytics AnalyticsRefresher) {
	if analytics == nil {
		return
	}
	if _, err := analytics.RefreshAnalytics(ctx); err != nil {
		log.Printf("Warning: failed to refresh analytics: %v", err)
	}
}
