// Package bloggingprompt holds the daily writing prompts offered to a site.
package bloggingprompt

import (
	"context"
	"fmt"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// DateLayout is the day format used by the prompts endpoint and the cache
const DateLayout = "2006-01-02"

// Prompt is a blogging prompt for one day
type Prompt struct {
	ID                    int64     `json:"id"`
	LocalSiteID           int64     `json:"local_site_id"`
	Text                  string    `json:"text"`
	Title                 string    `json:"title"`
	Content               string    `json:"content"`
	Date                  time.Time `json:"date"`
	IsAnswered            bool      `json:"is_answered"`
	Attribution           string    `json:"attribution"`
	RespondentsCount      int       `json:"respondents_count"`
	RespondentsAvatarURLs []string  `json:"respondents_avatar_urls"`
}

// FormatDate formats t as a prompt day
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a prompt day
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ErrorType classifies prompt failures
type ErrorType string

const (
	ErrorGeneric               ErrorType = "GENERIC_ERROR"
	ErrorAuthorizationRequired ErrorType = "AUTHORIZATION_REQUIRED"
	ErrorInvalidResponse       ErrorType = "INVALID_RESPONSE"
	ErrorAPI                   ErrorType = "API_ERROR"
	ErrorTimeout               ErrorType = "TIMEOUT"
)

// Error is returned by the prompts store
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("blogging prompts error %s: %s", e.Type, e.Message)
}

// ErrorFromNetwork maps a transport failure by its category
func ErrorFromNetwork(err error) *Error {
	ne := shared.AsNetworkError(err)
	if ne == nil {
		return nil
	}
	return &Error{Type: ErrorType(shared.CategoryOf(ne.Type)), Message: ne.Message}
}

// Repository persists prompts per site
type Repository interface {
	Upsert(ctx context.Context, localSiteID int64, prompts []Prompt) error
	FindForSite(ctx context.Context, localSiteID int64) ([]Prompt, error)
	FindForDate(ctx context.Context, localSiteID int64, date time.Time) (*Prompt, error)
}
