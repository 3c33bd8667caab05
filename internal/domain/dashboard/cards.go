// Package dashboard holds the My Site dashboard cards.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// PostDateLayout is the format of post dates in the cards payload
const PostDateLayout = "2006-01-02 15:04:05"

// CardType names a dashboard card
type CardType string

const (
	CardPosts CardType = "POSTS"
)

// PostCard is a draft or scheduled post shown on the posts card
type PostCard struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image"`
	Date          time.Time `json:"date"`
}

// PostsCard lists a site's drafts and scheduled posts
type PostsCard struct {
	HasPublished bool       `json:"has_published"`
	Draft        []PostCard `json:"draft"`
	Scheduled    []PostCard `json:"scheduled"`
}

// Cards is the set of cards fetched for a site
type Cards struct {
	Posts *PostsCard `json:"posts,omitempty"`
}

// ErrorType classifies card failures
type ErrorType string

const (
	ErrorGeneric               ErrorType = "GENERIC_ERROR"
	ErrorAuthorizationRequired ErrorType = "AUTHORIZATION_REQUIRED"
	ErrorInvalidResponse       ErrorType = "INVALID_RESPONSE"
	ErrorAPI                   ErrorType = "API_ERROR"
	ErrorTimeout               ErrorType = "TIMEOUT"
)

// CardsError is returned by FetchCards
type CardsError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message,omitempty"`
}

func (e *CardsError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cards error %s", e.Type)
	}
	return fmt.Sprintf("cards error %s: %s", e.Type, e.Message)
}

// ErrorFromNetwork maps a transport failure by its category
func ErrorFromNetwork(err error) *CardsError {
	ne := shared.AsNetworkError(err)
	if ne == nil {
		return nil
	}
	return &CardsError{Type: ErrorType(shared.CategoryOf(ne.Type)), Message: ne.Message}
}

// Repository persists the cards of a site
type Repository interface {
	Save(ctx context.Context, localSiteID int64, cards Cards) error
	Find(ctx context.Context, localSiteID int64) (*Cards, error)
}
