package wpcom

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/dashboard"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
)

// PostCardDTO is a post entry of the posts card
type PostCardDTO struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	FeaturedImage string `json:"featured_image"`
	Date          string `json:"date"`
}

// PostsCardDTO is the posts card
type PostsCardDTO struct {
	HasPublished bool          `json:"has_published"`
	Draft        []PostCardDTO `json:"draft"`
	Scheduled    []PostCardDTO `json:"scheduled"`
}

// CardsDTO is the cards-data response
type CardsDTO struct {
	Posts *PostsCardDTO `json:"posts"`
}

// ToDomain maps the response. Post dates use dashboard.PostDateLayout.
func (d *CardsDTO) ToDomain() (*dashboard.Cards, error) {
	cards := &dashboard.Cards{}
	if d.Posts == nil {
		return cards, nil
	}
	draft, err := toPostCards(d.Posts.Draft)
	if err != nil {
		return nil, err
	}
	scheduled, err := toPostCards(d.Posts.Scheduled)
	if err != nil {
		return nil, err
	}
	cards.Posts = &dashboard.PostsCard{HasPublished: d.Posts.HasPublished, Draft: draft, Scheduled: scheduled}
	return cards, nil
}

func toPostCards(dtos []PostCardDTO) ([]dashboard.PostCard, error) {
	out := make([]dashboard.PostCard, 0, len(dtos))
	for _, p := range dtos {
		date, err := time.Parse(dashboard.PostDateLayout, p.Date)
		if err != nil {
			return nil, shared.WrapNetworkError(shared.ErrorParseError, fmt.Errorf("post %d date: %w", p.ID, err))
		}
		out = append(out, dashboard.PostCard{
			ID:            p.ID,
			Title:         p.Title,
			Content:       p.Content,
			FeaturedImage: p.FeaturedImage,
			Date:          date,
		})
	}
	return out, nil
}

// DashboardRestClient calls the My Site dashboard endpoint
type DashboardRestClient struct {
	transport Transport
}

// NewDashboardRestClient creates a dashboard client
func NewDashboardRestClient(transport Transport) *DashboardRestClient {
	return &DashboardRestClient{transport: transport}
}

// FetchCards fetches the posts card of a site. A response without any known
// card yields nil cards and no error.
func (c *DashboardRestClient) FetchCards(ctx context.Context, site shared.Site) (*dashboard.Cards, error) {
	params := url.Values{"cards": {"posts"}}
	body, err := c.transport.GetWPCom(ctx, network.WPComV2, fmt.Sprintf("sites/%d/dashboard/cards-data/", site.SiteID), params)
	if err != nil {
		return nil, err
	}
	if !gjson.GetBytes(body, "posts").IsObject() {
		return nil, nil
	}
	var dto CardsDTO
	if err := network.Decode(body, &dto); err != nil {
		return nil, err
	}
	return dto.ToDomain()
}
