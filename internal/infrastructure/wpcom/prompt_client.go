package wpcom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/network"
)

// PromptDTO is a prompt as returned by wpcom/v2/sites/{id}/blogging-prompts
type PromptDTO struct {
	ID                  int64       `json:"id"`
	Text                string      `json:"text"`
	Title               *string     `json:"title"`
	Content             string      `json:"content"`
	Date                string      `json:"date"`
	Answered            bool        `json:"answered"`
	Attribution         string      `json:"attribution"`
	AnsweredUsersCount  int         `json:"answered_users_count"`
	AnsweredUsersSample []avatarDTO `json:"answered_users_sample"`
}

type avatarDTO struct {
	Avatar string `json:"avatar"`
}

type promptsResponse struct {
	Prompts []PromptDTO `json:"prompts"`
}

// ToDomain maps the DTO. A missing title becomes "".
func (d *PromptDTO) ToDomain(localSiteID int64) (bloggingprompt.Prompt, error) {
	date, err := bloggingprompt.ParseDate(d.Date)
	if err != nil {
		return bloggingprompt.Prompt{}, shared.WrapNetworkError(shared.ErrorParseError, fmt.Errorf("prompt %d date: %w", d.ID, err))
	}
	p := bloggingprompt.Prompt{
		ID:                    d.ID,
		LocalSiteID:           localSiteID,
		Text:                  d.Text,
		Content:               d.Content,
		Date:                  date,
		IsAnswered:            d.Answered,
		Attribution:           d.Attribution,
		RespondentsCount:      d.AnsweredUsersCount,
		RespondentsAvatarURLs: make([]string, 0, len(d.AnsweredUsersSample)),
	}
	if d.Title != nil {
		p.Title = *d.Title
	}
	for _, a := range d.AnsweredUsersSample {
		p.RespondentsAvatarURLs = append(p.RespondentsAvatarURLs, a.Avatar)
	}
	return p, nil
}

// PromptRestClient calls the blogging prompts endpoint
type PromptRestClient struct {
	transport Transport
}

// NewPromptRestClient creates a prompts client
func NewPromptRestClient(transport Transport) *PromptRestClient {
	return &PromptRestClient{transport: transport}
}

// FetchPrompts fetches number prompts starting at the day of from
func (c *PromptRestClient) FetchPrompts(ctx context.Context, site shared.Site, number int, from time.Time) ([]bloggingprompt.Prompt, error) {
	params := url.Values{
		"number": {strconv.Itoa(number)},
		"from":   {bloggingprompt.FormatDate(from)},
	}
	body, err := c.transport.GetWPCom(ctx, network.WPComV2, fmt.Sprintf("sites/%d/blogging-prompts", site.SiteID), params)
	if err != nil {
		return nil, err
	}
	var resp promptsResponse
	if err := network.Decode(body, &resp); err != nil {
		return nil, err
	}
	prompts := make([]bloggingprompt.Prompt, 0, len(resp.Prompts))
	for i := range resp.Prompts {
		p, err := resp.Prompts[i].ToDomain(site.LocalID)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}
