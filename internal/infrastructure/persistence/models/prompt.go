package models

import (
	"encoding/json"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
)

// BloggingPromptModel is a cached daily writing prompt. Date is stored as a
// calendar day string so lookups ignore time zones.
type BloggingPromptModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement:false"`
	LocalSiteID       int64  `gorm:"primaryKey;autoIncrement:false"`
	Text              string `gorm:"type:text"`
	Title             string `gorm:"type:varchar(255)"`
	Content           string `gorm:"type:text"`
	Date              string `gorm:"type:varchar(10);not null;index"`
	IsAnswered        bool   `gorm:"not null;default:false"`
	Attribution       string `gorm:"type:varchar(100)"`
	RespondentsCount  int    `gorm:"not null;default:0"`
	RespondentsAvatar string `gorm:"type:text;column:respondents_avatar_urls"`
}

// TableName returns the table name for GORM
func (BloggingPromptModel) TableName() string {
	return "blogging_prompts"
}

// ToDomain converts the persistence model to a domain Prompt.
func (m *BloggingPromptModel) ToDomain() bloggingprompt.Prompt {
	p := bloggingprompt.Prompt{
		ID:                    m.ID,
		LocalSiteID:           m.LocalSiteID,
		Text:                  m.Text,
		Title:                 m.Title,
		Content:               m.Content,
		IsAnswered:            m.IsAnswered,
		Attribution:           m.Attribution,
		RespondentsCount:      m.RespondentsCount,
		RespondentsAvatarURLs: []string{},
	}
	if d, err := bloggingprompt.ParseDate(m.Date); err == nil {
		p.Date = d
	}
	if m.RespondentsAvatar != "" {
		var urls []string
		if err := json.Unmarshal([]byte(m.RespondentsAvatar), &urls); err == nil {
			p.RespondentsAvatarURLs = urls
		}
	}
	return p
}

// BloggingPromptModelFromDomain creates a persistence model from a domain Prompt.
func BloggingPromptModelFromDomain(localSiteID int64, p bloggingprompt.Prompt) BloggingPromptModel {
	m := BloggingPromptModel{
		ID:               p.ID,
		LocalSiteID:      localSiteID,
		Text:             p.Text,
		Title:            p.Title,
		Content:          p.Content,
		Date:             bloggingprompt.FormatDate(p.Date),
		IsAnswered:       p.IsAnswered,
		Attribution:      p.Attribution,
		RespondentsCount: p.RespondentsCount,
	}
	if len(p.RespondentsAvatarURLs) > 0 {
		if data, err := json.Marshal(p.RespondentsAvatarURLs); err == nil {
			m.RespondentsAvatar = string(data)
		}
	}
	return m
}

// PromptDay normalizes a time to the stored day key.
func PromptDay(t time.Time) string {
	return bloggingprompt.FormatDate(t)
}
