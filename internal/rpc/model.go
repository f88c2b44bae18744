package rpc

import (
	"time"
)

type NewsFilter struct {
	// Limit defaults to 100.
	Limit    *int `json:"limit,omitempty"`
	// Page is 1-based.
	Page     *int `json:"page,omitempty"`
	AuthorID *int `json:"authorId,omitempty"`
}

type NewsSummary struct {
	NewsID      int        `json:"newsId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type News struct {
	NewsSummary
	Content string `json:"content"`
}

type NewsList struct {
	Items []NewsSummary `json:"items"`
	Total int           `json:"total"`
}

type Member struct {
	MemberID   int     `json:"memberId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	ProfileURL *string `json:"profileUrl,omitempty"`
	AvatarURL  *string `json:"avatarUrl,omitempty"`
	IsLeader   bool    `json:"isLeader"`
}

type AboutCard struct {
	AboutCardID int     `json:"aboutCardId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Style       string  `json:"style"`
}

type Background struct {
	ImageURL string  `json:"imageUrl"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
}
