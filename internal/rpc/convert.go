package rpc

import (
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

func newList[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNewsSummary(n newsportal.News) NewsSummary {
	return NewsSummary{
		NewsID:      n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		Excerpt:     n.Excerpt,
		ImageURL:    n.ImageURL,
		Author:      n.AuthorName,
		PublishedAt: n.PublishedAt,
	}
}

func NewNews(n newsportal.News) News {
	return News{NewsSummary: NewNewsSummary(n), Content: n.Content}
}

func NewNewsList(page newsportal.NewsPage) NewsList {
	return NewsList{Items: newList(page.Items, NewNewsSummary), Total: page.Total}
}

func NewMember(m newsportal.Member) Member {
	return Member{
		MemberID:   m.ID,
		Name:       m.Name,
		Role:       m.Role,
		ProfileURL: m.ProfileURL,
		AvatarURL:  m.AvatarURL,
		IsLeader:   m.IsLeader,
	}
}

func NewAboutCard(c newsportal.AboutCard) AboutCard {
	return AboutCard{
		AboutCardID: c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Style:       c.Style,
	}
}

func NewBackground(b newsportal.Background) Background {
	return Background{ImageURL: b.ImageURL, Color: b.Color, Opacity: b.Opacity}
}

func (f NewsFilter) ToSearch() *db.NewsSearch {
	search := &db.NewsSearch{AuthorID: f.AuthorID}
	if f.Limit != nil {
		search.Limit = *f.Limit
	}
	if f.Page != nil {
		search.SetPage(*f.Page)
	}

	return search
}
