package rest

import (
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNews(n newsportal.News) News {
	return News{
		NewsID:       n.ID,
		Title:        n.Title,
		Slug:         n.Slug,
		Content:      n.Content,
		Excerpt:      n.Excerpt,
		ImageURL:     n.ImageURL,
		AuthorID:     n.AuthorID,
		Author:       n.AuthorName,
		LastEditedBy: n.LastEditedBy,
		State:        string(n.Status.State),
		IsArchived:   n.IsArchived,
		IsDeleted:    n.IsDeleted,
		DisplayOrder: n.DisplayOrder,
		PublishedAt:  n.PublishedAt,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func NewNewsList(page newsportal.NewsPage) NewsList {
	return NewsList{Items: Map(page.Items, NewNews), Total: page.Total}
}

func NewAdminNewsTabs(t newsportal.AdminNewsTabs) AdminNewsTabs {
	return AdminNewsTabs{
		Published: Map(t.Published, NewNews),
		Drafts:    Map(t.Drafts, NewNews),
		Archived:  Map(t.Archived, NewNews),
	}
}

func NewMember(m newsportal.Member) Member {
	return Member{
		MemberID:     m.ID,
		Name:         m.Name,
		Role:         m.Role,
		Status:       m.Status,
		ProfileURL:   m.ProfileURL,
		AvatarURL:    m.AvatarURL,
		DisplayOrder: m.DisplayOrder,
		IsLeader:     m.IsLeader,
		UpdatedAt:    m.UpdatedAt,
	}
}

func NewAboutCard(c newsportal.AboutCard) AboutCard {
	return AboutCard{
		AboutCardID:  c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Style:        c.Style,
		DisplayOrder: c.DisplayOrder,
	}
}

func NewBackground(b newsportal.Background) Background {
	return Background{ImageURL: b.ImageURL, Color: b.Color, Opacity: b.Opacity, UpdatedAt: b.UpdatedAt}
}

func NewUser(u db.User) User {
	return User{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func NewStaffUser(u newsportal.User) User {
	return NewUser(u.User)
}
