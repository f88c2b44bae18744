package newsportal

import (
	"strconv"
	"time"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/lifecycle"
)

func statusOf(n *db.News) lifecycle.Status {
	return lifecycle.StatusOf(n.PublishedAt, n.IsArchived, n.IsDeleted)
}

func newsResource(n *db.News) access.Resource {
	return access.Resource{Kind: access.KindNews, OwnerID: n.AuthorID, Public: statusOf(n).Public()}
}

// NewNews drops the author relation, keeping only the username.
func NewNews(n *db.News) News {
	news := News{News: *n, Status: statusOf(n)}
	if n.Author != nil {
		news.AuthorName = n.Author.Username
	}
	news.Author = nil

	return news
}

func NewNewsList(in []db.News) []News {
	out := make([]News, len(in))
	for i := range in {
		out[i] = NewNews(&in[i])
	}

	return out
}

func NewAdminNewsTabs(in []db.News) AdminNewsTabs {
	tabs := AdminNewsTabs{Published: []News{}, Drafts: []News{}, Archived: []News{}}
	for i := range in {
		n := NewNews(&in[i])
		switch n.Status.State {
		case lifecycle.Published:
			tabs.Published = append(tabs.Published, n)
		case lifecycle.Archived:
			tabs.Archived = append(tabs.Archived, n)
		default:
			tabs.Drafts = append(tabs.Drafts, n)
		}
	}

	return tabs
}

func NewMember(m *db.Member) Member {
	return Member{Member: *m}
}

func NewMembers(in []db.Member) []Member {
	out := make([]Member, len(in))
	for i := range in {
		out[i] = NewMember(&in[i])
	}

	return out
}

func NewUser(u *db.User) User {
	return User{User: *u}
}

func NewUsers(in []db.User) []User {
	out := make([]User, len(in))
	for i := range in {
		out[i] = NewUser(&in[i])
	}

	return out
}

func NewAboutCard(c *db.AboutCard) AboutCard {
	return AboutCard{AboutCard: *c}
}

func NewAboutCards(in []db.AboutCard) []AboutCard {
	out := make([]AboutCard, len(in))
	for i := range in {
		out[i] = NewAboutCard(&in[i])
	}

	return out
}

// NewBackground fills missing or malformed keys with defaults.
func NewBackground(settings []db.Setting) Background {
	bg := Background{Color: DefaultBgColor, Opacity: DefaultBgOpacity}
	for _, s := range settings {
		switch s.Key {
		case SettingBgImageURL:
			bg.ImageURL = s.Value
		case SettingBgColor:
			if s.Value != "" {
				bg.Color = s.Value
			}
		case SettingBgOpacity:
			if v, err := strconv.ParseFloat(s.Value, 64); err == nil && v >= 0 && v <= 1 {
				bg.Opacity = v
			}
		}
		if bg.UpdatedAt == nil || s.UpdatedAt.After(*bg.UpdatedAt) {
			at := s.UpdatedAt
			bg.UpdatedAt = &at
		}
	}

	return bg
}

func backgroundSettings(p BackgroundPatch, by int, at time.Time) []db.Setting {
	var out []db.Setting
	add := func(key, value string) {
		out = append(out, db.Setting{Key: key, Value: value, UpdatedAt: at, UpdatedBy: &by})
	}
	if p.ImageURL != nil {
		add(SettingBgImageURL, *p.ImageURL)
	}
	if p.Color != nil {
		add(SettingBgColor, *p.Color)
	}
	if p.Opacity != nil {
		add(SettingBgOpacity, strconv.FormatFloat(*p.Opacity, 'f', -1, 64))
	}

	return out
}

// optional normalizes an optional text field, empty means NULL.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
