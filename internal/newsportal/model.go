package newsportal

import (
	"time"

	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/lifecycle"
)

// About card frame styles.
const (
	StyleComicThickFrame = "comic-thick-frame"
	StyleComicHalftone   = "comic-halftone"
	StyleComicSpeech     = "comic-speech"
	StyleNoirPlain       = "noir-plain"
)

var AboutCardStyles = []string{StyleComicThickFrame, StyleComicHalftone, StyleComicSpeech, StyleNoirPlain}

var MemberStatuses = []string{db.MemberStatusActive, db.MemberStatusInactive, db.MemberStatusReserve}

// DefaultMemberRoles is the clan rank list used when none is configured.
var DefaultMemberRoles = []string{"Глава клана", "Офицер", "Ветеран", "Боец", "Новобранец"}

// Background setting keys and defaults.
const (
	SettingBgImageURL = "bg_image_url"
	SettingBgColor    = "bg_color"
	SettingBgOpacity  = "bg_opacity"

	DefaultBgColor   = "#1a1a1a"
	DefaultBgOpacity = 0.7
)

type News struct {
	db.News
	Status     lifecycle.Status
	AuthorName string
}

type NewsPage struct {
	Items []News
	Total int
}

// AdminNewsTabs splits non-deleted news by lifecycle state.
type AdminNewsTabs struct {
	Published []News
	Drafts    []News
	Archived  []News
}

type NewsInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Excerpt  *string `json:"excerpt"`
	ImageURL *string `json:"imageUrl"`
}

// NewsPatch carries changed fields only, nil means unchanged.
// An empty Excerpt or ImageURL clears the value.
type NewsPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Excerpt  *string `json:"excerpt"`
	ImageURL *string `json:"imageUrl"`
}

func (p NewsPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Excerpt == nil && p.ImageURL == nil
}

type Member struct {
	db.Member
}

type MemberInput struct {
	Name       string  `json:"name" yaml:"name"`
	Role       string  `json:"role" yaml:"role"`
	Status     string  `json:"status" yaml:"status"`
	ProfileURL *string `json:"profileUrl" yaml:"profileUrl"`
	AvatarURL  *string `json:"avatarUrl" yaml:"avatarUrl"`
}

type MemberPatch struct {
	Name       *string `json:"name"`
	ProfileURL *string `json:"profileUrl"`
	AvatarURL  *string `json:"avatarUrl"`
}

type AboutCard struct {
	db.AboutCard
}

type AboutCardInput struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	ImageURL    *string `json:"imageUrl" yaml:"imageUrl"`
	Style       string  `json:"style" yaml:"style"`
}

type AboutCardPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Style       *string `json:"style"`
}

type Background struct {
	ImageURL  string     `json:"imageUrl"`
	Color     string     `json:"color"`
	Opacity   float64    `json:"opacity"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type BackgroundPatch struct {
	ImageURL *string  `json:"imageUrl" yaml:"imageUrl"`
	Color    *string  `json:"color" yaml:"color"`
	Opacity  *float64 `json:"opacity" yaml:"opacity"`
}

// User is a staff account.
type User struct {
	db.User
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Role defaults to author.
	Role string `json:"role"`
}

// UserPatch carries changed fields only, nil means unchanged.
type UserPatch struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}
