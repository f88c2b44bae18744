package rest

import "time"

type News struct {
	NewsID       int        `json:"newsId"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content"`
	Excerpt      *string    `json:"excerpt"`
	ImageURL     *string    `json:"imageUrl"`
	AuthorID     int        `json:"authorId"`
	Author       string     `json:"author"`
	LastEditedBy *int       `json:"lastEditedBy"`
	State        string     `json:"state"`
	IsArchived   bool       `json:"isArchived"`
	IsDeleted    bool       `json:"isDeleted"`
	DisplayOrder *int       `json:"displayOrder"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type NewsList struct {
	Items []News `json:"items"`
	Total int    `json:"total"`
}

type AdminNewsTabs struct {
	Published []News `json:"published"`
	Drafts    []News `json:"drafts"`
	Archived  []News `json:"archived"`
}

type Member struct {
	MemberID     int       `json:"memberId"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	ProfileURL   *string   `json:"profileUrl"`
	AvatarURL    *string   `json:"avatarUrl"`
	DisplayOrder int       `json:"displayOrder"`
	IsLeader     bool      `json:"isLeader"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AboutCard struct {
	AboutCardID  int     `json:"aboutCardId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"imageUrl"`
	Style        string  `json:"style"`
	DisplayOrder int     `json:"displayOrder"`
}

type Background struct {
	ImageURL  string     `json:"imageUrl"`
	Color     string     `json:"color"`
	Opacity   float64    `json:"opacity"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type User struct {
	UserID      int        `json:"userId"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type ReorderRequest struct {
	IDs []int `json:"ids"`
}

type MoveRequest struct {
	Position *int `json:"position"`
}

type BulkStatusRequest struct {
	IDs    []int  `json:"ids"`
	Status string `json:"status"`
}

type BulkRoleRequest struct {
	IDs  []int  `json:"ids"`
	Role string `json:"role"`
}

// ErrorResponse is the body of every failed request. Optional fields depend on the error kind.
type ErrorResponse struct {
	Error      string       `json:"error"`
	Fields     []FieldError `json:"fields,omitempty"`
	Required   string       `json:"required,omitempty"`
	Current    string       `json:"current,omitempty"`
	State      string       `json:"state,omitempty"`
	Duplicates []int        `json:"duplicates,omitempty"`
	Unknown    []int        `json:"unknown,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
