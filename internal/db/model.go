// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	AboutCard struct {
		ID, Title, Description, ImageURL, Style, DisplayOrder, CreatedAt, UpdatedAt string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Member struct {
		ID, Name, Role, ProfileURL, AvatarURL, Status, DisplayOrder, IsLeader, CreatedAt, UpdatedAt string
	}
	News struct {
		ID, Title, Slug, Content, Excerpt, ImageURL, AuthorID, LastEditedBy, PublishedAt, IsArchived, IsDeleted, DisplayOrder, CreatedAt, UpdatedAt string

		Author string
	}
	Setting struct {
		Key, Value, UpdatedAt, UpdatedBy string
	}
	User struct {
		ID, Username, PasswordHash, Role, IsActive, CreatedAt, LastLoginAt string
	}
}{
	AboutCard: struct {
		ID, Title, Description, ImageURL, Style, DisplayOrder, CreatedAt, UpdatedAt string
	}{
		ID:           "aboutCardId",
		Title:        "title",
		Description:  "description",
		ImageURL:     "imageUrl",
		Style:        "style",
		DisplayOrder: "displayOrder",
		CreatedAt:    "createdAt",
		UpdatedAt:    "updatedAt",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Member: struct {
		ID, Name, Role, ProfileURL, AvatarURL, Status, DisplayOrder, IsLeader, CreatedAt, UpdatedAt string
	}{
		ID:           "memberId",
		Name:         "name",
		Role:         "role",
		ProfileURL:   "profileUrl",
		AvatarURL:    "avatarUrl",
		Status:       "status",
		DisplayOrder: "displayOrder",
		IsLeader:     "isLeader",
		CreatedAt:    "createdAt",
		UpdatedAt:    "updatedAt",
	},
	News: struct {
		ID, Title, Slug, Content, Excerpt, ImageURL, AuthorID, LastEditedBy, PublishedAt, IsArchived, IsDeleted, DisplayOrder, CreatedAt, UpdatedAt string

		Author string
	}{
		ID:           "newsId",
		Title:        "title",
		Slug:         "slug",
		Content:      "content",
		Excerpt:      "excerpt",
		ImageURL:     "imageUrl",
		AuthorID:     "authorId",
		LastEditedBy: "lastEditedBy",
		PublishedAt:  "publishedAt",
		IsArchived:   "isArchived",
		IsDeleted:    "isDeleted",
		DisplayOrder: "displayOrder",
		CreatedAt:    "createdAt",
		UpdatedAt:    "updatedAt",

		Author: "Author",
	},
	Setting: struct {
		Key, Value, UpdatedAt, UpdatedBy string
	}{
		Key:       "key",
		Value:     "value",
		UpdatedAt: "updatedAt",
		UpdatedBy: "updatedBy",
	},
	User: struct {
		ID, Username, PasswordHash, Role, IsActive, CreatedAt, LastLoginAt string
	}{
		ID:           "userId",
		Username:     "username",
		PasswordHash: "passwordHash",
		Role:         "role",
		IsActive:     "isActive",
		CreatedAt:    "createdAt",
		LastLoginAt:  "lastLoginAt",
	},
}

var Tables = struct {
	AboutCard struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	Member struct {
		Name, Alias string
	}
	News struct {
		Name, Alias string
	}
	Setting struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	AboutCard: struct {
		Name, Alias string
	}{
		Name:  "aboutCards",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Member: struct {
		Name, Alias string
	}{
		Name:  "members",
		Alias: "t",
	},
	News: struct {
		Name, Alias string
	}{
		Name:  "news",
		Alias: "t",
	},
	Setting: struct {
		Name, Alias string
	}{
		Name:  "settings",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type AboutCard struct {
	tableName struct{} `pg:"aboutCards,alias:t,discard_unknown_columns"`

	ID           int       `pg:"aboutCardId,pk"`
	Title        string    `pg:"title,use_zero"`
	Description  string    `pg:"description,use_zero"`
	ImageURL     *string   `pg:"imageUrl"`
	Style        string    `pg:"style,use_zero"`
	DisplayOrder int       `pg:"displayOrder,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
	UpdatedAt    time.Time `pg:"updatedAt,use_zero"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Member struct {
	tableName struct{} `pg:"members,alias:t,discard_unknown_columns"`

	ID           int       `pg:"memberId,pk"`
	Name         string    `pg:"name,use_zero"`
	Role         string    `pg:"role,use_zero"`
	ProfileURL   *string   `pg:"profileUrl"`
	AvatarURL    *string   `pg:"avatarUrl"`
	Status       string    `pg:"status,use_zero"`
	DisplayOrder int       `pg:"displayOrder,use_zero"`
	IsLeader     bool      `pg:"isLeader,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
	UpdatedAt    time.Time `pg:"updatedAt,use_zero"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID           int        `pg:"newsId,pk"`
	Title        string     `pg:"title,use_zero"`
	Slug         string     `pg:"slug,use_zero"`
	Content      string     `pg:"content,use_zero"`
	Excerpt      *string    `pg:"excerpt"`
	ImageURL     *string    `pg:"imageUrl"`
	AuthorID     int        `pg:"authorId,use_zero"`
	LastEditedBy *int       `pg:"lastEditedBy"`
	PublishedAt  *time.Time `pg:"publishedAt"`
	IsArchived   bool       `pg:"isArchived,use_zero"`
	IsDeleted    bool       `pg:"isDeleted,use_zero"`
	DisplayOrder *int       `pg:"displayOrder"`
	CreatedAt    time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt    time.Time  `pg:"updatedAt,use_zero"`

	Author *User `pg:"fk:authorId,rel:has-one"`
}

type Setting struct {
	tableName struct{} `pg:"settings,alias:t,discard_unknown_columns"`

	Key       string    `pg:"key,pk"`
	Value     string    `pg:"value,use_zero"`
	UpdatedAt time.Time `pg:"updatedAt,use_zero"`
	UpdatedBy *int      `pg:"updatedBy"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int        `pg:"userId,pk"`
	Username     string     `pg:"username,use_zero"`
	PasswordHash string     `pg:"passwordHash,use_zero"`
	Role         string     `pg:"role,use_zero"`
	IsActive     bool       `pg:"isActive,use_zero"`
	CreatedAt    time.Time  `pg:"createdAt,use_zero"`
	LastLoginAt  *time.Time `pg:"lastLoginAt"`
}
