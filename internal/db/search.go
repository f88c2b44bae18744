package db

import (
	"github.com/go-pg/pg/v10/orm"
	"github.com/go-pg/urlstruct"
)

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusReserve  = "reserve"
)

// NewsSearch filters news listings. It is decoded from query strings with urlstruct.
type NewsSearch struct {
	urlstruct.Pager

	AuthorID *int    `urlstruct:"authorId"`
	Query    *string `urlstruct:"q"`
}

func (s *NewsSearch) apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}

	if s.AuthorID != nil {
		q.Where(`"t"."authorId" = ?`, *s.AuthorID)
	}

	if s.Query != nil && *s.Query != "" {
		q.Where(`"t"."title" ILIKE ?`, "%"+*s.Query+"%")
	}

	return q
}

func (s *NewsSearch) page(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}

	return q.Limit(s.GetLimit()).Offset(s.GetOffset())
}

// MemberSearch filters the admin roster.
type MemberSearch struct {
	Status *string `urlstruct:"status"`
	Role   *string `urlstruct:"role"`
}

func (s *MemberSearch) apply(q *orm.Query) *orm.Query {
	if s == nil {
		return q
	}

	if s.Status != nil {
		q.Where(`"t"."status" = ?`, *s.Status)
	}

	if s.Role != nil {
		q.Where(`"t"."role" = ?`, *s.Role)
	}

	return q
}
