// Package lifecycle implements the news state machine: Draft, Published and
// Archived, plus the orthogonal soft-delete flag.
package lifecycle

import (
	"time"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

const entity = "news"

type State string

const (
	Draft     State = "draft"
	Published State = "published"
	Archived  State = "archived"
)

// Status is the full lifecycle position of an item. The state held before a
// soft delete is kept in State, so Restore needs no extra bookkeeping.
type Status struct {
	State   State
	Deleted bool
}

// StatusOf derives the status from stored columns.
func StatusOf(publishedAt *time.Time, isArchived, isDeleted bool) Status {
	st := Status{State: Draft, Deleted: isDeleted}
	switch {
	case publishedAt == nil:
	case isArchived:
		st.State = Archived
	default:
		st.State = Published
	}
	return st
}

func (s Status) String() string {
	if s.Deleted {
		return "deleted(" + string(s.State) + ")"
	}
	return string(s.State)
}

// Public reports whether the item belongs to public listings.
func (s Status) Public() bool {
	return s.State == Published && !s.Deleted
}

type Action string

const (
	Publish    Action = "publish"
	Update     Action = "update"
	Archive    Action = "archive"
	Unarchive  Action = "unarchive"
	SoftDelete Action = "delete"
	Restore    Action = "restore"
	Reorder    Action = "reorder"
)

// Next returns the status after applying action. A *domain.StateError is
// returned when the action is a no-op (ErrAlreadyInState) or illegal
// (ErrInvalidTransition); in both cases the returned status equals s.
func Next(id int, s Status, action Action) (Status, error) {
	if s.Deleted {
		switch action {
		case Restore:
			return Status{State: s.State}, nil
		case SoftDelete:
			return s, domain.AlreadyInState(entity, id, s.String(), string(action))
		default:
			return s, domain.InvalidTransition(entity, id, s.String(), string(action))
		}
	}

	switch action {
	case Update:
		return s, nil
	case SoftDelete:
		return Status{State: s.State, Deleted: true}, nil
	case Restore:
		return s, domain.AlreadyInState(entity, id, s.String(), string(action))
	case Publish:
		return move(id, s, action, Draft, Published)
	case Archive:
		return move(id, s, action, Published, Archived)
	case Unarchive:
		return move(id, s, action, Archived, Published)
	case Reorder:
		if s.State == Published {
			return s, nil
		}
	}

	return s, domain.InvalidTransition(entity, id, s.String(), string(action))
}

func move(id int, s Status, action Action, from, to State) (Status, error) {
	switch s.State {
	case from:
		return Status{State: to}, nil
	case to:
		return s, domain.AlreadyInState(entity, id, s.String(), string(action))
	default:
		return s, domain.InvalidTransition(entity, id, s.String(), string(action))
	}
}
