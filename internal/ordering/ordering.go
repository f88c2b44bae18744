// Package ordering maintains integer display positions within a collection.
//
// Every function takes the collection in its current display order (see Sort)
// and returns the collection in its new order together with the subset of
// items whose position value changed, so callers only rewrite those rows.
package ordering

import (
	"sort"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

// MaxCollectionSize bounds the collections dense renormalization is used for.
const MaxCollectionSize = 5000

type Item struct {
	ID    int
	Order int
}

// Sort orders items by position, ties broken by ascending id.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}

// Next returns the position for an item appended at the end: max+1, or 0 for
// an empty collection.
func Next(items []Item) int {
	if len(items) == 0 {
		return 0
	}
	next := items[0].Order
	for _, it := range items[1:] {
		if it.Order > next {
			next = it.Order
		}
	}
	return next + 1
}

// Normalize rewrites positions to 0..N-1 keeping the given order.
func Normalize(items []Item) (ordered, changed []Item) {
	ordered = make([]Item, len(items))
	for i, it := range items {
		ordered[i] = Item{ID: it.ID, Order: i}
		if it.Order != i {
			changed = append(changed, ordered[i])
		}
	}
	return ordered, changed
}

// Remove drops id from the collection and closes the gap.
func Remove(items []Item, id int) (ordered, changed []Item) {
	rest := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			rest = append(rest, it)
		}
	}
	return Normalize(rest)
}

// Move places id at newIndex. Moving from index A to B>A shifts every item in
// (A, B] down by one, moving to B<A shifts [B, A) up by one; only those items
// and the moved one are reported as changed when positions were dense.
// An index past the end is clamped to the last position.
func Move(items []Item, id, newIndex int) (ordered, changed []Item, err error) {
	if err := checkSize(len(items)); err != nil {
		return nil, nil, err
	}
	if newIndex < 0 {
		return nil, nil, domain.NewValidationError(domain.FieldError{Field: "position", Message: "must be no less than 0"})
	}

	from := -1
	for i, it := range items {
		if it.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, nil, domain.NewNotFound("item", id)
	}

	if newIndex > len(items)-1 {
		newIndex = len(items) - 1
	}

	seq := make([]Item, 0, len(items))
	seq = append(seq, items[:from]...)
	seq = append(seq, items[from+1:]...)
	seq = append(seq[:newIndex], append([]Item{items[from]}, seq[newIndex:]...)...)

	ordered, changed = Normalize(seq)
	return ordered, changed, nil
}

// Reorder puts the named ids first, at positions 0..k-1, followed by every
// other item in its prior relative order. Duplicate or unknown ids fail the
// whole request.
func Reorder(items []Item, named []int) (ordered, changed []Item, err error) {
	if err := checkSize(len(items)); err != nil {
		return nil, nil, err
	}

	known := make(map[int]Item, len(items))
	for _, it := range items {
		known[it.ID] = it
	}

	var rerr domain.InvalidReorderError
	seen := make(map[int]bool, len(named))
	for _, id := range named {
		if seen[id] {
			rerr.Duplicates = appendOnce(rerr.Duplicates, id)
			continue
		}
		seen[id] = true
		if _, ok := known[id]; !ok {
			rerr.Unknown = append(rerr.Unknown, id)
		}
	}
	if len(rerr.Duplicates) > 0 || len(rerr.Unknown) > 0 {
		return nil, nil, &rerr
	}

	seq := make([]Item, 0, len(items))
	for _, id := range named {
		seq = append(seq, known[id])
	}
	for _, it := range items {
		if !seen[it.ID] {
			seq = append(seq, it)
		}
	}

	ordered, changed = Normalize(seq)
	return ordered, changed, nil
}

// IDs returns item ids in order.
func IDs(items []Item) []int {
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func checkSize(n int) error {
	if n > MaxCollectionSize {
		return domain.NewValidationError(domain.FieldError{Field: "collection", Message: "too many items to reorder"})
	}
	return nil
}

func appendOnce(ids []int, id int) []int {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}
