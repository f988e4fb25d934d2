package domain

import (
	"errors"
	"time"
)

// Collection selects which report-level action-item list a transition targets
type Collection string

const (
	CollectionYours  Collection = "yours"
	CollectionOthers Collection = "others"
)

// Contract-violation errors. These indicate a caller bug (bad index, bad enum),
// not a runtime condition, and are distinct from the extraction error taxonomy.
var (
	ErrInvalidCollection = errors.New("invalid action item collection")
	ErrIndexOutOfRange   = errors.New("action item index out of range")
	ErrInvalidStatus     = errors.New("invalid action item status")
)

// ParseCollection validates a collection selector string
func ParseCollection(s string) (Collection, bool) {
	switch Collection(s) {
	case CollectionYours, CollectionOthers:
		return Collection(s), true
	default:
		return "", false
	}
}

// UpdateActionItem returns a copy of the report with the item at index in the
// selected collection moved to newStatus. Snooze handling: an explicit
// snoozeUntil wins; otherwise COMPLETED clears any snooze (a completed item
// cannot remain snoozed) and any other status preserves it.
//
// Copy-on-write: the receiver is never mutated. The returned report shares
// every untouched field and slice with the original; only the targeted
// collection is reallocated.
func (r *Report) UpdateActionItem(col Collection, index int, newStatus ActionStatus, snoozeUntil *time.Time) (*Report, error) {
	switch newStatus {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted, ActionStatusBlocked:
	default:
		return nil, ErrInvalidStatus
	}

	var src []ActionItem
	switch col {
	case CollectionYours:
		src = r.YourActionItems
	case CollectionOthers:
		src = r.OthersActionItems
	default:
		return nil, ErrInvalidCollection
	}

	if index < 0 || index >= len(src) {
		return nil, ErrIndexOutOfRange
	}

	items := make([]ActionItem, len(src))
	copy(items, src)

	item := &items[index]
	item.Status = newStatus
	if snoozeUntil != nil {
		item.SnoozedUntil = snoozeUntil
	} else if newStatus == ActionStatusCompleted {
		item.SnoozedUntil = nil
	}

	updated := *r
	if col == CollectionYours {
		updated.YourActionItems = items
	} else {
		updated.OthersActionItems = items
	}
	return &updated, nil
}

// WithRating returns a copy of the report carrying the given rating and
// feedback text. Independent of action-item state; never affects classification.
func (r *Report) WithRating(rating Rating, feedback string) *Report {
	updated := *r
	updated.Rating = &rating
	updated.FeedbackText = feedback
	return &updated
}

// ClearLapsedSnoozes returns a copy with every snoozed_until at or before now
// removed, and whether anything changed. A lapsed snooze already classifies as
// active, so this only tidies stored state.
func (r *Report) ClearLapsedSnoozes(now time.Time) (*Report, bool) {
	clearLapsed := func(src []ActionItem) ([]ActionItem, bool) {
		changed := false
		for _, item := range src {
			if item.SnoozedUntil != nil && !item.SnoozedUntil.After(now) {
				changed = true
				break
			}
		}
		if !changed {
			return src, false
		}
		items := make([]ActionItem, len(src))
		copy(items, src)
		for i := range items {
			if items[i].SnoozedUntil != nil && !items[i].SnoozedUntil.After(now) {
				items[i].SnoozedUntil = nil
			}
		}
		return items, true
	}

	yours, changedYours := clearLapsed(r.YourActionItems)
	others, changedOthers := clearLapsed(r.OthersActionItems)
	if !changedYours && !changedOthers {
		return r, false
	}

	updated := *r
	updated.YourActionItems = yours
	updated.OthersActionItems = others
	return &updated, true
}
