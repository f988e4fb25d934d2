package domain

import "time"

// Bucket is a derived dashboard category, recomputed from current item states
// on every call. It is never stored: updating a single action item can change
// it without the report's own Status field changing.
type Bucket string

const (
	BucketUrgent   Bucket = "URGENT"
	BucketPending  Bucket = "PENDING"
	BucketSnoozed  Bucket = "SNOOZED"
	BucketResolved Bucket = "RESOLVED"
	BucketInfo     Bucket = "INFO"
	BucketArchived Bucket = "ARCHIVED"
)

// Classification pairs a bucket with its display label
type Classification struct {
	Bucket Bucket `json:"bucket"`
	Label  string `json:"label"`
}

var bucketLabels = map[Bucket]string{
	BucketUrgent:   "Urgent",
	BucketPending:  "Pending",
	BucketSnoozed:  "Snoozed",
	BucketResolved: "Resolved",
	BucketInfo:     "Informational",
	BucketArchived: "Archived",
}

// Classify derives the dashboard bucket for a report from the combined state
// of both action-item collections. Pure and deterministic for a given now.
func Classify(r *Report, now time.Time) Classification {
	items := make([]ActionItem, 0, len(r.YourActionItems)+len(r.OthersActionItems))
	items = append(items, r.YourActionItems...)
	items = append(items, r.OthersActionItems...)

	if len(items) == 0 {
		return classification(BucketInfo)
	}

	var pending []ActionItem
	for _, item := range items {
		if item.Status != ActionStatusCompleted {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return classification(BucketResolved)
	}

	var active, snoozed []ActionItem
	for _, item := range pending {
		if item.SnoozedUntil != nil && item.SnoozedUntil.After(now) {
			snoozed = append(snoozed, item)
		} else {
			active = append(active, item)
		}
	}

	for _, item := range active {
		if item.Priority == PriorityUrgent || item.Priority == PriorityHigh {
			return classification(BucketUrgent)
		}
	}
	if len(active) > 0 {
		return classification(BucketPending)
	}
	if len(snoozed) > 0 {
		return classification(BucketSnoozed)
	}

	// Unreachable given the pending check above, but must not panic
	return classification(BucketArchived)
}

func classification(b Bucket) Classification {
	return Classification{Bucket: b, Label: bucketLabels[b]}
}
