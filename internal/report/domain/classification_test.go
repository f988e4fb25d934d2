package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func futureTime(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func TestClassify(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		report *Report
		want   Bucket
	}{
		{
			name:   "no action items is informational",
			report: &Report{},
			want:   BucketInfo,
		},
		{
			name: "all items completed is resolved",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "send report", Status: ActionStatusCompleted},
				},
				OthersActionItems: []ActionItem{
					{Task: "review", Status: ActionStatusCompleted},
				},
			},
			want: BucketResolved,
		},
		{
			name: "high priority pending item in others collection is urgent",
			report: &Report{
				OthersActionItems: []ActionItem{
					{Task: "approve budget", Priority: PriorityHigh, Status: ActionStatusPending},
				},
			},
			want: BucketUrgent,
		},
		{
			name: "urgent priority active item is urgent",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "hotfix", Priority: PriorityUrgent, Status: ActionStatusInProgress},
				},
			},
			want: BucketUrgent,
		},
		{
			name: "normal priority active item is pending",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "reply to dave", Priority: PriorityNormal, Status: ActionStatusPending},
				},
			},
			want: BucketPending,
		},
		{
			name: "blocked item still counts as active",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "deploy", Priority: PriorityLow, Status: ActionStatusBlocked},
				},
			},
			want: BucketPending,
		},
		{
			name: "single item snoozed into the future is snoozed",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "follow up", Priority: PriorityNormal, Status: ActionStatusPending, SnoozedUntil: futureTime(now, 10)},
				},
			},
			want: BucketSnoozed,
		},
		{
			name: "snoozed high priority item does not trigger urgent",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "escalate", Priority: PriorityHigh, Status: ActionStatusPending, SnoozedUntil: futureTime(now, 3)},
				},
			},
			want: BucketSnoozed,
		},
		{
			name: "lapsed snooze counts as active",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "follow up", Priority: PriorityNormal, Status: ActionStatusPending, SnoozedUntil: futureTime(now, -2)},
				},
			},
			want: BucketPending,
		},
		{
			name: "active pending item wins over snoozed sibling",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "a", Priority: PriorityNormal, Status: ActionStatusPending, SnoozedUntil: futureTime(now, 5)},
					{Task: "b", Priority: PriorityLow, Status: ActionStatusPending},
				},
			},
			want: BucketPending,
		},
		{
			name: "completed snoozed item plus snoozed pending item is snoozed",
			report: &Report{
				YourActionItems: []ActionItem{
					{Task: "a", Status: ActionStatusCompleted},
					{Task: "b", Priority: PriorityNormal, Status: ActionStatusPending, SnoozedUntil: futureTime(now, 1)},
				},
			},
			want: BucketSnoozed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.report, now)
			assert.Equal(t, tt.want, got.Bucket)
			assert.NotEmpty(t, got.Label)
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	now := time.Now()
	report := &Report{
		YourActionItems: []ActionItem{
			{Task: "reply", Priority: PriorityHigh, Status: ActionStatusPending},
		},
		OthersActionItems: []ActionItem{
			{Task: "review", Priority: PriorityLow, Status: ActionStatusCompleted},
		},
	}

	first := Classify(report, now)
	second := Classify(report, now)
	assert.Equal(t, first, second)
}

func TestClassifyIndependentOfStoredStatus(t *testing.T) {
	// The stored report status never influences the derived bucket
	now := time.Now()
	report := &Report{
		Status: StatusDecisionMade,
		YourActionItems: []ActionItem{
			{Task: "ship it", Priority: PriorityUrgent, Status: ActionStatusPending},
		},
	}

	assert.Equal(t, BucketUrgent, Classify(report, now).Bucket)
}
