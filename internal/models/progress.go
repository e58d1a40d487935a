package models

import "time"

// Activity types known to the client. The ledger accepts any value.
const (
	ActivityReading = "reading"
	ActivityMath    = "math"
)

// ProgressRecord holds one user's completion state for an activity type and level.
// (UserID, ActivityType, Level) is unique.
type ProgressRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Level          int       `json:"level"`
	CompletedItems []int64   `json:"completedItems"`
	TotalItems     int       `json:"totalItems"`
	Stars          int       `json:"stars"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CompletedCount returns the number of completed items
func (p *ProgressRecord) CompletedCount() int {
	return len(p.CompletedItems)
}

// CompletionRatio returns completed/total, clamped to [0, 1]
func (p *ProgressRecord) CompletionRatio() float64 {
	if p.TotalItems <= 0 {
		return 0
	}
	ratio := float64(len(p.CompletedItems)) / float64(p.TotalItems)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// DedupeItems removes repeated IDs, keeping the first occurrence of each.
// The result is never nil.
func DedupeItems(items []int64) []int64 {
	out := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, id := range items {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
