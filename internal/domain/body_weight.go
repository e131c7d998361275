package domain

import (
	"context"
	"sort"
)

// BodyWeightEntry is one body weight measurement, keyed by calendar date
type BodyWeightEntry struct {
	Date   string  `json:"date" bson:"date"`
	Weight float64 `json:"weight" bson:"weight"` // kilograms
}

// UpsertBodyWeight replaces the entry with the same date in place, or inserts the
// entry and re-sorts ascending by date. The input slice is not modified.
func UpsertBodyWeight(entries []BodyWeightEntry, entry BodyWeightEntry) []BodyWeightEntry {
	out := make([]BodyWeightEntry, len(entries), len(entries)+1)
	copy(out, entries)
	for i := range out {
		if out[i].Date == entry.Date {
			out[i].Weight = entry.Weight
			return out
		}
	}
	out = append(out, entry)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BodyWeightRemote is the remote store for a user's body weight log
type BodyWeightRemote interface {
	ListForUser(ctx context.Context, userID string) ([]BodyWeightEntry, error)
	// Upsert replaces the entry for the same date
	Upsert(ctx context.Context, entry BodyWeightEntry, userID string) error
	Delete(ctx context.Context, date string, userID string) error
}
