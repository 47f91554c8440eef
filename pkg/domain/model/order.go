package model

import (
	"cmp"
	"slices"
)

// SortHazards orders hazards by SortOrder, then insertion sequence, then
// creation time.
func SortHazards(hazards []*Hazard) {
	slices.SortStableFunc(hazards, func(a, b *Hazard) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortParticipants orders participants by creation time.
func SortParticipants(participants []*Participant) {
	slices.SortStableFunc(participants, func(a, b *Participant) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// SortAreas orders areas by SortOrder, then name.
func SortAreas(areas []*Area) {
	slices.SortStableFunc(areas, func(a, b *Area) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// SortBriefingItems orders items by SortOrder.
func SortBriefingItems(items []*BriefingItem) {
	slices.SortStableFunc(items, func(a, b *BriefingItem) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
}
