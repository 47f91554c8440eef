package firestore

import (
	"slices"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
)

// Lists filtered by equality are sorted here rather than with OrderBy so
// they do not need composite indexes.

func sortMembers(members []*model.ProjectMember) {
	slices.SortStableFunc(members, func(a, b *model.ProjectMember) int {
		return a.AssignedAt.Compare(b.AssignedAt)
	})
}

func sortByCreatedAt[T any](items []*T, createdAt func(*T) int64) {
	slices.SortStableFunc(items, func(a, b *T) int {
		x, y := createdAt(a), createdAt(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	})
}
