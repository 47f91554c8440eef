package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/config"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

func TestAreaCreate(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Area.Create(asLeader(), usecase.AreaInput{Name: "Bühne"})
	gt.Error(t, err).Is(usecase.ErrPermissionDenied)

	_, err = f.uc.Area.Create(asAdmin(), usecase.AreaInput{Name: "  "})
	gt.Error(t, err).Is(usecase.ErrInvalidInput)

	_, err = f.uc.Area.Create(asAdmin(), usecase.AreaInput{Name: "Bühne", SortOrder: 2})
	gt.NoError(t, err).Required()
	_, err = f.uc.Area.Create(asAdmin(), usecase.AreaInput{Name: "bühne"})
	gt.Error(t, err).Is(usecase.ErrConflict)
	_, err = f.uc.Area.Create(asAdmin(), usecase.AreaInput{Name: "Licht", SortOrder: 1})
	gt.NoError(t, err).Required()

	areas, err := f.uc.Area.List(asUser())
	gt.NoError(t, err).Required()
	gt.Array(t, areas).Length(2)
	gt.Value(t, areas[0].Name).Equal("Licht")
}

func TestAreaSeed(t *testing.T) {
	f := setup(t)
	ctx := t.Context()
	seeds := []config.AreaSeed{
		{Name: "Bühne", SortOrder: 1},
		{Name: "Ton", SortOrder: 2},
		{Name: "ton"},
		{Name: ""},
	}

	n, err := f.uc.Area.Seed(ctx, seeds)
	gt.NoError(t, err).Required()
	gt.Number(t, n).Equal(2)

	n, err = f.uc.Area.Seed(ctx, seeds)
	gt.NoError(t, err).Required()
	gt.Number(t, n).Equal(0)

	entries, err := f.repo.Audit().List(ctx, usecase.ResourceArea, "", 0)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(2)
	gt.Value(t, entries[0].ActorID).Equal(types.UserID("system"))
}

func TestAreaAssign(t *testing.T) {
	f := setup(t)
	ctx := t.Context()
	p := f.newProject(t)

	area, err := f.uc.Area.Create(asAdmin(), usecase.AreaInput{Name: "Bühne"})
	gt.NoError(t, err).Required()

	t.Run("assignee must be bereichsleiter", func(t *testing.T) {
		_, err := f.uc.Area.Assign(asLeader(), p.ID, area.ID, plainID, "")
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
	})

	t.Run("assignee must be active", func(t *testing.T) {
		gt.NoError(t, f.repo.User().Put(ctx, &model.User{ID: "u-bl-old", Email: "old@example.com", Role: types.RoleBereichsleiter})).Required()
		_, err := f.uc.Area.Assign(asLeader(), p.ID, area.ID, "u-bl-old", "")
		gt.Error(t, err).Is(usecase.ErrInactiveUser)
	})

	t.Run("unknown area", func(t *testing.T) {
		_, err := f.uc.Area.Assign(asLeader(), p.ID, "nope", areaID, "")
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("plain member may not assign", func(t *testing.T) {
		_, err := f.uc.Area.Assign(asUser(), p.ID, area.ID, areaID, "")
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
	})

	t.Run("assign replaces and unassign removes", func(t *testing.T) {
		_, err := f.uc.Area.Assign(asLeader(), p.ID, area.ID, areaID, "Aufbau")
		gt.NoError(t, err).Required()
		_, err = f.uc.Area.Assign(asLeader(), p.ID, area.ID, areaID, "Abbau")
		gt.NoError(t, err).Required()

		list, err := f.uc.Area.ListAssignments(asUser(), p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].Notes).Equal("Abbau")

		gt.NoError(t, f.uc.Area.Unassign(asLeader(), p.ID, area.ID)).Required()
		list, err = f.uc.Area.ListAssignments(asUser(), p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})
}
