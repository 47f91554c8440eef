package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func TestBriefingRepository(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		ctx := context.Background()

		projectID := types.NewProjectID()
		b := &model.Briefing{
			ID:                 types.NewBriefingID(),
			ProjectID:          projectID,
			Title:              "Sicherheitsunterweisung - Sommerfest",
			AllgemeineHinweise: "Helm tragen",
			Items: []*model.BriefingItem{
				{ID: types.NewBriefingItemID(), Section: "notfaelle", Icon: "fire", Text: "Brände melden", SortOrder: 1},
				{ID: types.NewBriefingItemID(), Section: "allgemeine_hinweise", Icon: "info", Text: "Nachfragen", SortOrder: 0},
			},
			CreatedBy: "u1",
			CreatedAt: now(),
			UpdatedAt: now(),
		}
		gt.NoError(t, repo.Briefing().Put(ctx, b)).Required()
		gt.NoError(t, repo.Briefing().Put(ctx, &model.Briefing{
			ID: types.NewBriefingID(), ProjectID: types.NewProjectID(), Title: "andere", CreatedAt: now(),
		})).Required()

		got, err := repo.Briefing().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal(b.Title)
		gt.Array(t, got.Items).Length(2)

		list, err := repo.Briefing().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)

		gt.NoError(t, repo.Briefing().Delete(ctx, b.ID)).Required()
		_, err = repo.Briefing().Get(ctx, b.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}

func TestBriefingRepositoryIsolatesItems(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		ctx := context.Background()

		b := &model.Briefing{
			ID:        types.NewBriefingID(),
			ProjectID: types.NewProjectID(),
			Title:     "Unterweisung",
			Items: []*model.BriefingItem{
				{ID: types.NewBriefingItemID(), Section: "allgemein", Icon: "fire", Text: "Feuerlöscher", SortOrder: 1},
			},
			CreatedAt: now(),
		}
		gt.NoError(t, repo.Briefing().Put(ctx, b)).Required()
		b.Items[0].Text = "mutated"

		got, err := repo.Briefing().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, got.Items).Length(1)
		gt.Value(t, got.Items[0].Text).Equal("Feuerlöscher")
		gt.Value(t, got.Items[0].Icon).Equal("fire")

		got.Items[0].Text = "changed by reader"
		again, err := repo.Briefing().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Items[0].Text).Equal("Feuerlöscher")
	})
}
