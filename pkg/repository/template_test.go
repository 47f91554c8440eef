package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func TestTemplateRepository(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("put, get, list and delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			tmpl := &model.HazardTemplate{
				ID:            types.NewTemplateID(),
				Name:          "Open Air",
				Season:        types.SeasonSummer,
				IndoorOutdoor: types.Outdoor,
				Active:        true,
				CreatedBy:     "u1",
				CreatedAt:     now(),
				UpdatedAt:     now(),
			}
			gt.NoError(t, repo.Template().Put(ctx, tmpl)).Required()

			got, err := repo.Template().Get(ctx, tmpl.ID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Season).Equal(types.SeasonSummer)
			gt.Bool(t, got.Active).True()

			list, err := repo.Template().List(ctx)
			gt.NoError(t, err).Required()
			gt.Array(t, list).Length(1)

			gt.NoError(t, repo.Template().Delete(ctx, tmpl.ID)).Required()
			_, err = repo.Template().Get(ctx, tmpl.ID)
			gt.Error(t, err).Is(interfaces.ErrNotFound)
		})

		t.Run("links", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			projectID := types.NewProjectID()
			t1, t2 := types.NewTemplateID(), types.NewTemplateID()
			gt.NoError(t, repo.Template().PutLink(ctx, &model.ProjectTemplate{ProjectID: projectID, TemplateID: t1, AppliedAt: now(), AppliedBy: "u1"})).Required()
			gt.NoError(t, repo.Template().PutLink(ctx, &model.ProjectTemplate{ProjectID: projectID, TemplateID: t2, AppliedAt: now(), AppliedBy: "u1"})).Required()
			gt.NoError(t, repo.Template().PutLink(ctx, &model.ProjectTemplate{ProjectID: types.NewProjectID(), TemplateID: t1, AppliedAt: now()})).Required()

			links, err := repo.Template().ListLinks(ctx, projectID)
			gt.NoError(t, err).Required()
			gt.Array(t, links).Length(2)

			gt.NoError(t, repo.Template().DeleteLink(ctx, projectID, t1)).Required()
			links, err = repo.Template().ListLinks(ctx, projectID)
			gt.NoError(t, err).Required()
			gt.Array(t, links).Length(1)
			gt.Value(t, links[0].TemplateID).Equal(t2)
		})
	})
}
