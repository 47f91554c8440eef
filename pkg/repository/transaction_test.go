package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func TestRunInTransaction(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		t.Run("commits mutation and audit together", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			h := &model.Hazard{ID: types.NewHazardID(), ProjectID: types.NewProjectID(), CreatedAt: now()}
			err := repo.RunInTransaction(ctx, func(ctx context.Context) error {
				if err := repo.Hazard().Put(ctx, h); err != nil {
					return err
				}
				return repo.Audit().Put(ctx, &model.AuditEntry{
					ID:           types.NewAuditID(),
					Action:       "create",
					ResourceKind: "hazard",
					ResourceID:   h.ID.String(),
					CreatedAt:    now(),
				})
			})
			gt.NoError(t, err).Required()

			_, err = repo.Hazard().Get(ctx, h.ID)
			gt.NoError(t, err)
			entries, err := repo.Audit().List(ctx, "hazard", h.ID.String(), 0)
			gt.NoError(t, err).Required()
			gt.Array(t, entries).Length(1)
		})

		t.Run("rolls back everything on error", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			h := &model.Hazard{ID: types.NewHazardID(), CreatedAt: now()}
			failure := errors.New("boom")
			err := repo.RunInTransaction(ctx, func(ctx context.Context) error {
				if err := repo.Hazard().Put(ctx, h); err != nil {
					return err
				}
				if err := repo.Audit().Put(ctx, &model.AuditEntry{ID: types.NewAuditID(), ResourceKind: "hazard", ResourceID: h.ID.String(), CreatedAt: now()}); err != nil {
					return err
				}
				return failure
			})
			gt.Error(t, err).Is(failure)

			_, err = repo.Hazard().Get(ctx, h.ID)
			gt.Error(t, err).Is(interfaces.ErrNotFound)
			entries, err := repo.Audit().List(ctx, "hazard", h.ID.String(), 0)
			gt.NoError(t, err).Required()
			gt.Array(t, entries).Length(0)
		})

		t.Run("nested calls join the outer transaction", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			p := &model.Project{ID: types.NewProjectID(), Name: "nested", CreatedAt: now()}
			err := repo.RunInTransaction(ctx, func(ctx context.Context) error {
				if err := repo.RunInTransaction(ctx, func(ctx context.Context) error {
					return repo.Project().Put(ctx, p)
				}); err != nil {
					return err
				}
				return errors.New("abort outer")
			})
			gt.Error(t, err)

			_, err = repo.Project().Get(ctx, p.ID)
			gt.Error(t, err).Is(interfaces.ErrNotFound)
		})
	})
}
