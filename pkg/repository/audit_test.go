package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func TestAuditRepository(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		ctx := context.Background()

		base := now()
		entries := []*model.AuditEntry{
			{Action: "create_project", ResourceKind: "project", ResourceID: "p1"},
			{Action: "create_hazard", ResourceKind: "hazard", ResourceID: "h1"},
			{Action: "assign_user", ResourceKind: "project", ResourceID: "p1"},
			{Action: "create_project", ResourceKind: "project", ResourceID: "p2"},
		}
		for i, e := range entries {
			e.ID = types.NewAuditID()
			e.ActorID = "u1"
			e.CreatedAt = base.Add(time.Duration(i) * time.Second)
			gt.NoError(t, repo.Audit().Put(ctx, e)).Required()
		}

		all, err := repo.Audit().List(ctx, "", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(4)
		gt.Value(t, all[0].ResourceID).Equal("p2")

		byKind, err := repo.Audit().List(ctx, "project", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, byKind).Length(3)

		byResource, err := repo.Audit().List(ctx, "project", "p1", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, byResource).Length(2)
		gt.Value(t, byResource[0].Action).Equal("assign_user")
		gt.Value(t, byResource[1].Action).Equal("create_project")

		limited, err := repo.Audit().List(ctx, "", "", 2)
		gt.NoError(t, err).Required()
		gt.Array(t, limited).Length(2)

		none, err := repo.Audit().List(ctx, "user", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, none).Length(0)
	})
}
