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

func TestParticipantRepository(t *testing.T) {
	runBoth(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		ctx := context.Background()

		projectID := types.NewProjectID()
		base := now()
		names := []string{"Berg", "Albers", "Cole"}
		for i, name := range names {
			gt.NoError(t, repo.Participant().Put(ctx, &model.Participant{
				ID:            types.NewParticipantID(),
				ProjectID:     projectID,
				LastName:      name,
				SignatureType: types.SignaturePending,
				CreatedAt:     base.Add(time.Duration(i) * time.Microsecond),
			})).Required()
		}

		list, err := repo.Participant().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		for i, p := range list {
			gt.Value(t, p.LastName).Equal(names[i])
		}

		signed := list[1]
		signed.SignDigital("sig", base)
		gt.NoError(t, repo.Participant().Put(ctx, signed)).Required()

		got, err := repo.Participant().Get(ctx, signed.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.SignatureType).Equal(types.SignatureDigital)
		gt.Value(t, got.SignatureData).Equal("sig")
		gt.Bool(t, got.SignedAt != nil).True()

		gt.NoError(t, repo.Participant().Delete(ctx, signed.ID)).Required()
		list, err = repo.Participant().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)
	})
}
