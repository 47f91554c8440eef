package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type participantRepository struct {
	s *store
}

func (r *participantRepository) Get(ctx context.Context, id types.ParticipantID) (*model.Participant, error) {
	defer r.s.read()()

	p, ok := r.s.data.participants[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "participant not found", goerr.V("id", id))
	}
	return clone(p), nil
}

func (r *participantRepository) Put(ctx context.Context, participant *model.Participant) error {
	defer r.s.write(ctx)()

	r.s.data.participants[participant.ID] = clone(participant)
	return nil
}

func (r *participantRepository) Delete(ctx context.Context, id types.ParticipantID) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.participants[id]; !ok {
		return goerr.Wrap(ErrNotFound, "participant not found", goerr.V("id", id))
	}
	delete(r.s.data.participants, id)
	return nil
}

func (r *participantRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Participant, error) {
	defer r.s.read()()

	var out []*model.Participant
	for _, p := range r.s.data.participants {
		if p.ProjectID == projectID {
			out = append(out, clone(p))
		}
	}
	model.SortParticipants(out)
	return out, nil
}
