package firestore

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type participantRepository struct {
	f *Firestore
}

func (r *participantRepository) Get(ctx context.Context, id types.ParticipantID) (*model.Participant, error) {
	return getDoc[model.Participant](ctx, r.f, r.f.collection(collParticipants).Doc(id.String()), "participant")
}

func (r *participantRepository) Put(ctx context.Context, participant *model.Participant) error {
	return setDoc(ctx, r.f, r.f.collection(collParticipants).Doc(participant.ID.String()), participant, "participant")
}

func (r *participantRepository) Delete(ctx context.Context, id types.ParticipantID) error {
	return deleteDoc(ctx, r.f, r.f.collection(collParticipants).Doc(id.String()), "participant")
}

func (r *participantRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Participant, error) {
	q := r.f.collection(collParticipants).Where("ProjectID", "==", projectID.String())
	participants, err := listDocs[model.Participant](ctx, r.f, q, "participants")
	if err != nil {
		return nil, err
	}
	model.SortParticipants(participants)
	return participants, nil
}
