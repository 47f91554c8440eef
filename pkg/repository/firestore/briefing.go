package firestore

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type briefingRepository struct {
	f *Firestore
}

func (r *briefingRepository) Get(ctx context.Context, id types.BriefingID) (*model.Briefing, error) {
	return getDoc[model.Briefing](ctx, r.f, r.f.collection(collBriefings).Doc(id.String()), "briefing")
}

func (r *briefingRepository) Put(ctx context.Context, briefing *model.Briefing) error {
	return setDoc(ctx, r.f, r.f.collection(collBriefings).Doc(briefing.ID.String()), briefing, "briefing")
}

func (r *briefingRepository) Delete(ctx context.Context, id types.BriefingID) error {
	return deleteDoc(ctx, r.f, r.f.collection(collBriefings).Doc(id.String()), "briefing")
}

func (r *briefingRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Briefing, error) {
	q := r.f.collection(collBriefings).Where("ProjectID", "==", projectID.String())
	briefings, err := listDocs[model.Briefing](ctx, r.f, q, "briefings")
	if err != nil {
		return nil, err
	}
	sortByCreatedAt(briefings, func(b *model.Briefing) int64 { return b.CreatedAt.UnixNano() })
	return briefings, nil
}
