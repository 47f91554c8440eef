package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type briefingRepository struct {
	s *store
}

func copyBriefing(b *model.Briefing) *model.Briefing {
	c := clone(b)
	c.Items = make([]*model.BriefingItem, len(b.Items))
	for i, it := range b.Items {
		c.Items[i] = clone(it)
	}
	return c
}

func (r *briefingRepository) Get(ctx context.Context, id types.BriefingID) (*model.Briefing, error) {
	defer r.s.read()()

	b, ok := r.s.data.briefings[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "briefing not found", goerr.V("id", id))
	}
	return copyBriefing(b), nil
}

func (r *briefingRepository) Put(ctx context.Context, briefing *model.Briefing) error {
	defer r.s.write(ctx)()

	r.s.data.briefings[briefing.ID] = copyBriefing(briefing)
	return nil
}

func (r *briefingRepository) Delete(ctx context.Context, id types.BriefingID) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.briefings[id]; !ok {
		return goerr.Wrap(ErrNotFound, "briefing not found", goerr.V("id", id))
	}
	delete(r.s.data.briefings, id)
	return nil
}

func (r *briefingRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Briefing, error) {
	defer r.s.read()()

	var out []*model.Briefing
	for _, b := range r.s.data.briefings {
		if b.ProjectID == projectID {
			out = append(out, copyBriefing(b))
		}
	}
	sortByCreated(out, func(b *model.Briefing) (int64, string) { return b.CreatedAt.UnixNano(), string(b.ID) })
	return out, nil
}
