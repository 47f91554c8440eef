package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type hazardRepository struct {
	s *store
}

func copyHazard(h *model.Hazard) *model.Hazard {
	c := clone(h)
	if h.Severity != nil {
		c.Severity = clone(h.Severity)
	}
	if h.Probability != nil {
		c.Probability = clone(h.Probability)
	}
	return c
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	defer r.s.read()()

	h, ok := r.s.data.hazards[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
	}
	return copyHazard(h), nil
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	defer r.s.write(ctx)()

	r.s.data.hazards[hazard.ID] = copyHazard(hazard)
	return nil
}

func (r *hazardRepository) Delete(ctx context.Context, id types.HazardID) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.hazards[id]; !ok {
		return goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
	}
	delete(r.s.data.hazards, id)
	return nil
}

func (r *hazardRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Hazard, error) {
	return r.list(func(h *model.Hazard) bool { return h.ProjectID == projectID }), nil
}

func (r *hazardRepository) ListByTemplate(ctx context.Context, templateID types.TemplateID) ([]*model.Hazard, error) {
	return r.list(func(h *model.Hazard) bool { return h.TemplateID == templateID }), nil
}

func (r *hazardRepository) list(match func(*model.Hazard) bool) []*model.Hazard {
	defer r.s.read()()

	var out []*model.Hazard
	for _, h := range r.s.data.hazards {
		if match(h) {
			out = append(out, copyHazard(h))
		}
	}
	model.SortHazards(out)
	return out
}
