package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type areaRepository struct {
	s *store
}

func (r *areaRepository) Get(ctx context.Context, id types.AreaID) (*model.Area, error) {
	defer r.s.read()()

	a, ok := r.s.data.areas[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "area not found", goerr.V("id", id))
	}
	return clone(a), nil
}

func (r *areaRepository) List(ctx context.Context) ([]*model.Area, error) {
	defer r.s.read()()

	areas := make([]*model.Area, 0, len(r.s.data.areas))
	for _, a := range r.s.data.areas {
		areas = append(areas, clone(a))
	}
	model.SortAreas(areas)
	return areas, nil
}

func (r *areaRepository) Put(ctx context.Context, area *model.Area) error {
	defer r.s.write(ctx)()

	r.s.data.areas[area.ID] = clone(area)
	return nil
}

func (r *areaRepository) PutAssignment(ctx context.Context, assignment *model.AreaAssignment) error {
	defer r.s.write(ctx)()

	r.s.data.assignments[assignmentKey{assignment.AreaID, assignment.ProjectID}] = clone(assignment)
	return nil
}

func (r *areaRepository) ListAssignments(ctx context.Context, projectID types.ProjectID) ([]*model.AreaAssignment, error) {
	defer r.s.read()()

	var out []*model.AreaAssignment
	for key, a := range r.s.data.assignments {
		if key.projectID == projectID {
			out = append(out, clone(a))
		}
	}
	sortByCreated(out, func(a *model.AreaAssignment) (int64, string) { return 0, string(a.AreaID) })
	return out, nil
}

func (r *areaRepository) DeleteAssignment(ctx context.Context, areaID types.AreaID, projectID types.ProjectID) error {
	defer r.s.write(ctx)()

	key := assignmentKey{areaID, projectID}
	if _, ok := r.s.data.assignments[key]; !ok {
		return goerr.Wrap(ErrNotFound, "area assignment not found", goerr.V("area_id", areaID), goerr.V("project_id", projectID))
	}
	delete(r.s.data.assignments, key)
	return nil
}
