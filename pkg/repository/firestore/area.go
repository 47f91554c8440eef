package firestore

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type areaRepository struct {
	f *Firestore
}

func assignmentDocID(areaID types.AreaID, projectID types.ProjectID) string {
	return projectID.String() + "_" + string(areaID)
}

func (r *areaRepository) Get(ctx context.Context, id types.AreaID) (*model.Area, error) {
	return getDoc[model.Area](ctx, r.f, r.f.collection(collAreas).Doc(string(id)), "area")
}

func (r *areaRepository) List(ctx context.Context) ([]*model.Area, error) {
	areas, err := listDocs[model.Area](ctx, r.f, r.f.collection(collAreas).Query, "areas")
	if err != nil {
		return nil, err
	}
	model.SortAreas(areas)
	return areas, nil
}

func (r *areaRepository) Put(ctx context.Context, area *model.Area) error {
	return setDoc(ctx, r.f, r.f.collection(collAreas).Doc(string(area.ID)), area, "area")
}

func (r *areaRepository) PutAssignment(ctx context.Context, assignment *model.AreaAssignment) error {
	ref := r.f.collection(collAssignments).Doc(assignmentDocID(assignment.AreaID, assignment.ProjectID))
	return setDoc(ctx, r.f, ref, assignment, "area assignment")
}

func (r *areaRepository) ListAssignments(ctx context.Context, projectID types.ProjectID) ([]*model.AreaAssignment, error) {
	q := r.f.collection(collAssignments).Where("ProjectID", "==", projectID.String())
	return listDocs[model.AreaAssignment](ctx, r.f, q, "area assignments")
}

func (r *areaRepository) DeleteAssignment(ctx context.Context, areaID types.AreaID, projectID types.ProjectID) error {
	ref := r.f.collection(collAssignments).Doc(assignmentDocID(areaID, projectID))
	return deleteDoc(ctx, r.f, ref, "area assignment")
}
