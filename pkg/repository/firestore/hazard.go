package firestore

import (
	"context"

	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type hazardRepository struct {
	f *Firestore
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	return getDoc[model.Hazard](ctx, r.f, r.f.collection(collHazards).Doc(id.String()), "hazard")
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	return setDoc(ctx, r.f, r.f.collection(collHazards).Doc(hazard.ID.String()), hazard, "hazard")
}

func (r *hazardRepository) Delete(ctx context.Context, id types.HazardID) error {
	return deleteDoc(ctx, r.f, r.f.collection(collHazards).Doc(id.String()), "hazard")
}

func (r *hazardRepository) ListByProject(ctx context.Context, projectID types.ProjectID) ([]*model.Hazard, error) {
	q := r.f.collection(collHazards).Where("ProjectID", "==", projectID.String())
	hazards, err := listDocs[model.Hazard](ctx, r.f, q, "hazards")
	if err != nil {
		return nil, err
	}
	model.SortHazards(hazards)
	return hazards, nil
}

func (r *hazardRepository) ListByTemplate(ctx context.Context, templateID types.TemplateID) ([]*model.Hazard, error) {
	q := r.f.collection(collHazards).Where("TemplateID", "==", templateID.String())
	hazards, err := listDocs[model.Hazard](ctx, r.f, q, "hazards")
	if err != nil {
		return nil, err
	}
	model.SortHazards(hazards)
	return hazards, nil
}
