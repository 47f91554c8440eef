package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type templateRepository struct {
	f *Firestore
}

func linkDocID(projectID types.ProjectID, templateID types.TemplateID) string {
	return projectID.String() + "_" + templateID.String()
}

func (r *templateRepository) Get(ctx context.Context, id types.TemplateID) (*model.HazardTemplate, error) {
	return getDoc[model.HazardTemplate](ctx, r.f, r.f.collection(collTemplates).Doc(id.String()), "template")
}

func (r *templateRepository) List(ctx context.Context) ([]*model.HazardTemplate, error) {
	return listDocs[model.HazardTemplate](ctx, r.f, r.f.collection(collTemplates).OrderBy("CreatedAt", firestore.Asc), "templates")
}

func (r *templateRepository) Put(ctx context.Context, tmpl *model.HazardTemplate) error {
	return setDoc(ctx, r.f, r.f.collection(collTemplates).Doc(tmpl.ID.String()), tmpl, "template")
}

func (r *templateRepository) Delete(ctx context.Context, id types.TemplateID) error {
	return deleteDoc(ctx, r.f, r.f.collection(collTemplates).Doc(id.String()), "template")
}

func (r *templateRepository) PutLink(ctx context.Context, link *model.ProjectTemplate) error {
	ref := r.f.collection(collLinks).Doc(linkDocID(link.ProjectID, link.TemplateID))
	return setDoc(ctx, r.f, ref, link, "template link")
}

func (r *templateRepository) ListLinks(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectTemplate, error) {
	q := r.f.collection(collLinks).Where("ProjectID", "==", projectID.String())
	links, err := listDocs[model.ProjectTemplate](ctx, r.f, q, "template links")
	if err != nil {
		return nil, err
	}
	sortByCreatedAt(links, func(l *model.ProjectTemplate) int64 { return l.AppliedAt.UnixNano() })
	return links, nil
}

func (r *templateRepository) DeleteLink(ctx context.Context, projectID types.ProjectID, templateID types.TemplateID) error {
	ref := r.f.collection(collLinks).Doc(linkDocID(projectID, templateID))
	return deleteDoc(ctx, r.f, ref, "template link")
}
