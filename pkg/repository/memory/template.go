package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type templateRepository struct {
	s *store
}

func (r *templateRepository) Get(ctx context.Context, id types.TemplateID) (*model.HazardTemplate, error) {
	defer r.s.read()()

	t, ok := r.s.data.templates[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "template not found", goerr.V("id", id))
	}
	return clone(t), nil
}

func (r *templateRepository) List(ctx context.Context) ([]*model.HazardTemplate, error) {
	defer r.s.read()()

	out := make([]*model.HazardTemplate, 0, len(r.s.data.templates))
	for _, t := range r.s.data.templates {
		out = append(out, clone(t))
	}
	sortByCreated(out, func(t *model.HazardTemplate) (int64, string) { return t.CreatedAt.UnixNano(), string(t.ID) })
	return out, nil
}

func (r *templateRepository) Put(ctx context.Context, tmpl *model.HazardTemplate) error {
	defer r.s.write(ctx)()

	r.s.data.templates[tmpl.ID] = clone(tmpl)
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id types.TemplateID) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.templates[id]; !ok {
		return goerr.Wrap(ErrNotFound, "template not found", goerr.V("id", id))
	}
	delete(r.s.data.templates, id)
	return nil
}

func (r *templateRepository) PutLink(ctx context.Context, link *model.ProjectTemplate) error {
	defer r.s.write(ctx)()

	r.s.data.links[linkKey{link.ProjectID, link.TemplateID}] = clone(link)
	return nil
}

func (r *templateRepository) ListLinks(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectTemplate, error) {
	defer r.s.read()()

	var out []*model.ProjectTemplate
	for key, l := range r.s.data.links {
		if key.projectID == projectID {
			out = append(out, clone(l))
		}
	}
	sortByCreated(out, func(l *model.ProjectTemplate) (int64, string) { return l.AppliedAt.UnixNano(), string(l.TemplateID) })
	return out, nil
}

func (r *templateRepository) DeleteLink(ctx context.Context, projectID types.ProjectID, templateID types.TemplateID) error {
	defer r.s.write(ctx)()

	key := linkKey{projectID, templateID}
	if _, ok := r.s.data.links[key]; !ok {
		return goerr.Wrap(ErrNotFound, "template link not found", goerr.V("project_id", projectID), goerr.V("template_id", templateID))
	}
	delete(r.s.data.links, key)
	return nil
}
