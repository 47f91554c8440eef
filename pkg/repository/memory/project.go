package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type projectRepository struct {
	s *store
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	defer r.s.read()()

	p, ok := r.s.data.projects[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	return clone(p), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	defer r.s.read()()

	projects := make([]*model.Project, 0, len(r.s.data.projects))
	for _, p := range r.s.data.projects {
		projects = append(projects, clone(p))
	}
	sortByCreated(projects, func(p *model.Project) (int64, string) { return p.CreatedAt.UnixNano(), string(p.ID) })
	return projects, nil
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	defer r.s.write(ctx)()

	r.s.data.projects[project.ID] = clone(project)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id types.ProjectID) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.data.projects[id]; !ok {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	delete(r.s.data.projects, id)
	return nil
}

func (r *projectRepository) PutMember(ctx context.Context, member *model.ProjectMember) error {
	defer r.s.write(ctx)()

	r.s.data.members[memberKey{member.ProjectID, member.UserID}] = clone(member)
	return nil
}

func (r *projectRepository) DeleteMember(ctx context.Context, projectID types.ProjectID, userID types.UserID) error {
	defer r.s.write(ctx)()

	key := memberKey{projectID, userID}
	if _, ok := r.s.data.members[key]; !ok {
		return goerr.Wrap(ErrNotFound, "member not found", goerr.V("project_id", projectID), goerr.V("user_id", userID))
	}
	delete(r.s.data.members, key)
	return nil
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectMember, error) {
	defer r.s.read()()

	var members []*model.ProjectMember
	for key, m := range r.s.data.members {
		if key.projectID == projectID {
			members = append(members, clone(m))
		}
	}
	sortByCreated(members, func(m *model.ProjectMember) (int64, string) { return m.AssignedAt.UnixNano(), string(m.UserID) })
	return members, nil
}

func (r *projectRepository) ListMemberships(ctx context.Context, userID types.UserID) ([]*model.ProjectMember, error) {
	defer r.s.read()()

	var members []*model.ProjectMember
	for key, m := range r.s.data.members {
		if key.userID == userID {
			members = append(members, clone(m))
		}
	}
	sortByCreated(members, func(m *model.ProjectMember) (int64, string) { return m.AssignedAt.UnixNano(), string(m.ProjectID) })
	return members, nil
}
