package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type projectRepository struct {
	f *Firestore
}

func memberDocID(projectID types.ProjectID, userID types.UserID) string {
	return projectID.String() + "_" + userID.String()
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	return getDoc[model.Project](ctx, r.f, r.f.collection(collProjects).Doc(id.String()), "project")
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	return listDocs[model.Project](ctx, r.f, r.f.collection(collProjects).OrderBy("CreatedAt", firestore.Asc), "projects")
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	return setDoc(ctx, r.f, r.f.collection(collProjects).Doc(project.ID.String()), project, "project")
}

func (r *projectRepository) Delete(ctx context.Context, id types.ProjectID) error {
	return deleteDoc(ctx, r.f, r.f.collection(collProjects).Doc(id.String()), "project")
}

func (r *projectRepository) PutMember(ctx context.Context, member *model.ProjectMember) error {
	ref := r.f.collection(collMembers).Doc(memberDocID(member.ProjectID, member.UserID))
	return setDoc(ctx, r.f, ref, member, "project member")
}

func (r *projectRepository) DeleteMember(ctx context.Context, projectID types.ProjectID, userID types.UserID) error {
	ref := r.f.collection(collMembers).Doc(memberDocID(projectID, userID))
	return deleteDoc(ctx, r.f, ref, "project member")
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID types.ProjectID) ([]*model.ProjectMember, error) {
	q := r.f.collection(collMembers).Where("ProjectID", "==", projectID.String())
	members, err := listDocs[model.ProjectMember](ctx, r.f, q, "project members")
	if err != nil {
		return nil, err
	}
	sortMembers(members)
	return members, nil
}

func (r *projectRepository) ListMemberships(ctx context.Context, userID types.UserID) ([]*model.ProjectMember, error) {
	q := r.f.collection(collMembers).Where("UserID", "==", userID.String())
	members, err := listDocs[model.ProjectMember](ctx, r.f, q, "project members")
	if err != nil {
		return nil, err
	}
	sortMembers(members)
	return members, nil
}
