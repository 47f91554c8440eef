package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type ProjectUseCase struct {
	*base
}

type ProjectInput struct {
	Name          string
	Description   string
	Location      string
	StartDate     *time.Time
	EndDate       *time.Time
	Season        types.Season
	IndoorOutdoor types.IndoorOutdoor
	Status        types.ProjectStatus
}

func (in *ProjectInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("project name is required", "name")
	}
	if in.Season != "" && !in.Season.IsValid() {
		return invalid("unknown season", "season")
	}
	if in.IndoorOutdoor != "" && !in.IndoorOutdoor.IsValid() {
		return invalid("unknown indoor/outdoor value", "indoor_outdoor")
	}
	if in.Status == "" {
		in.Status = types.ProjectStatusPlanning
	}
	if !in.Status.IsValid() {
		return invalid("unknown project status", "status")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return invalid("end date is before start date", "end_date")
	}
	return nil
}

func (in *ProjectInput) apply(p *model.Project) {
	p.Name = in.Name
	p.Description = in.Description
	p.Location = in.Location
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Season = in.Season
	p.IndoorOutdoor = in.IndoorOutdoor
	p.Status = in.Status
	p.FillSeason()
}

// List returns the projects the actor may see: all of them for admins,
// otherwise the ones created by or assigned to the actor.
func (uc *ProjectUseCase) List(ctx context.Context) ([]*model.Project, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	if actor.Role == types.RoleAdmin {
		return projects, nil
	}

	memberships, err := uc.repo.Project().ListMemberships(ctx, actor.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list memberships", goerr.V(UserIDKey, actor.UserID))
	}
	member := make(map[types.ProjectID]bool, len(memberships))
	for _, m := range memberships {
		member[m.ProjectID] = true
	}

	visible := make([]*model.Project, 0, len(projects))
	for _, p := range projects {
		res := policy.Resource{Kind: policy.KindProject, CreatedBy: p.CreatedBy, IsMember: member[p.ID]}
		if policy.Evaluate(actor, policy.ActionRead, res).Allowed {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (uc *ProjectUseCase) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	project, _, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionRead)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUseCase) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	actor, err := authorize(ctx, policy.ActionCreate, policy.Resource{Kind: policy.KindProject})
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	now := uc.now()
	project := &model.Project{
		ID:        types.NewProjectID(),
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(project)

	entry := uc.audit(actor, "create_project", ResourceProject, project.ID.String(), project.Name)
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Project().Put(ctx, project)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}
	return project, nil
}

func (uc *ProjectUseCase) Update(ctx context.Context, id types.ProjectID, in ProjectInput) (*model.Project, error) {
	project, actor, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	in.apply(project)
	project.UpdatedAt = uc.now()

	entry := uc.audit(actor, "update_project", ResourceProject, id.String(), project.Name)
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Project().Put(ctx, project)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V(ProjectIDKey, id))
	}
	return project, nil
}

// Delete removes the project with everything that belongs to it
func (uc *ProjectUseCase) Delete(ctx context.Context, id types.ProjectID) error {
	project, actor, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionDelete)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "delete_project", ResourceProject, id.String(), project.Name)
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		// all reads first; the Firestore backend rejects reads after writes
		members, err := uc.repo.Project().ListMembers(ctx, id)
		if err != nil {
			return err
		}
		assignments, err := uc.repo.Area().ListAssignments(ctx, id)
		if err != nil {
			return err
		}
		links, err := uc.repo.Template().ListLinks(ctx, id)
		if err != nil {
			return err
		}
		hazards, err := uc.repo.Hazard().ListByProject(ctx, id)
		if err != nil {
			return err
		}
		participants, err := uc.repo.Participant().ListByProject(ctx, id)
		if err != nil {
			return err
		}
		briefings, err := uc.repo.Briefing().ListByProject(ctx, id)
		if err != nil {
			return err
		}

		for _, m := range members {
			if err := uc.repo.Project().DeleteMember(ctx, id, m.UserID); err != nil {
				return err
			}
		}
		for _, a := range assignments {
			if err := uc.repo.Area().DeleteAssignment(ctx, a.AreaID, id); err != nil {
				return err
			}
		}
		for _, l := range links {
			if err := uc.repo.Template().DeleteLink(ctx, id, l.TemplateID); err != nil {
				return err
			}
		}
		for _, h := range hazards {
			if err := uc.repo.Hazard().Delete(ctx, h.ID); err != nil {
				return err
			}
		}
		for _, p := range participants {
			if err := uc.repo.Participant().Delete(ctx, p.ID); err != nil {
				return err
			}
		}
		for _, b := range briefings {
			if err := uc.repo.Briefing().Delete(ctx, b.ID); err != nil {
				return err
			}
		}
		return uc.repo.Project().Delete(ctx, id)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete project", goerr.V(ProjectIDKey, id))
	}
	return nil
}

func (uc *ProjectUseCase) ListMembers(ctx context.Context, id types.ProjectID) ([]*model.ProjectMember, error) {
	if _, _, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionRead); err != nil {
		return nil, err
	}

	members, err := uc.repo.Project().ListMembers(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list members", goerr.V(ProjectIDKey, id))
	}
	return members, nil
}

// AddMember assigns an active user to the project. Adding an existing
// member is a no-op.
func (uc *ProjectUseCase) AddMember(ctx context.Context, id types.ProjectID, userID types.UserID) (*model.ProjectMember, error) {
	_, actor, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionManageMembers)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, userID))
	}
	if !user.Active {
		return nil, goerr.Wrap(ErrInactiveUser, "cannot assign inactive user", goerr.V(UserIDKey, userID))
	}

	member := &model.ProjectMember{ProjectID: id, UserID: userID, AssignedAt: uc.now()}
	entry := uc.audit(actor, "assign_user", ResourceProject, id.String(), userID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Project().PutMember(ctx, member)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to add member", goerr.V(ProjectIDKey, id))
	}
	return member, nil
}

func (uc *ProjectUseCase) RemoveMember(ctx context.Context, id types.ProjectID, userID types.UserID) error {
	_, actor, err := uc.authorizeProject(ctx, id, policy.KindProject, policy.ActionManageMembers)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "unassign_user", ResourceProject, id.String(), userID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Project().DeleteMember(ctx, id, userID)
	}); err != nil {
		return goerr.Wrap(err, "failed to remove member", goerr.V(ProjectIDKey, id), goerr.V(UserIDKey, userID))
	}
	return nil
}
