package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/config"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
)

type AreaUseCase struct {
	*base
}

type AreaInput struct {
	Name        string
	Description string
	SortOrder   int
}

func (uc *AreaUseCase) List(ctx context.Context) ([]*model.Area, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindArea}); err != nil {
		return nil, err
	}

	areas, err := uc.repo.Area().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list areas")
	}
	return areas, nil
}

func (uc *AreaUseCase) Create(ctx context.Context, in AreaInput) (*model.Area, error) {
	actor, err := authorize(ctx, policy.ActionCreate, policy.Resource{Kind: policy.KindArea})
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("area name is required", "name")
	}

	area := &model.Area{
		ID:          types.NewAreaID(),
		Name:        in.Name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
		CreatedAt:   uc.now(),
	}

	entry := uc.audit(actor, "create_area", ResourceArea, area.ID.String(), area.Name)
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		existing, err := uc.repo.Area().List(ctx)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if strings.EqualFold(a.Name, area.Name) {
				return goerr.Wrap(ErrConflict, "area name already exists", goerr.V("name", area.Name))
			}
		}
		return uc.repo.Area().Put(ctx, area)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create area")
	}
	return area, nil
}

// Seed creates the configured areas that do not exist yet, matched by
// name. It returns the number of areas created.
func (uc *AreaUseCase) Seed(ctx context.Context, seeds []config.AreaSeed) (int, error) {
	if len(seeds) == 0 {
		return 0, nil
	}

	existing, err := uc.repo.Area().List(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list areas")
	}
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[strings.ToLower(a.Name)] = true
	}

	created := 0
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		if name == "" || known[strings.ToLower(name)] {
			continue
		}
		known[strings.ToLower(name)] = true

		area := &model.Area{
			ID:          types.NewAreaID(),
			Name:        name,
			Description: seed.Description,
			SortOrder:   seed.SortOrder,
			CreatedAt:   uc.now(),
		}
		entry := uc.audit(auth.System, "seed_area", ResourceArea, area.ID.String(), area.Name)
		if err := uc.commit(ctx, entry, func(ctx context.Context) error {
			return uc.repo.Area().Put(ctx, area)
		}); err != nil {
			return created, goerr.Wrap(err, "failed to seed area", goerr.V("name", name))
		}
		created++
	}

	logging.From(ctx).Info("areas seeded", "created", created, "configured", len(seeds))
	return created, nil
}

func (uc *AreaUseCase) ListAssignments(ctx context.Context, projectID types.ProjectID) ([]*model.AreaAssignment, error) {
	if _, _, err := uc.authorizeProject(ctx, projectID, policy.KindProject, policy.ActionRead); err != nil {
		return nil, err
	}

	assignments, err := uc.repo.Area().ListAssignments(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list area assignments", goerr.V(ProjectIDKey, projectID))
	}
	return assignments, nil
}

// Assign sets the area lead of an area in a project, replacing any
// previous assignment. The user must be an active bereichsleiter.
func (uc *AreaUseCase) Assign(ctx context.Context, projectID types.ProjectID, areaID types.AreaID, userID types.UserID, notes string) (*model.AreaAssignment, error) {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindProject, policy.ActionAssignAreas)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.Area().Get(ctx, areaID); err != nil {
		return nil, goerr.Wrap(err, "failed to get area", goerr.V(AreaIDKey, areaID))
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, userID))
	}
	if !user.Active {
		return nil, goerr.Wrap(ErrInactiveUser, "cannot assign inactive user", goerr.V(UserIDKey, userID))
	}
	if user.Role != types.RoleBereichsleiter {
		return nil, goerr.Wrap(ErrInvalidInput, "area lead must have role bereichsleiter",
			goerr.V(UserIDKey, userID), goerr.V("role", user.Role))
	}

	assignment := &model.AreaAssignment{
		AreaID:    areaID,
		ProjectID: projectID,
		UserID:    userID,
		Notes:     notes,
		UpdatedAt: uc.now(),
	}
	entry := uc.audit(actor, "assign_area", ResourceArea, areaID.String(), projectID.String()+":"+userID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Area().PutAssignment(ctx, assignment)
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to assign area", goerr.V(AreaIDKey, areaID), goerr.V(ProjectIDKey, projectID))
	}
	return assignment, nil
}

func (uc *AreaUseCase) Unassign(ctx context.Context, projectID types.ProjectID, areaID types.AreaID) error {
	_, actor, err := uc.authorizeProject(ctx, projectID, policy.KindProject, policy.ActionAssignAreas)
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "unassign_area", ResourceArea, areaID.String(), projectID.String())
	if err := uc.commit(ctx, entry, func(ctx context.Context) error {
		return uc.repo.Area().DeleteAssignment(ctx, areaID, projectID)
	}); err != nil {
		return goerr.Wrap(err, "failed to unassign area", goerr.V(AreaIDKey, areaID), goerr.V(ProjectIDKey, projectID))
	}
	return nil
}
