package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/policy"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type UserUseCase struct {
	*base
}

// UserInput is the editable part of a user. ID may be set on create to
// match the subject of the identity provider.
type UserInput struct {
	ID        types.UserID
	Email     string
	FirstName string
	LastName  string
	Role      types.Role
}

func (in *UserInput) normalize() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		return invalid("email is required", "email")
	}
	if !strings.Contains(in.Email, "@") {
		return invalid("email is malformed", "email")
	}
	if in.Role == "" {
		in.Role = types.RoleUser
	}
	if !in.Role.IsValid() {
		return invalid("unknown role", "role")
	}
	return nil
}

// Me returns the user the request runs as
func (uc *UserUseCase) Me(ctx context.Context) (*model.User, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor.UserID)
}

func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindUser, Subject: id}); err != nil {
		return nil, err
	}

	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*model.User, error) {
	if _, err := authorize(ctx, policy.ActionRead, policy.Resource{Kind: policy.KindUser}); err != nil {
		return nil, err
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (uc *UserUseCase) Create(ctx context.Context, in UserInput) (*model.User, error) {
	actor, err := authorize(ctx, policy.ActionCreate, policy.Resource{Kind: policy.KindUser})
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	now := uc.now()
	user := &model.User{
		ID:        in.ID,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      in.Role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.ID == "" {
		user.ID = types.NewUserID()
	}

	entry := uc.audit(actor, "create_user", ResourceUser, user.ID.String(), user.Email)
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		if _, err := uc.repo.User().Get(ctx, user.ID); err == nil {
			return goerr.Wrap(ErrConflict, "user id already exists", goerr.V(UserIDKey, user.ID))
		} else if !isNotFound(err) {
			return goerr.Wrap(err, "failed to check user id")
		}
		if err := uc.ensureEmailFree(ctx, user.Email, ""); err != nil {
			return err
		}
		return uc.repo.User().Put(ctx, user)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}
	return user, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id types.UserID, in UserInput) (*model.User, error) {
	actor, err := authorize(ctx, policy.ActionUpdate, policy.Resource{Kind: policy.KindUser, Subject: id})
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var user *model.User
	entry := uc.audit(actor, "update_user", ResourceUser, id.String(), in.Email)
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		current, err := uc.repo.User().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.ensureEmailFree(ctx, in.Email, id); err != nil {
			return err
		}

		current.Email = in.Email
		current.FirstName = strings.TrimSpace(in.FirstName)
		current.LastName = strings.TrimSpace(in.LastName)
		current.Role = in.Role
		current.UpdatedAt = uc.now()
		user = current
		return uc.repo.User().Put(ctx, current)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V(UserIDKey, id))
	}
	return user, nil
}

// Deactivate marks the user inactive. Users are never removed so the audit
// log keeps resolving.
func (uc *UserUseCase) Deactivate(ctx context.Context, id types.UserID) error {
	actor, err := authorize(ctx, policy.ActionDelete, policy.Resource{Kind: policy.KindUser, Subject: id})
	if err != nil {
		return err
	}

	entry := uc.audit(actor, "deactivate_user", ResourceUser, id.String(), "")
	err = uc.commit(ctx, entry, func(ctx context.Context) error {
		user, err := uc.repo.User().Get(ctx, id)
		if err != nil {
			return err
		}
		user.Active = false
		user.UpdatedAt = uc.now()
		return uc.repo.User().Put(ctx, user)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to deactivate user", goerr.V(UserIDKey, id))
	}
	return nil
}

// Bootstrap makes sure an active admin with the given id exists. It runs
// as the system actor and is used at startup.
func (uc *UserUseCase) Bootstrap(ctx context.Context, id types.UserID, email string) (*model.User, error) {
	if id == "" {
		return nil, invalid("bootstrap user id is required", "id")
	}

	var user *model.User
	entry := uc.audit(auth.System, "bootstrap_user", ResourceUser, id.String(), email)
	err := uc.commit(ctx, entry, func(ctx context.Context) error {
		current, err := uc.repo.User().Get(ctx, id)
		switch {
		case err == nil:
			current.Active = true
			current.Role = types.RoleAdmin
			current.UpdatedAt = uc.now()
			user = current
		case isNotFound(err):
			if email == "" {
				email = id.String() + "@localhost"
			}
			user = &model.User{
				ID:        id,
				Email:     strings.ToLower(email),
				Role:      types.RoleAdmin,
				Active:    true,
				CreatedAt: uc.now(),
				UpdatedAt: uc.now(),
			}
		default:
			return err
		}
		return uc.repo.User().Put(ctx, user)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bootstrap user", goerr.V(UserIDKey, id))
	}
	return user, nil
}

func (uc *UserUseCase) ensureEmailFree(ctx context.Context, email string, self types.UserID) error {
	existing, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return goerr.Wrap(err, "failed to look up email")
	}
	if existing.ID != self {
		return goerr.Wrap(ErrConflict, "email already in use", goerr.V("email", email))
	}
	return nil
}
