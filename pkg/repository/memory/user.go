package memory

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type userRepository struct {
	s *store
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	defer r.s.read()()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return clone(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer r.s.read()()

	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	defer r.s.read()()

	users := make([]*model.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		users = append(users, clone(u))
	}
	sortByCreated(users, func(u *model.User) (int64, string) { return u.CreatedAt.UnixNano(), string(u.ID) })
	return users, nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	defer r.s.write(ctx)()

	r.s.data.users[user.ID] = clone(user)
	return nil
}
