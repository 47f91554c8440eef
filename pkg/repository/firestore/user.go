package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

type userRepository struct {
	f *Firestore
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	return getDoc[model.User](ctx, r.f, r.f.collection(collUsers).Doc(id.String()), "user")
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := listDocs[model.User](ctx, r.f, r.f.collection(collUsers).Where("Email", "==", strings.ToLower(email)).Limit(1), "users")
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	return users[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	return listDocs[model.User](ctx, r.f, r.f.collection(collUsers).OrderBy("CreatedAt", firestore.Asc), "users")
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	return setDoc(ctx, r.f, r.f.collection(collUsers).Doc(user.ID.String()), user, "user")
}
