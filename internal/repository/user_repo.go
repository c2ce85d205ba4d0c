package repository

import (
	"context"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const usersPath = "users"

// UserRepository reads storefront accounts, embedded orders included.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, uid string) (*model.User, error)
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	Delete(ctx context.Context, uid string) error
	Subscribe(ctx context.Context, onChange func([]model.User)) (store.Unsubscribe, error)
}

type userRepository struct {
	users documentCollection[model.User]
}

func NewUserRepository(s store.DocumentStore) UserRepository {
	return &userRepository{
		users: newCollection(s, usersPath, func(u *model.User, key string) { u.UID = key }),
	}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.users.list(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*model.User, error) {
	return r.users.get(ctx, uid)
}

func (r *userRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	return r.users.write(ctx, uid, fields)
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	return r.users.remove(ctx, uid)
}

func (r *userRepository) Subscribe(ctx context.Context, onChange func([]model.User)) (store.Unsubscribe, error) {
	return r.users.subscribe(ctx, onChange)
}
