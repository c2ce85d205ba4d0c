package repository

import (
	"context"
	"sort"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

// OrderRepository exposes the orders embedded under every user as one flat list.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*model.Order, error)
	Update(ctx context.Context, userID, orderID string, fields map[string]interface{}) error
	Subscribe(ctx context.Context, onChange func([]model.Order)) (store.Unsubscribe, error)
}

type orderRepository struct {
	users documentCollection[model.User]
}

func NewOrderRepository(s store.DocumentStore) OrderRepository {
	return &orderRepository{
		users: newCollection(s, usersPath, func(u *model.User, key string) { u.UID = key }),
	}
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	users, err := r.users.list(ctx)
	if err != nil {
		return nil, err
	}
	return FlattenOrders(users), nil
}

func (r *orderRepository) GetByID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	user, err := r.users.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, ok := user.Orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	order = withOwner(order, orderID, *user)
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, userID, orderID string, fields map[string]interface{}) error {
	return r.users.write(ctx, store.Join(userID, "orders", orderID), fields)
}

func (r *orderRepository) Subscribe(ctx context.Context, onChange func([]model.Order)) (store.Unsubscribe, error) {
	return r.users.subscribe(ctx, func(users []model.User) {
		onChange(FlattenOrders(users))
	})
}

// FlattenOrders lists every embedded order, users in input order and each
// user's orders by key. Every order carries its owner's id and contact details.
func FlattenOrders(users []model.User) []model.Order {
	out := make([]model.Order, 0)
	for _, u := range users {
		ids := make([]string, 0, len(u.Orders))
		for id := range u.Orders {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			out = append(out, withOwner(u.Orders[id], id, u))
		}
	}
	return out
}

func withOwner(o model.Order, key string, u model.User) model.Order {
	o.ID = key
	o.UserID = u.UID

	contact := u.Contact()
	if contact.DisplayName == "" {
		contact.DisplayName = o.Customer.DisplayName
	}
	if contact.Email == "" {
		contact.Email = o.Customer.Email
	}
	if contact.Phone == "" {
		contact.Phone = o.Customer.Phone
	}
	o.Customer = contact
	return o
}
