package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gzapadmin/internal/common"
)

// MemoryRepository keeps accounts in a map. Records are copied in and out.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*User
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, common.ErrorAlreadyExists
		}
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	r.byID[u.ID] = &u
	r.order = append(r.order, u.ID)

	out := u
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && u.Username == user.Username {
			return common.ErrorAlreadyExists
		}
	}

	u := *user
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = &u
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == login {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

// List returns accounts in creation order.
func (r *MemoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, 0, len(r.order))
	for _, id := range r.order {
		u := *r.byID[id]
		out = append(out, &u)
	}
	return out, nil
}
