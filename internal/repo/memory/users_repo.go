package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/google/uuid"
)

// UsersRepo keeps users in a map keyed by id, with the same integrity rules
// as the postgres table: unique email, a valid role, no blank required field.
type UsersRepo struct {
	mu      sync.RWMutex
	items   map[string]user.User // id -> user
	byEmail map[string]string    // email -> id
	now     func() time.Time
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[string]user.User),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UsersRepo) Ping(context.Context) error {
	return nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return r.items[id], nil
}

func (r *UsersRepo) List(context.Context) ([]user.User, error) {
	r.mu.RLock()
	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *UsersRepo) Create(_ context.Context, in user.User) (user.User, error) {
	if err := in.Validate(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[in.Email]; taken {
		return user.User{}, user.ErrEmailTaken
	}

	now := r.now()
	in.ID = uuid.NewString()
	in.CreatedAt = now
	in.UpdatedAt = now

	r.items[in.ID] = in
	r.byEmail[in.Email] = in.ID

	return in, nil
}

func (r *UsersRepo) Update(_ context.Context, id string, p user.Patch) (user.User, error) {
	if err := p.Validate(); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if p.IsEmpty() {
		return cur, nil
	}

	next := cur
	p.Apply(&next)

	if next.Email != cur.Email {
		if _, taken := r.byEmail[next.Email]; taken {
			return user.User{}, user.ErrEmailTaken
		}
	}

	if err := next.Validate(); err != nil {
		return user.User{}, err
	}

	next.UpdatedAt = r.now()

	delete(r.byEmail, cur.Email)
	r.byEmail[next.Email] = id
	r.items[id] = next

	return next, nil
}

func (r *UsersRepo) UpdateRole(_ context.Context, email string, role user.Role) (user.User, error) {
	if !role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u := r.items[id]
	u.Role = role
	u.UpdatedAt = r.now()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.ErrNotFound
	}

	delete(r.byEmail, email)
	delete(r.items, id)

	return nil
}
