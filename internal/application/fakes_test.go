package application

import (
	"context"
	"sync"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
)

// In-memory gateways mirroring the conditional-write contracts of the
// Postgres implementations, guarded by a mutex so concurrency tests hold.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	hashes map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, hashes: map[string]string{}}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Events = append([]int64(nil), u.Events...)
	return &c
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return repo.ErrConflict
	}
	r.users[u.Username] = cloneUser(u)
	r.hashes[u.Username] = passwordHash
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetCredentials(_ context.Context, username string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hashes[username]
	if !ok {
		return "", repo.ErrNotFound
	}
	return h, nil
}

func (r *memUserRepo) Exists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; !ok {
		return repo.ErrNotFound
	}
	r.users[u.Username] = cloneUser(u)
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, username)
	delete(r.hashes, username)
	return nil
}

func (r *memUserRepo) AddAttendedEvent(_ context.Context, username string, eventID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return false, repo.ErrNotFound
	}
	for _, id := range u.Events {
		if id == eventID {
			return false, nil
		}
	}
	u.Events = append(u.Events, eventID)
	return true, nil
}

func (r *memUserRepo) RemoveAttendedEvent(_ context.Context, username string, eventID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return false, repo.ErrNotFound
	}
	for i, id := range u.Events {
		if id == eventID {
			u.Events = append(u.Events[:i], u.Events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) AddPoints(_ context.Context, username string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repo.ErrNotFound
	}
	u.Points += amount
	return nil
}

func (r *memUserRepo) SetVerification(_ context.Context, username string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repo.ErrNotFound
	}
	u.VerificationLevel = level
	u.IsVerified = true
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, username string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepo) SetCenter(_ context.Context, username string, centerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repo.ErrNotFound
	}
	u.Center = centerID
	return nil
}

type memCenterRepo struct {
	mu      sync.Mutex
	centers map[int64]*entity.Center
}

func newMemCenterRepo() *memCenterRepo {
	return &memCenterRepo{centers: map[int64]*entity.Center{}}
}

func (r *memCenterRepo) Create(_ context.Context, c *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[c.CenterID]; ok {
		return repo.ErrConflict
	}
	cp := *c
	r.centers[c.CenterID] = &cp
	return nil
}

func (r *memCenterRepo) GetByCenterID(_ context.Context, centerID int64) (*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[centerID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCenterRepo) Exists(_ context.Context, centerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.centers[centerID]
	return ok, nil
}

func (r *memCenterRepo) List(_ context.Context) ([]*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Center, 0, len(r.centers))
	for _, c := range r.centers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCenterRepo) Update(_ context.Context, c *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[c.CenterID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	r.centers[c.CenterID] = &cp
	return nil
}

func (r *memCenterRepo) Delete(_ context.Context, centerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[centerID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.centers, centerID)
	return nil
}

func (r *memCenterRepo) SetVerified(_ context.Context, centerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[centerID]
	if !ok {
		return repo.ErrNotFound
	}
	c.IsVerified = true
	return nil
}

func (r *memCenterRepo) AddMembers(_ context.Context, centerID int64, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[centerID]
	if !ok {
		return repo.ErrNotFound
	}
	c.MemberCount += delta
	if c.MemberCount < 0 {
		c.MemberCount = 0
	}
	return nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events map[int64]*entity.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[int64]*entity.Event{}}
}

func cloneEvent(e *entity.Event) *entity.Event {
	c := *e
	c.Endorsers = append([]entity.Endorser(nil), e.Endorsers...)
	c.UsersAttending = append([]string(nil), e.UsersAttending...)
	return &c
}

func (r *memEventRepo) Create(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; ok {
		return repo.ErrConflict
	}
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *memEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *memEventRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.events[id]
	return ok, nil
}

func (r *memEventRepo) ListByCenter(_ context.Context, centerID int64) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Event
	for _, e := range r.events {
		if e.Center == centerID {
			out = append(out, cloneEvent(e))
		}
	}
	return out, nil
}

func (r *memEventRepo) Update(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.events[e.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Location = e.Location
	cur.Date = e.Date
	cur.Description = e.Description
	return nil
}

func (r *memEventRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memEventRepo) AddAttendee(_ context.Context, eventID int64, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return false, repo.ErrNotFound
	}
	for _, u := range e.UsersAttending {
		if u == username {
			return false, nil
		}
	}
	e.UsersAttending = append(e.UsersAttending, username)
	e.PeopleAttending++
	return true, nil
}

func (r *memEventRepo) RemoveAttendee(_ context.Context, eventID int64, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return false, repo.ErrNotFound
	}
	for i, u := range e.UsersAttending {
		if u == username {
			e.UsersAttending = append(e.UsersAttending[:i], e.UsersAttending[i+1:]...)
			e.PeopleAttending--
			return true, nil
		}
	}
	return false, nil
}

func (r *memEventRepo) AddEndorser(_ context.Context, eventID int64, endorser entity.Endorser) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return false, repo.ErrNotFound
	}
	for _, en := range e.Endorsers {
		if en.Username == endorser.Username {
			return false, nil
		}
	}
	e.Endorsers = append(e.Endorsers, endorser)
	return true, nil
}

func (r *memEventRepo) SetTier(_ context.Context, eventID int64, t float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return repo.ErrNotFound
	}
	e.Tier = t
	return nil
}

func (r *memEventRepo) SetDescription(_ context.Context, eventID int64, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return repo.ErrNotFound
	}
	e.Description = description
	return nil
}
