package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/domain/repository"
)

// Store keeps the ledger in process memory. It backs the engine tests and
// runs the service without DATABASE_URI; records do not survive a restart.
// A single mutex serializes mutations, so every mutator is atomic.
type Store struct {
	mu sync.RWMutex

	// Postpaid storage, keyed by username
	postpaid       map[string]*model.PostpaidUser
	nextPostpaidID int64

	// Prepaid storage, keyed by id with username/key indexes
	prepaid       map[int64]*model.PrepaidUser
	prepaidByName map[string]int64
	prepaidByKey  map[string]int64
	retiredKeys   map[string]struct{}
	nextPrepaidID int64

	// Drink catalog
	drinkTypes      map[int64]*model.DrinkType
	drinkTypeByName map[string]int64
	nextDrinkTypeID int64
}

func New() *Store {
	return &Store{
		postpaid:        make(map[string]*model.PostpaidUser),
		prepaid:         make(map[int64]*model.PrepaidUser),
		prepaidByName:   make(map[string]int64),
		prepaidByKey:    make(map[string]int64),
		retiredKeys:     make(map[string]struct{}),
		drinkTypes:      make(map[int64]*model.DrinkType),
		drinkTypeByName: make(map[string]int64),
	}
}

type postpaidRepository struct {
	store *Store
}

type prepaidRepository struct {
	store *Store
}

type drinkTypeRepository struct {
	store *Store
}

// Factory methods for domain repositories.
func (s *Store) Postpaid() repository.PostpaidRepository {
	return &postpaidRepository{store: s}
}

func (s *Store) Prepaid() repository.PrepaidRepository {
	return &prepaidRepository{store: s}
}

func (s *Store) DrinkTypes() repository.DrinkTypeRepository {
	return &drinkTypeRepository{store: s}
}

// HealthCheck always succeeds: process memory is never unreachable.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Records are handed out as copies so callers cannot reach into the
// store's state past the mutex.
func clonePostpaid(u *model.PostpaidUser) *model.PostpaidUser {
	c := *u
	if u.LastDrink != nil {
		t := *u.LastDrink
		c.LastDrink = &t
	}
	return &c
}

func clonePrepaid(u *model.PrepaidUser) *model.PrepaidUser {
	c := *u
	if u.LastDrink != nil {
		t := *u.LastDrink
		c.LastDrink = &t
	}
	return &c
}

// --- PostpaidRepository implementation ---

func (r *postpaidRepository) Get(_ context.Context, username string) (*model.PostpaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.postpaid[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return clonePostpaid(u), nil
}

func (r *postpaidRepository) List(_ context.Context) ([]model.PostpaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]model.PostpaidUser, 0, len(r.store.postpaid))
	for _, u := range r.store.postpaid {
		result = append(result, *clonePostpaid(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *postpaidRepository) Upsert(_ context.Context, user *model.PostpaidUser) (*model.PostpaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == 0 {
		if _, exists := r.store.postpaid[user.Username]; exists {
			return nil, domainErrors.ErrConflict
		}
		r.store.nextPostpaidID++
		stored := clonePostpaid(user)
		stored.ID = r.store.nextPostpaidID
		r.store.postpaid[user.Username] = stored
		return clonePostpaid(stored), nil
	}

	existing, ok := r.store.postpaid[user.Username]
	if !ok || existing.ID != user.ID {
		return nil, domainErrors.ErrConflict
	}
	existing.Money = user.Money
	existing.Activated = user.Activated
	existing.LastDrink = nil
	if user.LastDrink != nil {
		t := *user.LastDrink
		existing.LastDrink = &t
	}
	return clonePostpaid(existing), nil
}

func (r *postpaidRepository) RecordDrink(_ context.Context, username string, price int64, at time.Time) (*model.PostpaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.postpaid[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !u.Activated {
		return nil, domainErrors.ErrInactive
	}
	u.Money -= price
	t := at
	u.LastDrink = &t
	return clonePostpaid(u), nil
}

func (r *postpaidRepository) RevertDrink(_ context.Context, username string, refund int64, since time.Time) (*model.PostpaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.postpaid[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if u.LastDrink == nil || u.LastDrink.Before(since) {
		return nil, domainErrors.ErrNoRecentDrink
	}
	u.Money += refund
	u.LastDrink = nil
	return clonePostpaid(u), nil
}

func (r *postpaidRepository) SetMoney(_ context.Context, username string, money int64) (*model.PostpaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.postpaid[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u.Money = money
	return clonePostpaid(u), nil
}

func (r *postpaidRepository) ToggleActivated(_ context.Context, username string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.postpaid[username]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	u.Activated = !u.Activated
	return u.Activated, nil
}

func (r *postpaidRepository) Transfer(_ context.Context, from, to string, amount int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	src, ok := r.store.postpaid[from]
	if !ok {
		return domainErrors.ErrNotFound
	}
	dst, ok := r.store.postpaid[to]
	if !ok {
		return domainErrors.ErrNotFound
	}
	src.Money -= amount
	dst.Money += amount
	return nil
}

// --- PrepaidRepository implementation ---

func (r *prepaidRepository) Get(_ context.Context, username string) (*model.PrepaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.prepaidByName[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return clonePrepaid(r.store.prepaid[id]), nil
}

func (r *prepaidRepository) GetByKey(_ context.Context, userKey string) (*model.PrepaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.prepaidByKey[userKey]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return clonePrepaid(r.store.prepaid[id]), nil
}

func (r *prepaidRepository) List(_ context.Context) ([]model.PrepaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]model.PrepaidUser, 0, len(r.store.prepaid))
	for _, u := range r.store.prepaid {
		result = append(result, *clonePrepaid(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *prepaidRepository) ListByOwner(_ context.Context, postpaidUserID int64) ([]model.PrepaidUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]model.PrepaidUser, 0)
	for _, u := range r.store.prepaid {
		if u.PostpaidUserID == postpaidUserID {
			result = append(result, *clonePrepaid(u))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *prepaidRepository) Upsert(_ context.Context, user *model.PrepaidUser) (*model.PrepaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == 0 {
		if _, exists := r.store.prepaidByName[user.Username]; exists {
			return nil, domainErrors.ErrConflict
		}
		if _, exists := r.store.prepaidByKey[user.UserKey]; exists {
			return nil, domainErrors.ErrConflict
		}
		if _, retired := r.store.retiredKeys[user.UserKey]; retired {
			return nil, domainErrors.ErrConflict
		}
		r.store.nextPrepaidID++
		stored := clonePrepaid(user)
		stored.ID = r.store.nextPrepaidID
		r.store.prepaid[stored.ID] = stored
		r.store.prepaidByName[stored.Username] = stored.ID
		r.store.prepaidByKey[stored.UserKey] = stored.ID
		return clonePrepaid(stored), nil
	}

	existing, ok := r.store.prepaid[user.ID]
	if !ok || existing.Username != user.Username || existing.UserKey != user.UserKey || existing.PostpaidUserID != user.PostpaidUserID {
		return nil, domainErrors.ErrConflict
	}
	existing.Money = user.Money
	existing.Activated = user.Activated
	existing.LastDrink = nil
	if user.LastDrink != nil {
		t := *user.LastDrink
		existing.LastDrink = &t
	}
	return clonePrepaid(existing), nil
}

func (r *prepaidRepository) Delete(_ context.Context, username string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.prepaidByName[username]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u := r.store.prepaid[id]
	delete(r.store.prepaid, id)
	delete(r.store.prepaidByName, u.Username)
	delete(r.store.prepaidByKey, u.UserKey)
	r.store.retiredKeys[u.UserKey] = struct{}{}
	return nil
}

func (r *prepaidRepository) RecordDrink(_ context.Context, id int64, price int64, at time.Time) (*model.PrepaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.prepaid[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !u.Activated {
		return nil, domainErrors.ErrInactive
	}
	u.Money -= price
	t := at
	u.LastDrink = &t
	return clonePrepaid(u), nil
}

func (r *prepaidRepository) RevertDrink(_ context.Context, id int64, refund int64, since time.Time) (*model.PrepaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.prepaid[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if u.LastDrink == nil || u.LastDrink.Before(since) {
		return nil, domainErrors.ErrNoRecentDrink
	}
	u.Money += refund
	u.LastDrink = nil
	return clonePrepaid(u), nil
}

func (r *prepaidRepository) AddMoney(_ context.Context, id int64, amount int64) (*model.PrepaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.prepaid[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u.Money += amount
	return clonePrepaid(u), nil
}

func (r *prepaidRepository) SetMoney(_ context.Context, id int64, money int64) (*model.PrepaidUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.prepaid[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u.Money = money
	return clonePrepaid(u), nil
}

func (r *prepaidRepository) ToggleActivated(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.prepaid[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	u.Activated = !u.Activated
	return u.Activated, nil
}

// --- DrinkTypeRepository implementation ---

func (r *drinkTypeRepository) List(_ context.Context) ([]model.DrinkType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]model.DrinkType, 0, len(r.store.drinkTypes))
	for _, d := range r.store.drinkTypes {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *drinkTypeRepository) Create(_ context.Context, name, icon string, quantity int64) (*model.DrinkType, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.drinkTypeByName[name]; exists {
		return nil, domainErrors.ErrConflict
	}
	r.store.nextDrinkTypeID++
	d := &model.DrinkType{ID: r.store.nextDrinkTypeID, Name: name, Icon: icon, Quantity: quantity}
	r.store.drinkTypes[d.ID] = d
	r.store.drinkTypeByName[name] = d.ID
	c := *d
	return &c, nil
}

func (r *drinkTypeRepository) SetQuantity(_ context.Context, id int64, quantity int64) (*model.DrinkType, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.drinkTypes[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	d.Quantity = quantity
	c := *d
	return &c, nil
}

func (r *drinkTypeRepository) MarkConsumed(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.drinkTypes[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	d.Consumed++
	d.Quantity--
	return nil
}
