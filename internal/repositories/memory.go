package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"castlink_backend/internal/models"

	"github.com/google/uuid"
)

// MemoryRegistry - хранилище в памяти с теми же контрактами, что и
// GORM-реализация, включая constraint-ы уникальности. Используется в
// изолированных тестах сервисов вместо Postgres.
type MemoryRegistry struct {
	mu sync.Mutex

	users        map[string]models.User
	castings     map[string]models.Casting
	applications map[string]models.Application
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		users:        make(map[string]models.User),
		castings:     make(map[string]models.Casting),
		applications: make(map[string]models.Application),
	}
}

func (m *MemoryRegistry) Users() UserRepository               { return &memoryUserRepo{m} }
func (m *MemoryRegistry) Castings() CastingRepository         { return &memoryCastingRepo{m} }
func (m *MemoryRegistry) Applications() ApplicationRepository { return &memoryApplicationRepo{m} }

// InTransaction выполняет fn над тем же реестром. Отката при ошибке нет;
// операции внутри fn берут мьютекс по одной, поэтому тесты каскадов
// работают в один поток.
func (m *MemoryRegistry) InTransaction(ctx context.Context, fn func(Registry) error) error {
	return fn(&txRegistry{m})
}

type txRegistry struct {
	m *MemoryRegistry
}

func (t *txRegistry) Users() UserRepository               { return t.m.Users() }
func (t *txRegistry) Castings() CastingRepository         { return t.m.Castings() }
func (t *txRegistry) Applications() ApplicationRepository { return t.m.Applications() }
func (t *txRegistry) InTransaction(ctx context.Context, fn func(Registry) error) error {
	return fn(t)
}

func newID() string { return uuid.NewString() }

// --- Users ---

type memoryUserRepo struct{ m *MemoryRegistry }

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil || !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepo) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil || !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Deactivate(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = false
	r.m.users[id] = u
	return nil
}

// --- Castings ---

type memoryCastingRepo struct{ m *MemoryRegistry }

func (r *memoryCastingRepo) Create(ctx context.Context, casting *models.Casting) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if casting.ID == "" {
		casting.ID = newID()
	}
	if casting.CreatedAt.IsZero() {
		casting.CreatedAt = time.Now()
	}
	c := *casting
	c.Poster = nil
	r.m.castings[c.ID] = c
	return nil
}

func (r *memoryCastingRepo) FindByID(ctx context.Context, id string) (*models.Casting, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.castings[id]
	if !ok {
		return nil, ErrCastingNotFound
	}
	return &c, nil
}

func (r *memoryCastingRepo) FindActiveByID(ctx context.Context, id string) (*models.Casting, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.castings[id]
	if !ok || !c.IsActive {
		return nil, ErrCastingNotFound
	}
	if poster, ok := r.m.users[c.PostedBy]; ok {
		c.Poster = &poster
	}
	return &c, nil
}

func (r *memoryCastingRepo) Update(ctx context.Context, casting *models.Casting) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.castings[casting.ID]; !ok {
		return ErrCastingNotFound
	}
	c := *casting
	c.Poster = nil
	r.m.castings[c.ID] = c
	return nil
}

func (r *memoryCastingRepo) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.castings[id]
	if !ok || !c.IsActive {
		return ErrCastingNotFound
	}
	c.IsActive = false
	c.DeletedAt = &deletedAt
	r.m.castings[id] = c
	return nil
}

func (r *memoryCastingRepo) Search(ctx context.Context, criteria CastingSearchCriteria) ([]models.Casting, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var matched []models.Casting
	for _, c := range r.m.castings {
		if !c.IsActive {
			continue
		}
		if criteria.Search != "" && !castingMatchesSearch(c, criteria.Search) {
			continue
		}
		if criteria.RoleType != "" && !strings.EqualFold(c.RoleType, criteria.RoleType) {
			continue
		}
		if criteria.Location != "" && !strings.EqualFold(c.Location, criteria.Location) {
			continue
		}
		if poster, ok := r.m.users[c.PostedBy]; ok {
			c.Poster = &poster
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if criteria.Page > 0 && criteria.PageSize > 0 {
		start := (criteria.Page - 1) * criteria.PageSize
		if start >= len(matched) {
			return nil, total, nil
		}
		end := start + criteria.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func castingMatchesSearch(c models.Casting, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Title), s) ||
		strings.Contains(strings.ToLower(c.Description), s) ||
		strings.Contains(strings.ToLower(c.RoleType), s) ||
		strings.Contains(strings.ToLower(c.Location), s)
}

func (r *memoryCastingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Casting, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var castings []models.Casting
	for _, c := range r.m.castings {
		if c.PostedBy == ownerID {
			castings = append(castings, c)
		}
	}
	sort.Slice(castings, func(i, j int) bool {
		return castings[i].CreatedAt.After(castings[j].CreatedAt)
	})
	return castings, nil
}

func (r *memoryCastingRepo) ActiveIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var ids []string
	for _, c := range r.m.castings {
		if c.PostedBy == ownerID && c.IsActive {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *memoryCastingRepo) DeactivateByOwner(ctx context.Context, ownerID string, deletedAt time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var affected int64
	for id, c := range r.m.castings {
		if c.PostedBy == ownerID && c.IsActive {
			c.IsActive = false
			d := deletedAt
			c.DeletedAt = &d
			r.m.castings[id] = c
			affected++
		}
	}
	return affected, nil
}

// --- Applications ---

type memoryApplicationRepo struct{ m *MemoryRegistry }

func (r *memoryApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.applications {
		if a.CastingID == app.CastingID && a.ApplicantID == app.ApplicantID {
			return ErrApplicationAlreadyExists
		}
	}
	if app.ID == "" {
		app.ID = newID()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	a := *app
	a.Casting = nil
	a.Applicant = nil
	r.m.applications[a.ID] = a
	return nil
}

func (r *memoryApplicationRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.applications[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	r.attachRelations(&a)
	return &a, nil
}

func (r *memoryApplicationRepo) attachRelations(a *models.Application) {
	if c, ok := r.m.castings[a.CastingID]; ok {
		a.Casting = &c
	}
	if u, ok := r.m.users[a.ApplicantID]; ok {
		a.Applicant = &u
	}
}

func (r *memoryApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var apps []models.Application
	for _, a := range r.m.applications {
		if a.ApplicantID == applicantID {
			r.attachRelations(&a)
			apps = append(apps, a)
		}
	}
	sortApplications(apps)
	return apps, nil
}

func (r *memoryApplicationRepo) ListByCasting(ctx context.Context, castingID string) ([]models.Application, error) {
	return r.ListByCastingIDs(ctx, []string{castingID})
}

func (r *memoryApplicationRepo) ListByCastingIDs(ctx context.Context, castingIDs []string) ([]models.Application, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	idSet := make(map[string]bool, len(castingIDs))
	for _, id := range castingIDs {
		idSet[id] = true
	}
	var apps []models.Application
	for _, a := range r.m.applications {
		if idSet[a.CastingID] {
			r.attachRelations(&a)
			apps = append(apps, a)
		}
	}
	sortApplications(apps)
	return apps, nil
}

func sortApplications(apps []models.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}

func (r *memoryApplicationRepo) CountByCasting(ctx context.Context, castingID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var count int64
	for _, a := range r.m.applications {
		if a.CastingID == castingID {
			count++
		}
	}
	return count, nil
}

func (r *memoryApplicationRepo) Update(ctx context.Context, app *models.Application) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.applications[app.ID]; !ok {
		return ErrApplicationNotFound
	}
	a := *app
	a.Casting = nil
	a.Applicant = nil
	r.m.applications[a.ID] = a
	return nil
}

func (r *memoryApplicationRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.applications[id]; !ok {
		return ErrApplicationNotFound
	}
	delete(r.m.applications, id)
	return nil
}

func (r *memoryApplicationRepo) MarkApplicantDeleted(ctx context.Context, applicantID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var affected int64
	for id, a := range r.m.applications {
		if a.ApplicantID == applicantID && !a.ApplicantDeleted {
			a.ApplicantDeleted = true
			r.m.applications[id] = a
			affected++
		}
	}
	return affected, nil
}
