package testutils

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/store"
)

type progressKey struct {
	userID uuid.UUID
	wordID uuid.UUID
}

type memData struct {
	words      map[uuid.UUID]*domain.Word
	levels     []domain.Level
	categories []domain.Category
	users      map[uuid.UUID]*domain.User
	progress   map[progressKey]*domain.WordProgress
	answers    []*domain.AnswerRecord
}

func newMemData() *memData {
	return &memData{
		words:    map[uuid.UUID]*domain.Word{},
		users:    map[uuid.UUID]*domain.User{},
		progress: map[progressKey]*domain.WordProgress{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for id, w := range d.words {
		cp := *w
		c.words[id] = &cp
	}
	c.levels = append([]domain.Level(nil), d.levels...)
	c.categories = append([]domain.Category(nil), d.categories...)
	for id, u := range d.users {
		cp := *u
		c.users[id] = &cp
	}
	for k, p := range d.progress {
		c.progress[k] = p.Clone()
	}
	for _, a := range d.answers {
		cp := *a
		c.answers = append(c.answers, &cp)
	}
	return c
}

// MemStore is an in-memory implementation of the store interfaces.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *memData

	failures map[string]error
	txCount  int
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: newMemData(), failures: map[string]error{}}
}

var _ store.Transactor = (*MemStore)(nil)

// Repositories returns stores that read and write the MemStore directly.
func (m *MemStore) Repositories() store.Repositories {
	return store.Repositories{
		Words:      memWords{m},
		Curriculum: memCurriculum{m},
		Users:      memUsers{m},
		Progress:   memProgress{m},
		Answers:    memAnswers{m},
	}
}

// WithinTransaction implements store.Transactor. Units of work run one at a
// time; a returned error or panic restores the data as it was before.
func (m *MemStore) WithinTransaction(ctx context.Context, fn store.UnitOfWorkFn) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.data.clone()
	m.txCount++
	m.mu.Unlock()

	rollback := func() {
		m.mu.Lock()
		m.data = snapshot
		m.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, m.Repositories()); err != nil {
		rollback()
		return err
	}
	if failErr := m.fail("Commit"); failErr != nil {
		rollback()
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, failErr)
	}
	return nil
}

// FailOn makes the named operation (for example "Progress.Update" or
// "Commit") return err until cleared with a nil err.
func (m *MemStore) FailOn(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, operation)
		return
	}
	m.failures[operation] = err
}

func (m *MemStore) fail(operation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[operation]
}

// TransactionCount reports how many units of work have started.
func (m *MemStore) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCount
}

// SeedLevel adds a level with an explicit sort order.
func (m *MemStore) SeedLevel(label string, order int) domain.Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := domain.Level{ID: len(m.data.levels) + 1, Label: label, Order: order}
	m.data.levels = append(m.data.levels, l)
	return l
}

// SeedCategory adds a category with an explicit sort order.
func (m *MemStore) SeedCategory(label string, order int) domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Category{ID: len(m.data.categories) + 1, Label: label, Order: order}
	m.data.categories = append(m.data.categories, c)
	return c
}

// SeedWord adds a catalog word.
func (m *MemStore) SeedWord(text, translation string, levelID, categoryID *int) *domain.Word {
	w, err := domain.NewWord(text, translation)
	if err != nil {
		panic(fmt.Sprintf("invalid seed word %q: %v", text, err))
	}
	w.LevelID = levelID
	w.CategoryID = categoryID

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.data.words[w.ID] = &cp
	return w
}

// SeedUser adds a user with an optional curriculum pointer.
func (m *MemStore) SeedUser(id uuid.UUID, levelID, categoryID *int) *domain.User {
	u := &domain.User{
		ID:                id,
		CurrentLevelID:    levelID,
		CurrentCategoryID: categoryID,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.data.users[id] = &cp
	return u
}

// PutProgress stores p as is, bypassing validation, so tests can build any
// state including corrupted ones.
func (m *MemStore) PutProgress(p *domain.WordProgress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.progress[progressKey{p.UserID, p.WordID}] = p.Clone()
}

// Progress returns a copy of the stored record, or nil.
func (m *MemStore) Progress(userID, wordID uuid.UUID) *domain.WordProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.data.progress[progressKey{userID, wordID}]; ok {
		return p.Clone()
	}
	return nil
}

// ProgressCount returns how many records the user has.
func (m *MemStore) ProgressCount(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.data.progress {
		if k.userID == userID {
			n++
		}
	}
	return n
}

// User returns a copy of the stored user, or nil.
func (m *MemStore) User(id uuid.UUID) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.data.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

// Answers returns copies of all recorded answers in insertion order.
func (m *MemStore) Answers() []domain.AnswerRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AnswerRecord, 0, len(m.data.answers))
	for _, a := range m.data.answers {
		out = append(out, *a)
	}
	return out
}

// memWords implements store.WordStore.
type memWords struct{ m *MemStore }

var _ store.WordStore = memWords{}

func (s memWords) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if err := s.m.fail("Words.GetByID"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	w, ok := s.m.data.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	cp := *w
	return &cp, nil
}

func (s memWords) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	if err := s.m.fail("Words.GetByText"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, w := range s.m.data.words {
		if w.Text == text {
			cp := *w
			return &cp, nil
		}
	}
	return nil, store.ErrWordNotFound
}

func (s memWords) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error) {
	if err := s.m.fail("Words.GetByIDs"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Word{}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		w, ok := s.m.data.words[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (s memWords) sorted(keep func(*domain.Word) bool) []*domain.Word {
	out := []*domain.Word{}
	for _, w := range s.m.data.words {
		if keep(w) {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

func (s memWords) ListAll(ctx context.Context) ([]*domain.Word, error) {
	if err := s.m.fail("Words.ListAll"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.sorted(func(*domain.Word) bool { return true }), nil
}

// RandomByLevel returns the first words of the level by spelling so tests
// stay deterministic.
func (s memWords) RandomByLevel(ctx context.Context, levelID, limit int) ([]*domain.Word, error) {
	if err := s.m.fail("Words.RandomByLevel"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	words := s.sorted(func(w *domain.Word) bool { return w.LevelID != nil && *w.LevelID == levelID })
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

func (s memWords) unlearned(userID uuid.UUID, filter store.UnlearnedFilter) []*domain.Word {
	return s.sorted(func(w *domain.Word) bool {
		if _, learned := s.m.data.progress[progressKey{userID, w.ID}]; learned {
			return false
		}
		if filter.LevelID != nil && (w.LevelID == nil || *w.LevelID != *filter.LevelID) {
			return false
		}
		if filter.CategoryID != nil && (w.CategoryID == nil || *w.CategoryID != *filter.CategoryID) {
			return false
		}
		return true
	})
}

func (s memWords) ListUnlearned(
	ctx context.Context,
	userID uuid.UUID,
	filter store.UnlearnedFilter,
	limit int,
) ([]*domain.Word, error) {
	if err := s.m.fail("Words.ListUnlearned"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	words := s.unlearned(userID, filter)
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

func (s memWords) CountUnlearned(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := s.m.fail("Words.CountUnlearned"); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return len(s.unlearned(userID, store.UnlearnedFilter{})), nil
}

func (s memWords) CreateMany(ctx context.Context, words []*domain.Word) (int, int, error) {
	if err := s.m.fail("Words.CreateMany"); err != nil {
		return 0, 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	spellings := map[string]bool{}
	for _, w := range s.m.data.words {
		spellings[w.Text] = true
	}

	created, skipped := 0, 0
	for _, w := range words {
		if err := w.Validate(); err != nil {
			return created, skipped, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		if spellings[w.Text] {
			skipped++
			continue
		}
		spellings[w.Text] = true
		cp := *w
		s.m.data.words[w.ID] = &cp
		created++
	}
	return created, skipped, nil
}

func (s memWords) DeleteAll(ctx context.Context) (int, error) {
	if err := s.m.fail("Words.DeleteAll"); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n := len(s.m.data.words)
	s.m.data.words = map[uuid.UUID]*domain.Word{}
	s.m.data.progress = map[progressKey]*domain.WordProgress{}
	s.m.data.answers = nil
	return n, nil
}

// memCurriculum implements store.CurriculumStore.
type memCurriculum struct{ m *MemStore }

var _ store.CurriculumStore = memCurriculum{}

func (s memCurriculum) ListLevels(ctx context.Context) ([]domain.Level, error) {
	if err := s.m.fail("Curriculum.ListLevels"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := append([]domain.Level(nil), s.m.data.levels...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s memCurriculum) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := s.m.fail("Curriculum.ListCategories"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := append([]domain.Category(nil), s.m.data.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s memCurriculum) EnsureLevel(ctx context.Context, label string) (domain.Level, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Level{}, fmt.Errorf("%w: level label cannot be empty", store.ErrInvalidEntity)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	maxOrder := 0
	for _, l := range s.m.data.levels {
		if l.Label == label {
			return l, nil
		}
		if l.Order > maxOrder {
			maxOrder = l.Order
		}
	}
	l := domain.Level{ID: len(s.m.data.levels) + 1, Label: label, Order: maxOrder + 1}
	s.m.data.levels = append(s.m.data.levels, l)
	return l, nil
}

func (s memCurriculum) EnsureCategory(ctx context.Context, label string) (domain.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Category{}, fmt.Errorf("%w: category label cannot be empty", store.ErrInvalidEntity)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	maxOrder := 0
	for _, c := range s.m.data.categories {
		if c.Label == label {
			return c, nil
		}
		if c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	c := domain.Category{ID: len(s.m.data.categories) + 1, Label: label, Order: maxOrder + 1}
	s.m.data.categories = append(s.m.data.categories, c)
	return c, nil
}

// memUsers implements store.UserStore.
type memUsers struct{ m *MemStore }

var _ store.UserStore = memUsers{}

func (s memUsers) Create(ctx context.Context, user *domain.User) error {
	if err := s.m.fail("Users.Create"); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.data.users[user.ID]; ok {
		return fmt.Errorf("%w: user %s", store.ErrDuplicate, user.ID)
	}
	cp := *user
	s.m.data.users[user.ID] = &cp
	return nil
}

func (s memUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := s.m.fail("Users.GetByID"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.data.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) UpdatePointer(ctx context.Context, userID uuid.UUID, levelID, categoryID int) error {
	if err := s.m.fail("Users.UpdatePointer"); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.data.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	l, c := levelID, categoryID
	u.CurrentLevelID = &l
	u.CurrentCategoryID = &c
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s memUsers) MarkTutorialCompleted(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if err := s.m.fail("Users.MarkTutorialCompleted"); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.data.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	completed := at
	u.TutorialCompletedAt = &completed
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s memUsers) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.m.fail("Users.Delete"); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.data.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.m.data.users, id)
	for k := range s.m.data.progress {
		if k.userID == id {
			delete(s.m.data.progress, k)
		}
	}
	kept := s.m.data.answers[:0]
	for _, a := range s.m.data.answers {
		if a.UserID != id {
			kept = append(kept, a)
		}
	}
	s.m.data.answers = kept
	return nil
}

// memProgress implements store.ProgressStore.
type memProgress struct{ m *MemStore }

var _ store.ProgressStore = memProgress{}

func practiceDue(p *domain.WordProgress) bool {
	return (p.Pool.IsPractice() && !p.Pool.IsMastered()) || (p.Pool.IsRemedial() && !p.InReviewPhase)
}

func reviewDue(p *domain.WordProgress) bool {
	return p.Pool.IsRemedial() && p.InReviewPhase
}

func (s memProgress) Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error) {
	if err := s.m.fail("Progress.Get"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.data.progress[progressKey{userID, wordID}]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return p.Clone(), nil
}

// GetForUpdate needs no row lock: transactions are already serialized.
func (s memProgress) GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error) {
	if err := s.m.fail("Progress.GetForUpdate"); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, wordID)
}

func (s memProgress) Create(ctx context.Context, progress *domain.WordProgress) error {
	if err := s.m.fail("Progress.Create"); err != nil {
		return err
	}
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.data.users[progress.UserID]; !ok {
		return fmt.Errorf("%w: user %s does not exist", store.ErrInvalidEntity, progress.UserID)
	}
	if _, ok := s.m.data.words[progress.WordID]; !ok {
		return fmt.Errorf("%w: word %s does not exist", store.ErrInvalidEntity, progress.WordID)
	}
	key := progressKey{progress.UserID, progress.WordID}
	if _, ok := s.m.data.progress[key]; ok {
		return store.ErrProgressExists
	}
	s.m.data.progress[key] = progress.Clone()
	return nil
}

func (s memProgress) Update(ctx context.Context, progress *domain.WordProgress) error {
	if err := s.m.fail("Progress.Update"); err != nil {
		return err
	}
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := progressKey{progress.UserID, progress.WordID}
	if _, ok := s.m.data.progress[key]; !ok {
		return store.ErrProgressNotFound
	}
	s.m.data.progress[key] = progress.Clone()
	return nil
}

// collect returns the user's records matching keep, earliest due first.
func (s memProgress) collect(userID uuid.UUID, keep func(*domain.WordProgress) bool) []*domain.WordProgress {
	out := []*domain.WordProgress{}
	for k, p := range s.m.data.progress {
		if k.userID == userID && keep(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextAvailableTime.Equal(out[j].NextAvailableTime) {
			return out[i].NextAvailableTime.Before(out[j].NextAvailableTime)
		}
		return out[i].WordID.String() < out[j].WordID.String()
	})
	return out
}

func limitProgress(records []*domain.WordProgress, limit int) []*domain.WordProgress {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

func (s memProgress) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error) {
	if err := s.m.fail("Progress.ListByUser"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.collect(userID, func(*domain.WordProgress) bool { return true }), nil
}

func (s memProgress) ListDuePractice(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	if err := s.m.fail("Progress.ListDuePractice"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return limitProgress(s.collect(userID, func(p *domain.WordProgress) bool {
		return practiceDue(p) && p.IsDue(now)
	}), limit), nil
}

func (s memProgress) ListDueReview(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.WordProgress, error) {
	if err := s.m.fail("Progress.ListDueReview"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return limitProgress(s.collect(userID, func(p *domain.WordProgress) bool {
		return reviewDue(p) && p.IsDue(now)
	}), limit), nil
}

func (s memProgress) count(operation string, userID uuid.UUID, keep func(*domain.WordProgress) bool) (int, error) {
	if err := s.m.fail(operation); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return len(s.collect(userID, keep)), nil
}

func (s memProgress) CountLearnedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	return s.count("Progress.CountLearnedSince", userID, func(p *domain.WordProgress) bool {
		return !p.LearnedAt.Before(since)
	})
}

func (s memProgress) CountPoolDueBy(
	ctx context.Context,
	userID uuid.UUID,
	pool domain.Pool,
	by time.Time,
) (int, error) {
	return s.count("Progress.CountPoolDueBy", userID, func(p *domain.WordProgress) bool {
		return p.Pool == pool && !p.NextAvailableTime.After(by)
	})
}

func (s memProgress) CountDuePractice(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return s.count("Progress.CountDuePractice", userID, func(p *domain.WordProgress) bool {
		return practiceDue(p) && p.IsDue(now)
	})
}

func (s memProgress) CountDueReview(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return s.count("Progress.CountDueReview", userID, func(p *domain.WordProgress) bool {
		return reviewDue(p) && p.IsDue(now)
	})
}

func (s memProgress) CountUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	return s.count("Progress.CountUpcoming", userID, func(p *domain.WordProgress) bool {
		return !p.Pool.IsMastered() && p.NextAvailableTime.After(from) && !p.NextAvailableTime.After(to)
	})
}

func (s memProgress) NextAvailableAfter(ctx context.Context, userID uuid.UUID, now time.Time) (*time.Time, error) {
	if err := s.m.fail("Progress.NextAvailableAfter"); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	pending := s.collect(userID, func(p *domain.WordProgress) bool {
		return !p.Pool.IsMastered() && p.NextAvailableTime.After(now)
	})
	if len(pending) == 0 {
		return nil, nil
	}
	t := pending[0].NextAvailableTime
	return &t, nil
}

func (s memProgress) ResetCooldown(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if err := s.m.fail("Progress.ResetCooldown"); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n := 0
	for k, p := range s.m.data.progress {
		if k.userID == userID {
			p.NextAvailableTime = now
			p.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (s memProgress) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := s.m.fail("Progress.DeleteByUser"); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n := 0
	for k := range s.m.data.progress {
		if k.userID == userID {
			delete(s.m.data.progress, k)
			n++
		}
	}
	return n, nil
}

// memAnswers implements store.AnswerStore.
type memAnswers struct{ m *MemStore }

var _ store.AnswerStore = memAnswers{}

func (s memAnswers) CreateBatch(ctx context.Context, records []*domain.AnswerRecord) error {
	if err := s.m.fail("Answers.CreateBatch"); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range records {
		if r.ID == uuid.Nil {
			return fmt.Errorf("%w: answer record ID cannot be empty", store.ErrInvalidEntity)
		}
		cp := *r
		s.m.data.answers = append(s.m.data.answers, &cp)
	}
	return nil
}

func (s memAnswers) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if err := s.m.fail("Answers.CountSince"); err != nil {
		return 0, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n := 0
	for _, a := range s.m.data.answers {
		if a.UserID == userID && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
