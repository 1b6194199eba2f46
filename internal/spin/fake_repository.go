package spin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/repository"
)

// errInjectedCommit is returned by commits failed on purpose
var errInjectedCommit = errors.New("injected commit failure")

// FakeRepository is a stateful in-memory implementation of the spin, content
// and settings repositories. Entitlement rows are locked from
// GetEntitlementForUpdate until the transaction ends, like SELECT ... FOR UPDATE.
type FakeRepository struct {
	mu           sync.Mutex
	entitlements map[string]domain.SpinEntitlement
	content      []domain.ContentItem
	settings     map[string]string
	spins        map[uuid.UUID]domain.SpinRecord
	spinOrder    []uuid.UUID
	unlocks      map[string]map[int64]domain.UnlockRecord

	rowLocks sync.Map // userID -> *sync.Mutex

	settingsErr      error
	failCommits      int
	ambiguousCommits int
	writes           int
}

// NewFakeRepository creates an empty FakeRepository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		entitlements: make(map[string]domain.SpinEntitlement),
		settings:     make(map[string]string),
		spins:        make(map[uuid.UUID]domain.SpinRecord),
		unlocks:      make(map[string]map[int64]domain.UnlockRecord),
	}
}

// AddUser registers an entitlement row
func (f *FakeRepository) AddUser(ent domain.SpinEntitlement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entitlements[ent.UserID] = ent
}

// AddContent appends items to the catalog
func (f *FakeRepository) AddContent(items ...domain.ContentItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = append(f.content, items...)
}

// SetSetting stores a raw setting value
func (f *FakeRepository) SetSetting(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = value
}

// FailSettingReads makes every GetSetting return err until called with nil
func (f *FakeRepository) FailSettingReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsErr = err
}

// FailNextCommits makes the next n commits fail without applying anything
func (f *FakeRepository) FailNextCommits(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCommits = n
}

// AmbiguousNextCommits makes the next n commits apply their writes and then
// report an error, as when a connection drops after the server committed
func (f *FakeRepository) AmbiguousNextCommits(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ambiguousCommits = n
}

// Entitlement returns a copy of the stored row
func (f *FakeRepository) Entitlement(userID string) (domain.SpinEntitlement, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ent, ok := f.entitlements[userID]
	return ent, ok
}

// Spins returns every spin record in insertion order
func (f *FakeRepository) Spins() []domain.SpinRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SpinRecord, 0, len(f.spinOrder))
	for _, id := range f.spinOrder {
		out = append(out, f.spins[id])
	}
	return out
}

// Unlocks returns a user's unlock records
func (f *FakeRepository) Unlocks(userID string) []domain.UnlockRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.UnlockRecord, 0, len(f.unlocks[userID]))
	for _, u := range f.unlocks[userID] {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentID < out[j].ContentID })
	return out
}

// Writes counts every applied write
func (f *FakeRepository) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Content

func (f *FakeRepository) QueryActiveContent(ctx context.Context, t domain.ContentType, minQualityScore *int) ([]domain.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ContentItem
	for _, item := range f.content {
		if item.Type != t || !item.IsActive {
			continue
		}
		if minQualityScore != nil && (item.QualityScore == nil || *item.QualityScore < *minQualityScore) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeRepository) GetContentByID(ctx context.Context, id int64) (*domain.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.content {
		if item.ID == id {
			c := item
			return &c, nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) UpdateCachedScores(ctx context.Context, scores map[int64]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.content {
		if s, ok := scores[f.content[i].ID]; ok {
			v := s
			f.content[i].QualityScore = &v
			f.writes++
		}
	}
	return nil
}

// Settings

func (f *FakeRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settingsErr != nil {
		return "", false, f.settingsErr
	}
	v, ok := f.settings[key]
	return v, ok, nil
}

// Spin

func (f *FakeRepository) GetEntitlement(ctx context.Context, userID string) (*domain.SpinEntitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ent, ok := f.entitlements[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return &ent, nil
}

func (f *FakeRepository) UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entitlements[ent.UserID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, ent.UserID)
	}
	f.entitlements[ent.UserID] = ent
	f.writes++
	return nil
}

func (f *FakeRepository) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	return &fakeSpinTx{repo: f}, nil
}

func (f *FakeRepository) rowLock(userID string) *sync.Mutex {
	m, _ := f.rowLocks.LoadOrStore(userID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// fakeSpinTx buffers writes and applies them on commit
type fakeSpinTx struct {
	repo   *FakeRepository
	locked []*sync.Mutex
	closed bool

	entitlements map[string]domain.SpinEntitlement
	unlocks      []domain.UnlockRecord
	spins        []domain.SpinRecord
}

func (tx *fakeSpinTx) GetEntitlementForUpdate(ctx context.Context, userID string) (*domain.SpinEntitlement, error) {
	if tx.closed {
		return nil, errors.New(domain.ErrMsgTxClosed)
	}
	lock := tx.repo.rowLock(userID)
	lock.Lock()
	tx.locked = append(tx.locked, lock)

	if ent, ok := tx.entitlements[userID]; ok {
		return &ent, nil
	}
	return tx.repo.GetEntitlement(ctx, userID)
}

func (tx *fakeSpinTx) UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	if tx.entitlements == nil {
		tx.entitlements = make(map[string]domain.SpinEntitlement)
	}
	tx.entitlements[ent.UserID] = ent
	return nil
}

func (tx *fakeSpinTx) UpdateTimezone(ctx context.Context, userID, timezone string) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	ent, ok := tx.entitlements[userID]
	if !ok {
		stored, err := tx.repo.GetEntitlement(ctx, userID)
		if err != nil {
			return err
		}
		ent = *stored
	}
	ent.Timezone = timezone
	return tx.UpdateEntitlement(ctx, ent)
}

func (tx *fakeSpinTx) HasUnlock(ctx context.Context, userID string, contentID int64) (bool, error) {
	for _, u := range tx.unlocks {
		if u.UserID == userID && u.ContentID == contentID {
			return true, nil
		}
	}
	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	_, ok := tx.repo.unlocks[userID][contentID]
	return ok, nil
}

func (tx *fakeSpinTx) CreateUnlock(ctx context.Context, unlock domain.UnlockRecord) (bool, error) {
	has, err := tx.HasUnlock(ctx, unlock.UserID, unlock.ContentID)
	if err != nil || has {
		return false, err
	}
	tx.unlocks = append(tx.unlocks, unlock)
	return true, nil
}

func (tx *fakeSpinTx) CreateSpinRecord(ctx context.Context, record domain.SpinRecord) (bool, error) {
	tx.repo.mu.Lock()
	_, exists := tx.repo.spins[record.ID]
	tx.repo.mu.Unlock()
	if exists {
		return false, nil
	}
	tx.spins = append(tx.spins, record)
	return true, nil
}

func (tx *fakeSpinTx) Commit(ctx context.Context) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	defer tx.release()

	f := tx.repo
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCommits > 0 {
		f.failCommits--
		return errInjectedCommit
	}

	for id, ent := range tx.entitlements {
		f.entitlements[id] = ent
		f.writes++
	}
	for _, u := range tx.unlocks {
		if f.unlocks[u.UserID] == nil {
			f.unlocks[u.UserID] = make(map[int64]domain.UnlockRecord)
		}
		f.unlocks[u.UserID][u.ContentID] = u
		f.writes++
	}
	for _, s := range tx.spins {
		f.spins[s.ID] = s
		f.spinOrder = append(f.spinOrder, s.ID)
		f.writes++
	}

	if f.ambiguousCommits > 0 {
		f.ambiguousCommits--
		return errInjectedCommit
	}
	return nil
}

func (tx *fakeSpinTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	tx.release()
	return nil
}

func (tx *fakeSpinTx) release() {
	tx.closed = true
	for i := len(tx.locked) - 1; i >= 0; i-- {
		tx.locked[i].Unlock()
	}
	tx.locked = nil
}
