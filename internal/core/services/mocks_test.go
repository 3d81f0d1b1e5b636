package services

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// --- Mock implementations shared by service tests ---

// mockCacheStore implements driven.CacheStore in memory.
type mockCacheStore struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saveErr error
	saves   int
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{docs: make(map[string][]byte)}
}

func (m *mockCacheStore) Load(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *mockCacheStore) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[name] = append([]byte(nil), data...)
	return nil
}

func (m *mockCacheStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, name)
	return nil
}

func (m *mockCacheStore) List() ([]driven.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]driven.CacheEntry, 0, len(m.docs))
	for name, data := range m.docs {
		entries = append(entries, driven.CacheEntry{Name: name, Size: int64(len(data))})
	}
	return entries, nil
}

func (m *mockCacheStore) put(name, doc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = []byte(doc)
}

// mockStateStore implements driven.StateStore in memory.
type mockStateStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMockStateStore() *mockStateStore {
	return &mockStateStore{docs: make(map[string][]byte)}
}

func (m *mockStateStore) Load(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Join(domain.ErrCacheCorrupt, err)
	}
	return nil
}

func (m *mockStateStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = data
	return nil
}

func (m *mockStateStore) page() int {
	var st domain.PaginationState
	_ = m.Load(paginationStateKey, &st)
	return st.CurrentPage
}

// mockDisplay implements driven.Display and records every call.
type mockDisplay struct {
	mu       sync.Mutex
	calls    []string
	frames   int
	partials []image.Rectangle
	initErr  error
	showErr  error
	shown    chan struct{}
}

func newMockDisplay() *mockDisplay {
	return &mockDisplay{shown: make(chan struct{}, 64)}
}

func (m *mockDisplay) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "init")
	return m.initErr
}

func (m *mockDisplay) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "clear")
	return nil
}

func (m *mockDisplay) Show(_ image.Image) error {
	m.mu.Lock()
	m.calls = append(m.calls, "show")
	err := m.showErr
	if err == nil {
		m.frames++
	}
	m.mu.Unlock()
	select {
	case m.shown <- struct{}{}:
	default:
	}
	return err
}

func (m *mockDisplay) ShowPartial(_ image.Image, region image.Rectangle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "partial")
	m.partials = append(m.partials, region)
	return nil
}

func (m *mockDisplay) Sleep() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "sleep")
	return nil
}

func (m *mockDisplay) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockDisplay) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

func (m *mockDisplay) partialCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.partials)
}

// mockRenderer implements driven.Renderer and records the modes drawn.
type mockRenderer struct {
	mu        sync.Mutex
	modes     []domain.ModeKind
	bundles   []domain.DataBundle
	pages     []domain.StoryPage
	renderErr error
	panicMsg  string
}

func (m *mockRenderer) Render(mode domain.DisplayMode, data domain.DataBundle, width, height int) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.modes = append(m.modes, mode.Kind())
	m.bundles = append(m.bundles, data)
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	return image.NewGray(image.Rect(0, 0, width, height)), nil
}

func (m *mockRenderer) RenderStories(page domain.StoryPage, region image.Rectangle) (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, page)
	return image.NewGray(region), nil
}

func (m *mockRenderer) renderedModes() []domain.ModeKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ModeKind(nil), m.modes...)
}

// staticSettings implements driven.SettingsSource.
type staticSettings struct {
	mu       sync.Mutex
	settings domain.Settings
}

func newStaticSettings(s domain.Settings) *staticSettings {
	return &staticSettings{settings: s}
}

func (s *staticSettings) Current() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *staticSettings) update(fn func(*domain.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.settings)
}

// mockHistoryStore implements driven.HistoryStore in memory.
type mockHistoryStore struct {
	mu      sync.Mutex
	records []domain.RunRecord
}

func (m *mockHistoryStore) Record(_ context.Context, rec *domain.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, activity string, limit int) ([]domain.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RunRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if activity == "" || m.records[i].Activity == activity {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockHistoryStore) Prune(_ context.Context, _ int) error {
	return nil
}

func (m *mockHistoryStore) all() []domain.RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RunRecord(nil), m.records...)
}

// mockCalendar implements driven.HolidayCalendar keyed by "MM-DD".
type mockCalendar map[string]domain.Holiday

func (c mockCalendar) Lookup(date time.Time) (domain.Holiday, bool) {
	h, ok := c[date.Format("01-02")]
	return h, ok
}

// countingFetcher returns its values in order, failing once exhausted.
type countingFetcher[T any] struct {
	mu     sync.Mutex
	values []T
	err    error
	calls  int
}

func (f *countingFetcher[T]) Fetch(_ context.Context) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	if len(f.values) == 0 {
		return zero, errors.New("no more values")
	}
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	return v, nil
}

func (f *countingFetcher[T]) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fastRetrier retries without waiting.
func fastRetrier() *Retrier {
	return NewRetrier(RetryPolicy{Attempts: 3, Backoff: time.Millisecond}, nil)
}

// testSettings are defaults with quiet hours disabled and UTC time.
func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Quiet = domain.QuietWindow{}
	s.Location = time.UTC
	return s
}
