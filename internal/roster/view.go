// Package roster holds the in-memory roster and the list derived from it.
//
// A View owns the last snapshot read from storage (the full roster) and
// the display list computed from it with the current search query and sort
// mode. The display list is never patched incrementally: every change
// recomputes it with Derive(full, query, mode).
//
// Mutations (Add, Update, Remove) write the new array to storage first and
// only then replace the snapshot, so the view never shows data that was not
// persisted. Every View over the same store and key shares one write
// lock, so concurrent mutations from separate views never lose records.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/validation"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")
	// ErrDuplicateID is returned by Add when the id is already taken.
	ErrDuplicateID = errors.New("student id already exists")
)

// Recorder is notified of every mutation attempt and its outcome.
type Recorder interface {
	Mutation(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, error) {}

// writeLocks holds one mutex per (store, key) pair for the whole process.
var writeLocks sync.Map

type lockKey struct {
	store storage.Storage
	key   string
}

// writeLock returns the mutex serializing mutations of key in store.
// Stores are used as map keys, so they must be comparable (pointer types).
func writeLock(store storage.Storage, key string) *sync.Mutex {
	mu, _ := writeLocks.LoadOrStore(lockKey{store: store, key: key}, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// View is safe for concurrent use. Mutations re-read storage and write it
// back while holding the write lock shared by all views of the same store
// and key, so read-modify-write sequences never interleave.
type View struct {
	store    storage.Storage
	key      string
	recorder Recorder

	mu      sync.Mutex
	full    []types.Student
	display []types.Student
	query   string
	mode    SortMode
}

// Option configures a View.
type Option func(*View)

// WithKey overrides the storage key (default storage.DefaultKey).
func WithKey(key string) Option {
	return func(v *View) { v.key = key }
}

// WithRecorder reports mutations to r.
func WithRecorder(r Recorder) Option {
	return func(v *View) { v.recorder = r }
}

// New creates an empty view over store. Call Load to fill it.
func New(store storage.Storage, opts ...Option) *View {
	v := &View{
		store:    store,
		key:      storage.DefaultKey,
		recorder: nopRecorder{},
		full:     []types.Student{},
		display:  []types.Student{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load replaces the snapshot with what storage currently holds.
//
// A key that was never written, or a value that is not a JSON array of
// students, yields an empty roster. A storage error also leaves the view
// empty and is returned.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	students, err := v.read(ctx)
	if err != nil {
		v.commit([]types.Student{})
		return fmt.Errorf("Load: %w", err)
	}
	v.commit(students)
	slog.Debug("roster loaded", slog.Int("count", len(students)))
	return nil
}

// SetQuery sets the search query and re-derives the display list.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
	v.display = Derive(v.full, v.query, v.mode)
}

// SetSortMode sets the ordering and re-derives the display list from the
// full roster.
func (v *View) SetSortMode(mode SortMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setSortMode(mode)
}

// ToggleLastNameSort flips between ascending and descending last name.
// From any other mode it starts at ascending.
func (v *View) ToggleLastNameSort() SortMode {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := SortLastNameAsc
	if v.mode == SortLastNameAsc {
		next = SortLastNameDesc
	}
	v.setSortMode(next)
	return next
}

// ToggleGPASort cycles gpa ascending, gpa descending, none.
func (v *View) ToggleGPASort() SortMode {
	v.mu.Lock()
	defer v.mu.Unlock()

	var next SortMode
	switch v.mode {
	case SortGPAAsc:
		next = SortGPADesc
	case SortGPADesc:
		next = SortNone
	default:
		next = SortGPAAsc
	}
	v.setSortMode(next)
	return next
}

// ResetSort clears the sort mode and shows the full roster, unfiltered.
// The query is kept, so the next SetQuery or sort change filters again.
func (v *View) ResetSort() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = SortNone
	v.display = slices.Clone(v.full)
}

// Add validates in, appends it to the stored roster and persists it.
func (v *View) Add(ctx context.Context, in types.StudentInput) (types.Student, error) {
	s, err := v.mutate(ctx, "add", func(current []types.Student) ([]types.Student, types.Student, error) {
		s, err := fromInput(in)
		if err != nil {
			return nil, types.Student{}, err
		}
		if indexOf(current, s.ID) >= 0 {
			return nil, types.Student{}, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		return append(current, s), s, nil
	})
	if err != nil {
		return types.Student{}, err
	}
	slog.Info("student added", slog.String("id", s.ID))
	return s, nil
}

// Update replaces the record with the given id, keeping its position.
// The id itself cannot change: in.ID is ignored in favour of id.
func (v *View) Update(ctx context.Context, id string, in types.StudentInput) (types.Student, error) {
	in.ID = id
	s, err := v.mutate(ctx, "update", func(current []types.Student) ([]types.Student, types.Student, error) {
		s, err := fromInput(in)
		if err != nil {
			return nil, types.Student{}, err
		}
		idx := indexOf(current, id)
		if idx < 0 {
			return nil, types.Student{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		current[idx] = s
		return current, s, nil
	})
	if err != nil {
		return types.Student{}, err
	}
	slog.Info("student updated", slog.String("id", id))
	return s, nil
}

// Remove deletes every record with the given id from the full roster and
// persists the result. Records hidden by the current search are kept.
// The caller is responsible for having asked the user for confirmation.
func (v *View) Remove(ctx context.Context, id string) error {
	_, err := v.mutate(ctx, "remove", func(current []types.Student) ([]types.Student, types.Student, error) {
		if indexOf(current, id) < 0 {
			return nil, types.Student{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		next := slices.DeleteFunc(current, func(s types.Student) bool {
			return s.ID == id
		})
		return next, types.Student{}, nil
	})
	if err != nil {
		return err
	}
	slog.Info("student removed", slog.String("id", id))
	return nil
}

// Get returns the first record in the snapshot with the given id.
func (v *View) Get(id string) (types.Student, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	idx := indexOf(v.full, id)
	if idx < 0 {
		return types.Student{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return v.full[idx], nil
}

// Full returns a copy of the last loaded roster.
func (v *View) Full() []types.Student {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.full)
}

// Display returns a copy of the current display list.
func (v *View) Display() []types.Student {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.display)
}

// Query returns the active search query.
func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// SortMode returns the active sort mode.
func (v *View) SortMode() SortMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// mutate runs a read-modify-write against storage. fn receives a fresh
// copy of the stored roster, never the list screen's snapshot, so changes
// made through other views since the last Load are kept.
func (v *View) mutate(ctx context.Context, op string, fn func([]types.Student) ([]types.Student, types.Student, error)) (types.Student, error) {
	wl := writeLock(v.store, v.key)
	wl.Lock()
	defer wl.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.read(ctx)
	if err != nil {
		v.recorder.Mutation(op, err)
		return types.Student{}, fmt.Errorf("%s: %w", op, err)
	}

	next, s, err := fn(current)
	if err != nil {
		v.recorder.Mutation(op, err)
		return types.Student{}, err
	}

	if err := v.write(ctx, next); err != nil {
		v.recorder.Mutation(op, err)
		return types.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	v.commit(next)
	v.recorder.Mutation(op, nil)
	return s, nil
}

func (v *View) setSortMode(mode SortMode) {
	v.mode = mode
	v.display = Derive(v.full, v.query, v.mode)
}

// commit replaces the snapshot and re-derives the display list.
// Callers hold v.mu.
func (v *View) commit(full []types.Student) {
	v.full = full
	v.display = Derive(v.full, v.query, v.mode)
}

func (v *View) read(ctx context.Context) ([]types.Student, error) {
	raw, ok, err := v.store.Get(ctx, v.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", v.key, err)
	}
	if !ok {
		return []types.Student{}, nil
	}

	var students []types.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		slog.Warn("stored roster is not valid JSON, treating as empty",
			slog.String("key", v.key),
			slog.String("error", err.Error()))
		return []types.Student{}, nil
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

func (v *View) write(ctx context.Context, students []types.Student) error {
	raw, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("write %q: marshal: %w", v.key, err)
	}
	if err := v.store.Set(ctx, v.key, string(raw)); err != nil {
		return fmt.Errorf("write %q: %w", v.key, err)
	}
	return nil
}

func fromInput(in types.StudentInput) (types.Student, error) {
	if err := validation.Struct(in); err != nil {
		return types.Student{}, err
	}
	return in.Student()
}

func indexOf(students []types.Student, id string) int {
	return slices.IndexFunc(students, func(s types.Student) bool {
		return s.ID == id
	})
}
