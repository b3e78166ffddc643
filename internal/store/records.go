package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/aidant/internal/storage"
)

// ErrNotFound is returned by mutations and lookups on an unknown id.
var ErrNotFound = errors.New("élément introuvable")

// idGenerator hands out timestamp-derived ids that never repeat, even within one millisecond.
type idGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func (g *idGenerator) next(floor int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	if id <= floor {
		id = floor + 1
	}
	g.last = id
	return id
}

// records is a mutex-guarded slice of T mirrored to one backend key.
// Memory only changes after the backend accepted the new collection.
type records[T any] struct {
	guard
	mu    sync.RWMutex
	items []T
	coll  *storage.Collection[[]T]
	ids   *idGenerator
	id    func(*T) *int64
	clone func(T) T
	label string
}

func newRecords[T any](backend storage.Backend, key, label string, ids *idGenerator, template T, id func(*T) *int64, clone func(T) T) *records[T] {
	r := &records[T]{
		coll:  storage.NewCollection[[]T](backend, key),
		ids:   ids,
		id:    id,
		clone: clone,
		label: label,
	}
	r.items = r.load(template)
	return r
}

// load reads the collection. Unreadable elements are skipped; any problem
// marks the collection damaged so it is not overwritten.
func (r *records[T]) load(template T) []T {
	raw, found, err := r.coll.LoadRaw()
	if err != nil {
		r.mark(r.coll.Key(), err)
		return []T{}
	}
	if !found {
		return []T{}
	}
	items, err := storage.DecodeRecords(raw, template)
	if err != nil {
		r.mark(r.coll.Key(), err)
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (r *records[T]) notFound(id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, r.label, id)
}

func (r *records[T]) maxID() int64 {
	var m int64
	for i := range r.items {
		if v := *r.id(&r.items[i]); v > m {
			m = v
		}
	}
	return m
}

// commit persists next and swaps it in. Caller holds mu.
func (r *records[T]) commit(next []T) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.write(next)
}

func (r *records[T]) write(next []T) error {
	if err := r.coll.Save(next); err != nil {
		return err
	}
	r.items = next
	return nil
}

func (r *records[T]) snapshot(keep func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.items))
	for _, it := range r.items {
		if keep == nil || keep(it) {
			out = append(out, r.clone(it))
		}
	}
	return out
}

func (r *records[T]) get(id int64) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if *r.id(&r.items[i]) == id {
			return r.clone(r.items[i]), true
		}
	}
	var zero T
	return zero, false
}

// add assigns an id, lets prepare fill timestamps, then appends and persists.
func (r *records[T]) add(item T, prepare func(*T)) (T, error) {
	return r.addMany([]T{item}, prepare)
}

func (r *records[T]) addMany(batch []T, prepare func(*T)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]T, len(r.items), len(r.items)+len(batch))
	copy(next, r.items)
	floor := r.maxID()
	var last T
	for _, item := range batch {
		item = r.clone(item)
		id := r.ids.next(floor)
		floor = id
		*r.id(&item) = id
		if prepare != nil {
			prepare(&item)
		}
		next = append(next, item)
		last = item
	}
	if err := r.commit(next); err != nil {
		var zero T
		return zero, err
	}
	return r.clone(last), nil
}

// update applies patch to a copy of the record. The id cannot be changed.
func (r *records[T]) update(id int64, patch func(*T)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if *r.id(&r.items[i]) != id {
			continue
		}
		updated := r.clone(r.items[i])
		patch(&updated)
		*r.id(&updated) = id

		next := make([]T, len(r.items))
		copy(next, r.items)
		next[i] = updated
		if err := r.commit(next); err != nil {
			var zero T
			return zero, err
		}
		return r.clone(updated), nil
	}
	var zero T
	return zero, r.notFound(id)
}

func (r *records[T]) remove(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]T, 0, len(r.items))
	found := false
	for i := range r.items {
		if *r.id(&r.items[i]) == id {
			found = true
			continue
		}
		next = append(next, r.items[i])
	}
	if !found {
		return r.notFound(id)
	}
	return r.commit(next)
}

// reset replaces the whole collection, damaged or not.
func (r *records[T]) reset(items []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]T, 0, len(items))
	for _, it := range items {
		next = append(next, r.clone(it))
	}
	if err := r.write(next); err != nil {
		return err
	}
	r.clear()
	return nil
}

// repair saves the records that loaded and re-enables writes.
func (r *records[T]) repair() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]T, len(r.items))
	copy(next, r.items)
	if err := r.write(next); err != nil {
		return err
	}
	r.clear()
	return nil
}

func (r *records[T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
