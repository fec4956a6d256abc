package fetch

import (
	"context"
	"sync"
)

// State is the screen-facing lifecycle of a fetched resource:
// loading, then exactly one of error, empty or populated. A refresh
// returns to loading.
type State int

const (
	StateLoading State = iota
	StateError
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// LoadFunc produces the resource value.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// EmptyFunc decides whether a successfully loaded value renders the empty
// state instead of populated.
type EmptyFunc[T any] func(T) bool

// Resource owns the fetch-and-render state machine for one screen's data.
// Resources are independent of each other; a slow load in one never blocks
// another.
type Resource[T any] struct {
	mu      sync.Mutex
	state   State
	data    T
	err     error
	gen     int
	load    LoadFunc[T]
	isEmpty EmptyFunc[T]
	cancel  context.CancelFunc
	closed  bool
}

// NewResource builds a resource around a loader. isEmpty may be nil, in
// which case a successful load is always populated.
func NewResource[T any](load LoadFunc[T], isEmpty EmptyFunc[T]) *Resource[T] {
	return &Resource[T]{
		state:   StateLoading,
		load:    load,
		isEmpty: isEmpty,
	}
}

// SliceEmpty is an EmptyFunc for slice-valued resources.
func SliceEmpty[E any](items []E) bool {
	return len(items) == 0
}

// Load runs the loader and settles the state machine. A Load that races a
// newer Load or a Close is discarded, so an unmounted screen can never be
// written to.
func (r *Resource[T]) Load(ctx context.Context) State {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return r.state
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.gen++
	gen := r.gen
	r.state = StateLoading
	r.err = nil
	r.mu.Unlock()

	data, err := r.load(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.gen || ctx.Err() != nil {
		// Superseded or unmounted; drop the result.
		return r.state
	}

	switch {
	case err != nil:
		r.err = err
		r.state = StateError
	case r.isEmpty != nil && r.isEmpty(data):
		r.data = data
		r.state = StateEmpty
	default:
		r.data = data
		r.state = StatePopulated
	}
	return r.state
}

// Refresh is a user-triggered reload: back to loading, then settle again.
func (r *Resource[T]) Refresh(ctx context.Context) State {
	return r.Load(ctx)
}

// Snapshot returns the current state, value and error. The value is only
// meaningful in the empty and populated states.
func (r *Resource[T]) Snapshot() (State, T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.data, r.err
}

// State returns just the current state.
func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Close is the unmount guard: it cancels any in-flight load and freezes
// the resource. Further Loads are no-ops.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
