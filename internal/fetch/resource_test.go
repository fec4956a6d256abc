package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestResourceStates(t *testing.T) {
	ctx := context.Background()

	t.Run("Populated", func(t *testing.T) {
		r := NewResource(func(ctx context.Context) ([]string, error) {
			return []string{"pasta"}, nil
		}, SliceEmpty[string])

		if got := r.Load(ctx); got != StatePopulated {
			t.Errorf("Expected populated, got %s", got)
		}
		state, data, err := r.Snapshot()
		if state != StatePopulated || err != nil || len(data) != 1 {
			t.Errorf("Unexpected snapshot: %s, %v, %v", state, data, err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		r := NewResource(func(ctx context.Context) ([]string, error) {
			return nil, nil
		}, SliceEmpty[string])

		if got := r.Load(ctx); got != StateEmpty {
			t.Errorf("Expected empty, got %s", got)
		}
	})

	t.Run("Error", func(t *testing.T) {
		boom := errors.New("backend down")
		r := NewResource(func(ctx context.Context) ([]string, error) {
			return nil, boom
		}, SliceEmpty[string])

		if got := r.Load(ctx); got != StateError {
			t.Errorf("Expected error state, got %s", got)
		}
		_, _, err := r.Snapshot()
		if !errors.Is(err, boom) {
			t.Errorf("Expected the loader error, got %v", err)
		}
	})

	t.Run("NilEmptyFuncAlwaysPopulated", func(t *testing.T) {
		r := NewResource(func(ctx context.Context) ([]string, error) {
			return nil, nil
		}, nil)

		if got := r.Load(ctx); got != StatePopulated {
			t.Errorf("Expected populated without empty check, got %s", got)
		}
	})
}

func TestResourceRefresh(t *testing.T) {
	ctx := context.Background()
	calls := 0
	r := NewResource(func(ctx context.Context) ([]int, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("flaky")
		}
		return []int{1, 2}, nil
	}, SliceEmpty[int])

	if got := r.Load(ctx); got != StateError {
		t.Fatalf("Expected first load to fail, got %s", got)
	}
	if got := r.Refresh(ctx); got != StatePopulated {
		t.Fatalf("Expected refresh to recover, got %s", got)
	}
	if calls != 2 {
		t.Errorf("Expected loader called twice, got %d", calls)
	}
}

func TestResourceCloseDiscardsInflight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := NewResource(func(ctx context.Context) ([]string, error) {
		close(started)
		<-release
		return []string{"late"}, nil
	}, SliceEmpty[string])

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Load(context.Background())
	}()

	<-started
	r.Close() // unmount while the request is in flight
	close(release)
	wg.Wait()

	state, data, _ := r.Snapshot()
	if state != StateLoading {
		t.Errorf("Expected closed resource to stay in its pre-settle state, got %s", state)
	}
	if len(data) != 0 {
		t.Errorf("Expected no data written after close, got %v", data)
	}

	// Loads after close are no-ops.
	if got := r.Load(context.Background()); got != StateLoading {
		t.Errorf("Expected load after close to be a no-op, got %s", got)
	}
}

func TestResourceNewerLoadWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	call := 0
	var mu sync.Mutex

	r := NewResource(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		call++
		mine := call
		mu.Unlock()
		if mine == 1 {
			close(firstStarted)
			<-releaseFirst
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	}, SliceEmpty[string])

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Load(context.Background())
	}()

	<-firstStarted
	if got := r.Refresh(context.Background()); got != StatePopulated {
		t.Fatalf("Expected refresh to populate, got %s", got)
	}
	close(releaseFirst)
	wg.Wait()

	_, data, _ := r.Snapshot()
	if len(data) != 1 || data[0] != "fresh" {
		t.Errorf("Expected the newer load to win, got %v", data)
	}
}
