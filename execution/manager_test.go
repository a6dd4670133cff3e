package execution

import (
	"context"
	"sync"
	"testing"
)

func TestTryStart_RejectsConcurrentRunForSameAccount(t *testing.T) {
	m := NewManager()

	_, release, ok := m.TryStart(context.Background(), "acc")
	if !ok {
		t.Fatal("Expected first run to start")
	}

	if _, _, ok := m.TryStart(context.Background(), "acc"); ok {
		t.Error("Expected second run for same account to be rejected")
	}

	if _, releaseOther, ok := m.TryStart(context.Background(), "other"); !ok {
		t.Error("Expected a different account to start")
	} else {
		releaseOther()
	}

	release()

	if m.Active("acc") {
		t.Error("Expected account to be inactive after release")
	}
	if _, release, ok := m.TryStart(context.Background(), "acc"); !ok {
		t.Error("Expected run to start after release")
	} else {
		release()
	}
}

func TestRelease_CancelsContext(t *testing.T) {
	m := NewManager()

	ctx, release, _ := m.TryStart(context.Background(), "acc")
	release()

	select {
	case <-ctx.Done():
	default:
		t.Error("Expected context to be cancelled after release")
	}
}

func TestCancelAll(t *testing.T) {
	m := NewManager()

	ctx, release, _ := m.TryStart(context.Background(), "acc")
	defer release()

	m.CancelAll()

	if ctx.Err() == nil {
		t.Error("Expected context to be cancelled")
	}
}

func TestTryStart_OnlyOneWinnerUnderContention(t *testing.T) {
	m := NewManager()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, ok := m.TryStart(context.Background(), "acc"); ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("Expected exactly 1 winner, got %d", winners)
	}
}
