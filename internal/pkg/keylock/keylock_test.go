package keylock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AcquireAndRelease(t *testing.T) {
	m := keylock.NewManager(time.Second)
	ctx := context.Background()

	release, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)
	release()

	// Lock is free again after release.
	release, err = m.Acquire(ctx, "order:1")
	require.NoError(t, err)
	release()
}

func TestManager_IndependentKeys(t *testing.T) {
	m := keylock.NewManager(time.Second)
	ctx := context.Background()

	releaseOrder, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)
	defer releaseOrder()

	// A different key is not blocked by the held lock.
	releasePartner, err := m.Acquire(ctx, "partner:1")
	require.NoError(t, err)
	releasePartner()
}

func TestManager_ContentionTimesOut(t *testing.T) {
	m := keylock.NewManager(50 * time.Millisecond)
	ctx := context.Background()

	release, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)
	defer release()

	_, err = m.Acquire(ctx, "order:1")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrContention)

	var contention *errs.ContentionError
	require.ErrorAs(t, err, &contention)
	assert.Equal(t, "order:1", contention.Key)
}

func TestManager_WaiterProceedsAfterRelease(t *testing.T) {
	m := keylock.NewManager(time.Second)
	ctx := context.Background()

	release, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		releaseWaiter, waitErr := m.Acquire(ctx, "order:1")
		assert.NoError(t, waitErr)
		if waitErr == nil {
			releaseWaiter()
		}
		close(acquired)
	}()

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released lock")
	}
}

func TestManager_SerializesCriticalSection(t *testing.T) {
	m := keylock.NewManager(5 * time.Second)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		counter int
	)

	const goroutines = 20
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := m.Acquire(ctx, "order:1")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, goroutines, counter)
}

func TestManager_ReleaseIsIdempotent(t *testing.T) {
	m := keylock.NewManager(time.Second)
	ctx := context.Background()

	release, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)

	release()
	release() // second call must be a no-op

	releaseAgain, err := m.Acquire(ctx, "order:1")
	require.NoError(t, err)
	releaseAgain()
}
