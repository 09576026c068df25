package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestWorker(repo *MockAPIKeyRepo) *LastUsedWorker {
	return NewLastUsedWorker(repo, testLogger(), LastUsedWorkerConfig{
		BufferSize:       10,
		DebounceInterval: time.Minute,
		BatchInterval:    10 * time.Millisecond,
		MaxBatchSize:     5,
	})
}

func TestLastUsedWorker_ProcessesEnqueuedKeys(t *testing.T) {
	keyID := uuid.New()

	var mu sync.Mutex
	updated := make(map[uuid.UUID]int)

	repo := &MockAPIKeyRepo{}
	repo.On("UpdateLastUsed", mock.Anything, keyID).
		Run(func(args mock.Arguments) {
			mu.Lock()
			updated[keyID]++
			mu.Unlock()
		}).
		Return(nil)

	worker := newTestWorker(repo)
	worker.Start()

	worker.Enqueue(keyID)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return updated[keyID] == 1
	}, time.Second, 10*time.Millisecond)

	worker.Stop()
}

func TestLastUsedWorker_DebouncesRepeatedKeys(t *testing.T) {
	keyID := uuid.New()

	repo := &MockAPIKeyRepo{}
	repo.On("UpdateLastUsed", mock.Anything, keyID).Return(nil)

	worker := newTestWorker(repo)
	worker.Start()

	worker.Enqueue(keyID)

	// Wait until the first batch lands and populates the debounce map.
	assert.Eventually(t, func() bool {
		worker.mu.RLock()
		defer worker.mu.RUnlock()
		_, ok := worker.recentlyUpdated[keyID]
		return ok
	}, time.Second, 10*time.Millisecond)

	// Subsequent enqueues inside the debounce window are dropped.
	worker.Enqueue(keyID)
	worker.Enqueue(keyID)
	time.Sleep(50 * time.Millisecond)

	worker.Stop()

	repo.AssertNumberOfCalls(t, "UpdateLastUsed", 1)
}

func TestLastUsedWorker_DeduplicatesBatch(t *testing.T) {
	keyID := uuid.New()

	repo := &MockAPIKeyRepo{}
	repo.On("UpdateLastUsed", mock.Anything, keyID).Return(nil)

	// Long batch interval + MaxBatchSize 3 forces all enqueues into one
	// batch, processed as soon as the third arrives.
	worker := NewLastUsedWorker(repo, testLogger(), LastUsedWorkerConfig{
		BufferSize:       10,
		DebounceInterval: time.Minute,
		BatchInterval:    time.Hour,
		MaxBatchSize:     3,
	})
	worker.Start()

	worker.Enqueue(keyID)
	worker.Enqueue(keyID)
	worker.Enqueue(keyID)

	assert.Eventually(t, func() bool {
		worker.mu.RLock()
		defer worker.mu.RUnlock()
		_, ok := worker.recentlyUpdated[keyID]
		return ok
	}, time.Second, 10*time.Millisecond)

	worker.Stop()

	repo.AssertNumberOfCalls(t, "UpdateLastUsed", 1)
}

func TestLastUsedWorker_DropsWhenBufferFull(t *testing.T) {
	repo := &MockAPIKeyRepo{}
	repo.On("UpdateLastUsed", mock.Anything, mock.Anything).Return(nil).Maybe()

	worker := NewLastUsedWorker(repo, testLogger(), LastUsedWorkerConfig{
		BufferSize:       1,
		DebounceInterval: time.Minute,
		BatchInterval:    time.Hour,
		MaxBatchSize:     100,
	})
	// Worker not started: the channel fills and further enqueues must not
	// block.

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			worker.Enqueue(uuid.New())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked with a full buffer")
	}
}
