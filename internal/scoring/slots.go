package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// SlotRunner serializes scoring per upload slot (provider + document kind).
// Uploading a new document to a slot cancels the in-flight task for that
// slot, and only the most recently started task ever commits its result.
// Results from superseded or cancelled tasks are discarded, never committed.
type SlotRunner struct {
	service *Service

	mu    sync.Mutex
	slots map[string]*slotState
	wg    sync.WaitGroup
}

type slotState struct {
	generation uint64
	cancel     context.CancelFunc
}

func NewSlotRunner(service *Service) *SlotRunner {
	return &SlotRunner{
		service: service,
		slots:   make(map[string]*slotState),
	}
}

func slotKey(providerID uuid.UUID, kind domain.DocumentKind) string {
	return fmt.Sprintf("%s/%s", providerID, kind)
}

// Start launches scoring for a document in the background. commit is invoked
// with the result only if no newer task for the same slot has started and the
// slot has not been cancelled in the meantime. The returned channel closes
// when the task finishes, whether or not its result was committed.
func (r *SlotRunner) Start(ctx context.Context, providerID uuid.UUID, kind domain.DocumentKind, document []byte, expected domain.IdentityExpectation, report ProgressFunc, commit func(*domain.OCRResult)) <-chan struct{} {
	key := slotKey(providerID, kind)
	taskCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	state, ok := r.slots[key]
	if ok && state.cancel != nil {
		state.cancel()
	}
	if !ok {
		state = &slotState{}
		r.slots[key] = state
	}
	state.generation++
	state.cancel = cancel
	generation := state.generation
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)
		defer cancel()

		result := r.service.ScoreDocument(taskCtx, kind, document, expected, report)

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.slots[key].generation != generation {
			return
		}
		if commit != nil {
			commit(result)
		}
	}()

	return done
}

// Score runs one document through the slot and blocks for the outcome. ok is
// false when a newer upload for the same slot started while this one was in
// flight; the discarded result is never returned.
func (r *SlotRunner) Score(ctx context.Context, providerID uuid.UUID, kind domain.DocumentKind, document []byte, expected domain.IdentityExpectation, report ProgressFunc) (result *domain.OCRResult, ok bool) {
	committed := make(chan *domain.OCRResult, 1)

	done := r.Start(ctx, providerID, kind, document, expected, report, func(res *domain.OCRResult) {
		committed <- res
	})
	<-done

	select {
	case res := <-committed:
		return res, true
	default:
		return nil, false
	}
}

// ScoreDocuments scores every submitted document concurrently, each through
// its own slot. Documents in a request are independent; their results are
// combined only at submission time, never during scoring. Results discarded
// because a newer upload superseded the slot are omitted from the map.
func (r *SlotRunner) ScoreDocuments(ctx context.Context, providerID uuid.UUID, documents map[domain.DocumentKind][]byte, expected domain.IdentityExpectation, report ProgressFunc) map[domain.DocumentKind]*domain.OCRResult {
	results := make(map[domain.DocumentKind]*domain.OCRResult, len(documents))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for kind, document := range documents {
		g.Go(func() error {
			if result, ok := r.Score(gctx, providerID, kind, document, expected, report); ok {
				mu.Lock()
				results[kind] = result
				mu.Unlock()
			}
			return nil
		})
	}

	// Score never returns an error; Wait only joins the goroutines.
	_ = g.Wait()

	return results
}

// Cancel aborts any in-flight task for the slot and invalidates its commit.
func (r *SlotRunner) Cancel(providerID uuid.UUID, kind domain.DocumentKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.slots[slotKey(providerID, kind)]
	if !ok {
		return
	}
	if state.cancel != nil {
		state.cancel()
		state.cancel = nil
	}
	state.generation++
}

// Wait blocks until every launched task has finished. Intended for shutdown.
func (r *SlotRunner) Wait() {
	r.wg.Wait()
}
