package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/geograph/pkg/graph"
)

// DefaultEvalTimeout is the limit for a single evaluation unless configured.
const DefaultEvalTimeout = 5 * time.Second

var (
	// ErrSuperseded is returned when a newer evaluation started before this
	// one finished.
	ErrSuperseded = errors.New("engine: evaluation superseded by newer request")
	// ErrTimeout is returned when the interpreter does not finish within the
	// engine's timeout.
	ErrTimeout = errors.New("engine: evaluation timed out")
)

// outcome is what an interpreter goroutine hands back to Evaluate.
type outcome struct {
	graph  *graph.Graph
	errors []EvalError
	err    error
}

// begin claims the next evaluation ticket. Only the holder of the latest
// ticket may deliver a graph.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) latest(ticket uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ticket == e.generation
}

// await blocks until done delivers or the engine timeout elapses. A timed
// out interpreter keeps running in the background and its outcome is
// dropped with the channel.
func (e *Engine) await(done <-chan outcome, ticket uint64) (*graph.Graph, []EvalError, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	select {
	case out := <-done:
		if !e.latest(ticket) {
			return nil, nil, ErrSuperseded
		}
		return out.graph, out.errors, out.err
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}
