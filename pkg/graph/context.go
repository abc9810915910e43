package graph

import (
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/rng"
)

// EvaluationContext is passed through every evaluation call. It carries the
// graph arena, the logger, the seeded random stack, and whether a save or
// load is in progress.
type EvaluationContext struct {
	Graph *Graph
	Log   *zap.Logger
	Rand  *rng.Rand

	serializing int
	preview     bool
}

func newContext(g *Graph, log *zap.Logger, r *rng.Rand) *EvaluationContext {
	if log == nil {
		log = zap.NewNop()
	}
	if r == nil {
		r = rng.New(0)
	}
	return &EvaluationContext{Graph: g, Log: log, Rand: r}
}

// IsSerializing reports whether a save or load is in progress. Nodes that
// cannot evaluate safely at that time substitute a default.
func (ec *EvaluationContext) IsSerializing() bool {
	return ec != nil && ec.serializing > 0
}

// IsPreview reports whether the graph was loaded for preview only.
func (ec *EvaluationContext) IsPreview() bool {
	return ec != nil && ec.preview
}

// Serializing marks a save or load as in progress until the returned
// function is called. Calls nest.
func (ec *EvaluationContext) Serializing() func() {
	ec.serializing++
	done := false
	return func() {
		if !done {
			done = true
			ec.serializing--
		}
	}
}
