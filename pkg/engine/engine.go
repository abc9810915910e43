// Package engine evaluates the geograph Lisp DSL. It runs user source in a
// sandboxed zygomys interpreter whose builtins add nodes, connections and
// properties to a fresh graph.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/nodes"
	"github.com/chazu/geograph/pkg/rng"
)

// EvalError is a non-fatal error in user code, such as a parse error or a
// failing builtin.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates DSL programs. It is safe for concurrent use; each call
// to Evaluate runs in its own sandbox and builds its own graph.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	registry *graph.Registry
	log      *zap.Logger
	timeout  time.Duration
	seed     int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the node registry builtins build nodes from.
func WithRegistry(r *graph.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets the logger handed to every graph the engine builds.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithTimeout bounds a single evaluation. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithSeed sets the base seed of the random stack of built graphs.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// New returns an Engine using the default node registry.
func New(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultEvalTimeout, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = nodes.Registry()
	}
	return e
}

// Evaluate runs source and returns the graph it built.
//
//   - On success: graph, nil, nil.
//   - On a parse or runtime error in source: nil, eval errors, nil.
//   - On timeout, panic or a superseded request: nil, nil, error.
func (e *Engine) Evaluate(source string) (*graph.Graph, []EvalError, error) {
	ticket := e.begin()
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()
		g, evalErrs, err := e.evaluate(source)
		done <- outcome{graph: g, errors: evalErrs, err: err}
	}()

	return e.await(done, ticket)
}

func (e *Engine) evaluate(source string) (*graph.Graph, []EvalError, error) {
	g := graph.New(graph.WithLogger(e.log), graph.WithRand(rng.New(e.seed)))
	if strings.TrimSpace(source) == "" {
		return g, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, newBuilder(g, e.registry))

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	e.log.Debug("evaluated program",
		zap.Int("nodes", len(g.Nodes())),
		zap.Int("connections", len(g.Connections())),
		zap.Int("properties", len(g.Properties())))
	return g, nil, nil
}

var (
	// zygomys reports "Error on line N: ..." for parse errors.
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*`)
)

// parseZygomysError converts an interpreter error into EvalErrors, keeping
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if loc := re.FindStringSubmatchIndex(msg); loc != nil {
			line, _ := strconv.Atoi(msg[loc[2]:loc[3]])
			rest := msg[:loc[0]] + msg[loc[1]:]
			return []EvalError{{Line: line, Message: strings.TrimSpace(rest)}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
