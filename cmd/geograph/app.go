package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/config"
	"github.com/chazu/geograph/pkg/engine"
	"github.com/chazu/geograph/pkg/geometry"
	"github.com/chazu/geograph/pkg/graph"
	"github.com/chazu/geograph/pkg/kernel"
	"github.com/chazu/geograph/pkg/nodes"
	"github.com/chazu/geograph/pkg/rng"
	"github.com/chazu/geograph/pkg/tessellate"
)

// DSLExt is the file extension of geograph DSL programs.
const DSLExt = ".lisp"

// colorPalette assigns distinct colors to meshes in result order.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App ties configuration, the node registry and the DSL engine together.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *graph.Registry
}

// MeshData is the JSON-serializable mesh format of an evaluation result.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating one program.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp returns an App using the default node registry. A nil cfg uses
// the built-in defaults and a nil log discards output.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &App{cfg: cfg, log: log, registry: nodes.Registry()}
}

// Registry returns the node registry graphs are built from.
func (a *App) Registry() *graph.Registry { return a.registry }

// newEngine returns a fresh engine. Engines discard superseded results, so
// concurrent loads each get their own.
func (a *App) newEngine() *engine.Engine {
	return engine.New(
		engine.WithRegistry(a.registry),
		engine.WithLogger(a.log),
		engine.WithTimeout(a.cfg.Engine.EvalTimeout.Std()),
		engine.WithSeed(a.cfg.Random.Seed),
	)
}

// LoadFile builds a graph from a DSL program or a graph document, chosen by
// the file extension. DSL errors are returned as eval errors.
func (a *App) LoadFile(path string) (*graph.Graph, []engine.EvalError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.EqualFold(filepath.Ext(path), DSLExt) {
		g, evalErrs, err := a.newEngine().Evaluate(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, evalErrs, nil
	}

	f, err := graph.FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := graph.DecodeDocument(data, f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := graph.Load(doc, a.registry, graph.LoadOptions{
		Validate: a.cfg.Graph.ValidateOnLoad,
		Log:      a.log,
		Rand:     rng.New(a.cfg.Random.Seed),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil, nil
}

// Realize evaluates g and merges its geometry with its realized instances.
func Realize(g *graph.Graph) (*geometry.Data, error) {
	out, err := g.Evaluate()
	if err != nil {
		return nil, err
	}
	return tessellate.RealizeAll([]*geometry.Data{out.Geometry}, out.Instances), nil
}

// Evaluate runs DSL source and returns render meshes. Geometry and realized
// instances are reported as separate meshes; graph validation warnings are
// passed through.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	g, evalErrs, err := a.newEngine().Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	for _, v := range graph.Validate(g) {
		d := EvalErrorData{Message: v.Error()}
		if v.Severity == graph.SeverityError {
			result.Errors = append(result.Errors, d)
		} else {
			result.Warnings = append(result.Warnings, d)
		}
	}
	if len(result.Errors) > 0 {
		return result
	}
	if _, ok := g.OutputNode(); !ok {
		return result
	}

	out, err := g.Evaluate()
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	parts := []struct {
		name string
		data *geometry.Data
	}{
		{"geometry", out.Geometry},
		{"instances", tessellate.RealizeAll(nil, out.Instances)},
	}
	for _, p := range parts {
		m := kernel.FromGeometry(p.data)
		if m.IsEmpty() {
			continue
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     p.name,
			Color:    colorPalette[len(result.Meshes)%len(colorPalette)],
		})
	}
	return result
}

// joinEvalErrors flattens eval errors into one error.
func joinEvalErrors(path string, errs []engine.EvalError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s: %s", path, strings.Join(msgs, "; "))
}
