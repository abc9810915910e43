package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// evaluation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// Validation codes.
const (
	CodeCycle              = "cycle"
	CodeDanglingConnection = "dangling-connection"
	CodeDirection          = "direction"
	CodeTypeMismatch       = "type-mismatch"
	CodeMultipleOutputs    = "multiple-outputs"
	CodeMissingProperty    = "missing-property"
)

// ValidationError describes a single validation finding.
type ValidationError struct {
	Code     string
	Message  string
	NodeID   NodeID // empty for graph-level findings
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate checks the structure of g and returns every finding. An empty
// result means the graph is valid. It never mutates the graph.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateConnections(g)...)
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateOutputs(g)...)
	errs = append(errs, validateProperties(g)...)
	return errs
}

// validateConnections checks that every connection joins two known ports
// of opposite direction and compatible type.
func validateConnections(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, c := range g.conns {
		out, in := g.ports[c.Output], g.ports[c.Input]
		if out == nil || in == nil {
			errs = append(errs, ValidationError{
				Code:     CodeDanglingConnection,
				Message:  fmt.Sprintf("connection %s -> %s references a missing port", c.Output, c.Input),
				NodeID:   c.InputNode,
				Severity: SeverityError,
			})
			continue
		}
		if out.Direction != Output || in.Direction != Input {
			errs = append(errs, ValidationError{
				Code:     CodeDirection,
				Message:  fmt.Sprintf("connection %s -> %s does not run from an output to an input", out.Name, in.Name),
				NodeID:   in.Node,
				Severity: SeverityError,
			})
			continue
		}
		if !out.IsCompatibleWith(in) {
			errs = append(errs, ValidationError{
				Code:     CodeTypeMismatch,
				Message:  fmt.Sprintf("%s (%s) cannot feed %s (%s)", out.Name, out.Type, in.Name, in.Type),
				NodeID:   in.Node,
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateDAG(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				Code:     CodeCycle,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				NodeID:   id,
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		for _, next := range g.downstream(id) {
			if visit(next) {
				return true
			}
		}
		color[id] = black
		return false
	}

	// Insertion order keeps the reported node deterministic.
	for _, n := range g.nodes {
		if id := n.NodeBase().ID(); color[id] == white {
			if visit(id) {
				break
			}
		}
	}
	return errs
}

func validateOutputs(g *Graph) []ValidationError {
	var errs []ValidationError
	seen := false
	for _, n := range g.nodes {
		if _, ok := n.(OutputEvaluator); !ok {
			continue
		}
		if seen {
			errs = append(errs, ValidationError{
				Code:     CodeMultipleOutputs,
				Message:  "graph has more than one output node; only the first is evaluated",
				NodeID:   n.NodeBase().ID(),
				Severity: SeverityWarning,
			})
		}
		seen = true
	}
	return errs
}

func validateProperties(g *Graph) []ValidationError {
	var errs []ValidationError
	for _, n := range g.nodes {
		c, ok := n.(PropertyConsumer)
		if !ok || c.PropertyID() == "" || g.Property(c.PropertyID()) != nil {
			continue
		}
		errs = append(errs, ValidationError{
			Code:     CodeMissingProperty,
			Message:  fmt.Sprintf("property %s does not exist", c.PropertyID()),
			NodeID:   n.NodeBase().ID(),
			Severity: SeverityWarning,
		})
	}
	return errs
}
