// Package graph implements the runtime node graph: typed ports, connections
// between them, the node contract, and the synchronous evaluation protocol.
//
// The Graph is an arena. It owns every node, port, connection and property,
// and every cross reference is an id looked up through it. Evaluation is
// pull based with push invalidation: when an input changes, the owning node
// updates its cached state (only if the value actually differs), recomputes,
// and notifies the nodes connected to its outputs, depth first and inline.
package graph
