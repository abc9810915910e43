package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/chazu/geograph/pkg/rng"
)

// Document is the flat persisted form of a graph.
type Document struct {
	Guid        string                 `json:"guid" msgpack:"guid"`
	Nodes       []SerializedNode       `json:"nodes" msgpack:"nodes"`
	Connections []SerializedConnection `json:"connections" msgpack:"connections"`
	Properties  []SerializedProperty   `json:"properties" msgpack:"properties"`
}

// SerializedNode records one node. Ports lists the port guids in creation
// order.
type SerializedNode struct {
	Guid       string   `json:"guid" msgpack:"guid"`
	Type       string   `json:"type" msgpack:"type"`
	CustomData string   `json:"customData" msgpack:"customData"`
	Ports      []string `json:"ports" msgpack:"ports"`
}

// SerializedConnection records a connection by port guids.
type SerializedConnection struct {
	Output string `json:"output" msgpack:"output"`
	Input  string `json:"input" msgpack:"input"`
}

// SerializedProperty records a property definition. Bound values are not
// persisted.
type SerializedProperty struct {
	Guid          string               `json:"guid" msgpack:"guid"`
	ReferenceName string               `json:"referenceName" msgpack:"referenceName"`
	DisplayName   string               `json:"displayName" msgpack:"displayName"`
	Type          string               `json:"type" msgpack:"type"`
	Default       DefaultPropertyValue `json:"default" msgpack:"default"`
}

// Serialize flattens the graph. Nodes are asked for their custom data while
// the context reports IsSerializing.
func (g *Graph) Serialize() (*Document, error) {
	done := g.ec.Serializing()
	defer done()

	doc := &Document{
		Guid:        g.ID,
		Nodes:       make([]SerializedNode, 0, len(g.nodes)),
		Connections: make([]SerializedConnection, 0, len(g.conns)),
		Properties:  make([]SerializedProperty, 0, len(g.properties)),
	}
	for _, n := range g.nodes {
		b := n.NodeBase()
		data, err := n.CustomData()
		if err != nil {
			return nil, fmt.Errorf("graph: serialize node %s (%s): %w", b.ID().Short(), b.TypeName(), err)
		}
		sn := SerializedNode{Guid: string(b.ID()), Type: b.TypeName(), CustomData: data}
		for _, p := range b.Ports() {
			sn.Ports = append(sn.Ports, string(p.ID))
		}
		doc.Nodes = append(doc.Nodes, sn)
	}
	for _, c := range g.conns {
		doc.Connections = append(doc.Connections, SerializedConnection{Output: string(c.Output), Input: string(c.Input)})
	}
	for _, p := range g.properties {
		doc.Properties = append(doc.Properties, SerializedProperty{
			Guid:          string(p.ID),
			ReferenceName: p.ReferenceName,
			DisplayName:   p.DisplayName,
			Type:          p.Type.String(),
			Default:       p.Default,
		})
	}
	return doc, nil
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Preview loads without activating the graph: post-deserialize hooks
	// are skipped.
	Preview bool
	// Validate runs Validate once connections are linked and fails on any
	// error finding. Cycles are rejected either way.
	Validate bool
	Log      *zap.Logger
	Rand     *rng.Rand
}

// Load rebuilds a graph from doc. The order is fixed: nodes are built by
// type name, their ports rebound to the persisted guids, properties added,
// connections relinked without notification, custom data applied in node
// order, and finally post-deserialize hooks run.
//
// An unknown node type, a port list that does not match the node's schema,
// malformed custom data and a cyclic graph are fatal.
func Load(doc *Document, reg *Registry, opts LoadOptions) (*Graph, error) {
	g := New(WithID(doc.Guid), WithLogger(opts.Log), WithRand(opts.Rand))
	ec := g.ec
	ec.preview = opts.Preview
	done := ec.Serializing()
	defer done()

	for _, sn := range doc.Nodes {
		n, err := reg.New(sn.Type, NodeID(sn.Guid))
		if err != nil {
			return nil, fmt.Errorf("graph: load node %s: %w", sn.Guid, err)
		}
		if err := n.NodeBase().rebindPorts(sn.Ports); err != nil {
			return nil, fmt.Errorf("graph: load: %w", err)
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("graph: load: %w", err)
		}
	}

	for _, sp := range doc.Properties {
		t, err := ParsePropertyType(sp.Type)
		if err != nil {
			return nil, fmt.Errorf("graph: load property %s: %w", sp.Guid, err)
		}
		p := &Property{
			ID:            PropertyID(sp.Guid),
			ReferenceName: sp.ReferenceName,
			DisplayName:   sp.DisplayName,
			Type:          t,
			Default:       sp.Default,
		}
		if err := g.AddProperty(p); err != nil {
			return nil, fmt.Errorf("graph: load: %w", err)
		}
	}

	for _, sc := range doc.Connections {
		out, in := g.ports[PortID(sc.Output)], g.ports[PortID(sc.Input)]
		if out == nil || in == nil {
			ec.Log.Warn("dropping connection to unknown port",
				zap.String("output", sc.Output), zap.String("input", sc.Input))
			continue
		}
		g.link(out, in)
	}

	// Activation below pushes values along connections, so cycles must be
	// rejected first.
	if err := checkLoaded(g, opts.Validate); err != nil {
		return nil, fmt.Errorf("graph: load: %w", err)
	}

	for i, sn := range doc.Nodes {
		if err := g.nodes[i].SetCustomData(ec, sn.CustomData); err != nil {
			return nil, fmt.Errorf("graph: load node %s (%s) custom data: %w", NodeID(sn.Guid).Short(), sn.Type, err)
		}
	}

	done()
	if !opts.Preview {
		for _, n := range g.nodes {
			if pd, ok := n.(PostDeserializer); ok {
				pd.OnAfterDeserialize(ec)
			}
		}
	}

	return g, nil
}

// checkLoaded rejects cycles. When full is set it runs every check, failing
// on error findings and logging warnings.
func checkLoaded(g *Graph, full bool) error {
	findings := validateDAG(g)
	if full {
		findings = Validate(g)
	}
	var errs []error
	for _, v := range findings {
		if v.Severity == SeverityError {
			errs = append(errs, v)
		} else {
			g.ec.Log.Warn("graph validation", zap.String("code", v.Code), zap.String("message", v.Message))
		}
	}
	return errors.Join(errs...)
}

// Format is a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return 0, fmt.Errorf("graph: no document format for %q", path)
}

// Encode writes doc in the given format.
func (d *Document) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatMsgpack:
		return msgpack.Marshal(d)
	}
	return nil, fmt.Errorf("graph: unknown format %d", int(f))
}

// DecodeDocument reads a document in the given format.
func DecodeDocument(data []byte, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	default:
		err = fmt.Errorf("unknown format %d", int(f))
	}
	if err != nil {
		return nil, fmt.Errorf("graph: decode %s document: %w", f, err)
	}
	return &doc, nil
}

// MarshalJSON encodes the serialized graph as JSON.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc, err := g.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalBinary encodes the serialized graph as msgpack.
func (g *Graph) MarshalBinary() ([]byte, error) {
	doc, err := g.Serialize()
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(doc)
}

// LoadJSON decodes a JSON document and loads it.
func LoadJSON(data []byte, reg *Registry, opts LoadOptions) (*Graph, error) {
	doc, err := DecodeDocument(data, FormatJSON)
	if err != nil {
		return nil, err
	}
	return Load(doc, reg, opts)
}

// LoadBinary decodes a msgpack document and loads it.
func LoadBinary(data []byte, reg *Registry, opts LoadOptions) (*Graph, error) {
	doc, err := DecodeDocument(data, FormatMsgpack)
	if err != nil {
		return nil, err
	}
	return Load(doc, reg, opts)
}
