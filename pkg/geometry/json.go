package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/chazu/geograph/pkg/attribute"
)

type persisted struct {
	Vertices     []Vertex               `json:"vertices"`
	Edges        []Edge                 `json:"edges"`
	Faces        []Face                 `json:"faces"`
	FaceCorners  []FaceCorner           `json:"faceCorners"`
	SubmeshCount int                    `json:"submeshCount"`
	Attributes   []attribute.Serialized `json:"attributes"`
}

// MarshalJSON encodes topology and every attribute.
func (d *Data) MarshalJSON() ([]byte, error) {
	p := persisted{
		Vertices:     d.vertices,
		Edges:        d.edges,
		Faces:        d.faces,
		FaceCorners:  d.faceCorners,
		SubmeshCount: d.submeshCount,
	}
	for _, a := range d.Attributes() {
		s, err := attribute.Serialize(a)
		if err != nil {
			return nil, fmt.Errorf("geometry: marshal: %w", err)
		}
		p.Attributes = append(p.Attributes, s)
	}
	return json.Marshal(p)
}

// UnmarshalJSON replaces d with the decoded geometry. Attributes whose length
// does not match their domain are rejected.
func (d *Data) UnmarshalJSON(b []byte) error {
	var p persisted
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("geometry: unmarshal: %w", err)
	}
	out := newData()
	out.vertices = p.Vertices
	out.edges = p.Edges
	out.faces = p.Faces
	out.faceCorners = p.FaceCorners
	out.submeshCount = p.SubmeshCount
	for _, s := range p.Attributes {
		a, err := attribute.Deserialize(s)
		if err != nil {
			return fmt.Errorf("geometry: unmarshal: %w", err)
		}
		if err := out.StoreAttribute(a); err != nil {
			return fmt.Errorf("geometry: unmarshal: %w", err)
		}
	}
	*d = *out
	return nil
}
