package nodes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chazu/geograph/pkg/vmath"
)

// encodeSettings stores values as a positional JSON array. Booleans are
// written as 0 or 1 and vectors as [x, y, z].
func encodeSettings(values ...any) (string, error) {
	arr := make([]any, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case bool:
			if x {
				arr[i] = 1
			} else {
				arr[i] = 0
			}
		case vmath.Vec3:
			arr[i] = [3]float64{x.X, x.Y, x.Z}
		default:
			arr[i] = v
		}
	}
	b, err := json.Marshal(arr)
	if err != nil {
		return "", fmt.Errorf("nodes: encode custom data: %w", err)
	}
	return string(b), nil
}

// decodeSettings reads a positional JSON array into targets, which must be
// pointers. Empty data leaves every target untouched.
func decodeSettings(data string, targets ...any) error {
	if strings.TrimSpace(data) == "" {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return fmt.Errorf("nodes: decode custom data: %w", err)
	}
	if len(raw) < len(targets) {
		return fmt.Errorf("nodes: decode custom data: want %d values, got %d", len(targets), len(raw))
	}
	for i, t := range targets {
		var err error
		switch p := t.(type) {
		case *bool:
			var v int
			err = json.Unmarshal(raw[i], &v)
			*p = v == 1
		case *vmath.Vec3:
			var v [3]float64
			err = json.Unmarshal(raw[i], &v)
			*p = vmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
		default:
			err = json.Unmarshal(raw[i], t)
		}
		if err != nil {
			return fmt.Errorf("nodes: decode custom data value %d: %w", i, err)
		}
	}
	return nil
}
