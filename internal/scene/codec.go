// Package scene is the serialization collaborator for the stage: it reads
// and writes the persisted scene document. Velocity and relationship state
// are transient and never persisted; both are recomputed fresh after load.
package scene

import (
	"encoding/json"
	"fmt"

	"backstage/server/internal/stage"
)

// DocumentVersion guards against stale exports.
const DocumentVersion = 1

// ObjectRecord is one persisted scene object.
type ObjectRecord struct {
	ID       string     `json:"id"`
	Subtype  string     `json:"subtype"`
	Position [3]float64 `json:"position"`
	Rotation float64    `json:"rotation"`
	Visible  bool       `json:"visible"`
	Hidden   bool       `json:"hidden"`
}

// Document is the full persisted scene.
type Document struct {
	Version int            `json:"version" jsonschema:"required"`
	Objects []ObjectRecord `json:"objects"`
}

// LoadResult is the structured outcome of a decode. Malformed input is a
// caller problem reported here, never a panic and never UI.
type LoadResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Objects []*stage.Object `json:"-"`
}

// Encode captures every live object into a document.
func Encode(reg *stage.Registry) Document {
	doc := Document{Version: DocumentVersion}
	reg.ForEach(func(obj *stage.Object) {
		doc.Objects = append(doc.Objects, ObjectRecord{
			ID:       string(obj.ID),
			Subtype:  obj.Subtype,
			Position: [3]float64{obj.Pos.X, obj.Pos.Y, obj.Pos.Z},
			Rotation: obj.Yaw,
			Visible:  obj.Visible,
			Hidden:   obj.Hidden,
		})
	})
	return doc
}

// EncodeJSON serializes the registry to the wire document.
func EncodeJSON(reg *stage.Registry) ([]byte, error) {
	return json.Marshal(Encode(reg))
}

// Decode validates a document and rebuilds objects. Category and resting
// offset derive from the subtype; hidden objects come back invisible.
func Decode(doc Document) LoadResult {
	if doc.Version != DocumentVersion {
		return failure(fmt.Sprintf("unsupported scene version %d", doc.Version))
	}
	seen := make(map[string]struct{}, len(doc.Objects))
	objects := make([]*stage.Object, 0, len(doc.Objects))
	for i, record := range doc.Objects {
		if record.ID == "" {
			return failure(fmt.Sprintf("object %d: missing id", i))
		}
		if _, dup := seen[record.ID]; dup {
			return failure(fmt.Sprintf("object %d: duplicate id %q", i, record.ID))
		}
		if record.Subtype == "" {
			return failure(fmt.Sprintf("object %q: missing subtype", record.ID))
		}
		seen[record.ID] = struct{}{}

		category := stage.CategoryFor(record.Subtype)
		vol := stage.Classify(category, record.Subtype)
		obj := &stage.Object{
			ID:         stage.ObjectID(record.ID),
			Category:   category,
			Subtype:    record.Subtype,
			Pos:        stage.Vec3{X: record.Position[0], Y: record.Position[1], Z: record.Position[2]},
			Yaw:        record.Rotation,
			Visible:    record.Visible && !record.Hidden,
			Hidden:     record.Hidden,
			RestOffset: vol.HalfHeight,
		}
		objects = append(objects, obj)
	}
	return LoadResult{Success: true, Objects: objects}
}

// DecodeJSON parses and validates a wire document.
func DecodeJSON(data []byte) LoadResult {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return failure(fmt.Sprintf("malformed scene document: %v", err))
	}
	return Decode(doc)
}

func failure(msg string) LoadResult {
	return LoadResult{Error: msg}
}
