// Package models defines connection-point models for node wiring.
package models

// PointKind represents the direction of data flow for a connection point.
type PointKind string

const (
	PointKindInput  PointKind = "input"
	PointKindOutput PointKind = "output"
)

// ConnectionPoint is a typed attachment site on a node. A point belongs to
// exactly one node (NodeID is a back-reference, not ownership) and is never
// shared between nodes. Its geometric position is derived from the owning
// node's bounds by the canvas.
type ConnectionPoint struct {
	ID          string         `json:"id"`      // Globally unique: "{nodeID}:{pointName}"
	NodeID      string         `json:"node_id"` // Which node this point belongs to
	Name        string         `json:"name"`    // Point name (unique within node)
	Kind        PointKind      `json:"kind"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}

// ParsePointID parses a point ID in format "{node_id}:{point_name}" into components.
func ParsePointID(pointID string) (string, string, bool) {
	for i := range len(pointID) {
		if pointID[i] == ':' {
			return pointID[:i], pointID[i+1:], true
		}
	}

	return "", "", false
}

// MakePointID creates a point ID from node ID and point name.
func MakePointID(nodeID, pointName string) string {
	return nodeID + ":" + pointName
}

// InputPoint is a convenience constructor for an input connection point.
func InputPoint(nodeID, name, description string) *ConnectionPoint {
	return &ConnectionPoint{
		ID:          MakePointID(nodeID, name),
		NodeID:      nodeID,
		Name:        name,
		Kind:        PointKindInput,
		Description: description,
	}
}

// OutputPoint is a convenience constructor for an output connection point.
func OutputPoint(nodeID, name, description string, schema map[string]any) *ConnectionPoint {
	return &ConnectionPoint{
		ID:          MakePointID(nodeID, name),
		NodeID:      nodeID,
		Name:        name,
		Kind:        PointKindOutput,
		Description: description,
		Schema:      schema,
	}
}
