package models

// RegisteredNodeKind represents a node kind registered in the system with metadata.
type RegisteredNodeKind struct {
	Kind        NodeKind       `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}
