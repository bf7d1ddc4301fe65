package models

// Connection is a directed edge from one node's output point to another
// node's input point. Connections are owned by the canvas; a connection never
// owns its endpoints, and it is removed automatically when either endpoint's
// node is removed.
type Connection struct {
	ID          string `json:"id"`
	SourcePoint string `json:"source_point" validate:"required"` // References ConnectionPoint.ID: "{node_id}:{point_name}"
	TargetPoint string `json:"target_point" validate:"required"` // References ConnectionPoint.ID: "{node_id}:{point_name}"
	Active      bool   `json:"active"`
}

// SourceNodeID returns the node ID encoded in the source point reference.
func (c *Connection) SourceNodeID() string {
	nodeID, _, _ := ParsePointID(c.SourcePoint)
	return nodeID
}

// TargetNodeID returns the node ID encoded in the target point reference.
func (c *Connection) TargetNodeID() string {
	nodeID, _, _ := ParsePointID(c.TargetPoint)
	return nodeID
}

// References reports whether the connection touches the given node as either
// endpoint.
func (c *Connection) References(nodeID string) bool {
	return c.SourceNodeID() == nodeID || c.TargetNodeID() == nodeID
}
