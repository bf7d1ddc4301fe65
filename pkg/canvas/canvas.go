// Package canvas implements the retained workflow canvas: it owns the node
// and connection collections, derives connection-point geometry from node
// bounds, hit-tests nodes/points/connections, and drives the pointer
// interaction state machine with zoom/pan view transforms.
//
// The canvas is strictly single-threaded: all mutation and every pointer
// event must come from the same goroutine. No internal synchronization is
// provided.
package canvas

import (
	"cogentcore.org/core/math32"
	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Hot-zone radius around a connection point and the pick tolerance around a
// connection line, both in screen pixels.
const (
	PointHotZone        = 8.0
	ConnectionTolerance = 6.0
)

// Canvas owns an ordered node collection (insertion order is z-order;
// the last added node wins overlapping hit tests), the connections between
// node points, a single selection, and the view transform.
type Canvas struct {
	nodes       []protocol.Node
	connections []*models.Connection

	selected     protocol.Node
	selectedConn *models.Connection

	zoom float32
	pan  math32.Vector2

	notifier Notifier

	state         State
	dragNode      protocol.Node
	dragOffset    math32.Vector2
	connectSource protocol.Node
	connectPoint  *models.ConnectionPoint
	lastPointer   math32.Vector2
}

// New creates an empty canvas at identity view transform.
func New() *Canvas {
	return &Canvas{
		zoom:     1.0,
		notifier: NopNotifier{},
	}
}

// SetNotifier installs the observer receiving graph mutation notifications.
func (c *Canvas) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}

	c.notifier = n
}

// Nodes returns the nodes in z-order (bottom first).
func (c *Canvas) Nodes() []protocol.Node { return c.nodes }

// Connections returns the current connections.
func (c *Canvas) Connections() []*models.Connection { return c.connections }

// SelectedNode returns the selected node, or nil.
func (c *Canvas) SelectedNode() protocol.Node { return c.selected }

// SelectedConnection returns the selected connection, or nil.
func (c *Canvas) SelectedConnection() *models.Connection { return c.selectedConn }

// AddNode appends a node on top of the z-order.
func (c *Canvas) AddNode(node protocol.Node) {
	c.nodes = append(c.nodes, node)
	c.notifier.NodeAdded(node)
}

// NodeByID finds a node by ID.
func (c *Canvas) NodeByID(id string) (protocol.Node, bool) {
	for _, n := range c.nodes {
		if n.ID() == id {
			return n, true
		}
	}

	return nil, false
}

// RemoveNode removes a node and cascades removal of every connection that
// references it as either endpoint, one removal notification per connection.
// Removing the selected node clears the selection.
func (c *Canvas) RemoveNode(id string) bool {
	idx := -1

	for i, n := range c.nodes {
		if n.ID() == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return false
	}

	node := c.nodes[idx]

	kept := c.connections[:0]
	for _, conn := range c.connections {
		if conn.References(id) {
			if c.selectedConn == conn {
				c.selectedConn = nil
			}

			c.notifier.ConnectionRemoved(conn)

			continue
		}

		kept = append(kept, conn)
	}

	c.connections = kept

	if c.selected == node {
		c.Select(nil)
	}

	c.nodes = append(c.nodes[:idx], c.nodes[idx+1:]...)
	c.notifier.NodeRemoved(node)

	return true
}

// Select changes the selected node (nil clears) and notifies on change.
func (c *Canvas) Select(node protocol.Node) {
	if c.selected == node {
		return
	}

	c.selected = node
	c.notifier.SelectionChanged(node)
}

// Connect creates a directed connection between an output point and an input
// point, identified by their point IDs. Illegal requests are rejected
// silently: self-loops, same-kind point pairs, unknown endpoints and
// duplicate edges all yield nil without mutating the graph.
func (c *Canvas) Connect(sourcePointID, targetPointID string) *models.Connection {
	sourceNode, _ := c.resolvePoint(sourcePointID, models.PointKindOutput)
	targetNode, _ := c.resolvePoint(targetPointID, models.PointKindInput)

	if sourceNode == nil || targetNode == nil {
		return nil
	}

	if sourceNode == targetNode {
		return nil
	}

	for _, existing := range c.connections {
		if existing.SourcePoint == sourcePointID && existing.TargetPoint == targetPointID {
			return nil
		}
	}

	conn := &models.Connection{
		ID:          uuid.New().String(),
		SourcePoint: sourcePointID,
		TargetPoint: targetPointID,
		Active:      true,
	}

	c.connections = append(c.connections, conn)
	c.notifier.ConnectionCreated(conn)

	return conn
}

// RemoveConnection removes one connection by ID.
func (c *Canvas) RemoveConnection(id string) bool {
	for i, conn := range c.connections {
		if conn.ID != id {
			continue
		}

		if c.selectedConn == conn {
			c.selectedConn = nil
		}

		c.connections = append(c.connections[:i], c.connections[i+1:]...)
		c.notifier.ConnectionRemoved(conn)

		return true
	}

	return false
}

// resolvePoint looks a point ID up among the points of the given kind. A
// point name may be reused across a node's input and output sides, so the
// side must come from the caller: connection sources are always outputs and
// targets always inputs.
func (c *Canvas) resolvePoint(pointID string, kind models.PointKind) (protocol.Node, *models.ConnectionPoint) {
	nodeID, _, ok := models.ParsePointID(pointID)
	if !ok {
		return nil, nil
	}

	node, ok := c.NodeByID(nodeID)
	if !ok {
		return nil, nil
	}

	points := node.InputPoints()
	if kind == models.PointKindOutput {
		points = node.OutputPoints()
	}

	for _, p := range points {
		if p.ID == pointID {
			return node, p
		}
	}

	return nil, nil
}

// NodeAt hit-tests nodes at a canvas-space position in reverse insertion
// order, so the topmost node wins.
func (c *Canvas) NodeAt(pos math32.Vector2) protocol.Node {
	for i := len(c.nodes) - 1; i >= 0; i-- {
		if c.nodes[i].Bounds().ContainsPoint(pos) {
			return c.nodes[i]
		}
	}

	return nil
}

// PointPosition derives a connection point's canvas-space position from its
// node's bounds: inputs on the left edge, outputs on the right, evenly
// distributed vertically.
func (c *Canvas) PointPosition(node protocol.Node, point *models.ConnectionPoint) math32.Vector2 {
	bounds := node.Bounds()

	points := node.InputPoints()
	x := bounds.Min.X

	if point.Kind == models.PointKindOutput {
		points = node.OutputPoints()
		x = bounds.Max.X
	}

	slot, total := 0, len(points)
	for i, p := range points {
		if p.ID == point.ID {
			slot = i
			break
		}
	}

	y := bounds.ProjectY(float32(slot+1) / float32(total+1))

	return math32.Vec2(x, y)
}

// PointAt returns the node's connection point whose hot zone contains the
// canvas-space position, or nil. The hot zone scales with the view so it
// stays a constant screen size.
func (c *Canvas) PointAt(node protocol.Node, pos math32.Vector2) *models.ConnectionPoint {
	radius := float32(PointHotZone) / c.zoom

	var (
		best     *models.ConnectionPoint
		bestDist float32
	)

	consider := func(p *models.ConnectionPoint) {
		d := c.PointPosition(node, p).DistanceTo(pos)
		if d <= radius && (best == nil || d < bestDist) {
			best, bestDist = p, d
		}
	}

	for _, p := range node.InputPoints() {
		consider(p)
	}

	for _, p := range node.OutputPoints() {
		consider(p)
	}

	return best
}

// ConnectionAt hit-tests connection lines at a canvas-space position using
// point-to-segment distance within the pick tolerance.
func (c *Canvas) ConnectionAt(pos math32.Vector2) *models.Connection {
	tolerance := float32(ConnectionTolerance) / c.zoom

	for i := len(c.connections) - 1; i >= 0; i-- {
		conn := c.connections[i]

		line, ok := c.connectionLine(conn)
		if !ok {
			continue
		}

		if line.ClosestPointToPoint(pos).DistanceTo(pos) <= tolerance {
			return conn
		}
	}

	return nil
}

func (c *Canvas) connectionLine(conn *models.Connection) (math32.Line2, bool) {
	sourceNode, sourcePoint := c.resolvePoint(conn.SourcePoint, models.PointKindOutput)
	targetNode, targetPoint := c.resolvePoint(conn.TargetPoint, models.PointKindInput)

	if sourceNode == nil || targetNode == nil {
		return math32.Line2{}, false
	}

	return math32.NewLine2(
		c.PointPosition(sourceNode, sourcePoint),
		c.PointPosition(targetNode, targetPoint),
	), true
}
