package canvas

import (
	"cogentcore.org/core/math32"

	"github.com/flowcanvas/flowcanvas/pkg/models"
)

// State identifies what the pointer state machine is currently doing.
type State int

const (
	StateIdle State = iota
	StateDraggingNode
	StateConnecting
	StatePanning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingNode:
		return "dragging"
	case StateConnecting:
		return "connecting"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// PointerEvent carries a pointer event in screen space. Modifier reports
// whether the pan modifier key was held.
type PointerEvent struct {
	Pos      math32.Vector2
	Button   Button
	Modifier bool
}

// State returns the current interaction state.
func (c *Canvas) State() State { return c.state }

// PointerDown starts an interaction. Priority order: a connection point hot
// zone starts a connect gesture, a node body starts a drag (and selects the
// node), a connection line selects that connection, the middle button or a
// modified left click starts a pan, and empty space clears the selection.
func (c *Canvas) PointerDown(ev PointerEvent) {
	if c.state != StateIdle {
		return
	}

	pos := c.ScreenToCanvas(ev.Pos)

	if ev.Button == ButtonMiddle || (ev.Button == ButtonLeft && ev.Modifier) {
		c.state = StatePanning
		c.lastPointer = ev.Pos

		return
	}

	if ev.Button != ButtonLeft {
		return
	}

	if node := c.NodeAt(pos); node != nil {
		c.Select(node)
		c.selectedConn = nil

		if point := c.PointAt(node, pos); point != nil {
			c.state = StateConnecting
			c.connectSource = node
			c.connectPoint = point
			c.lastPointer = ev.Pos

			return
		}

		c.state = StateDraggingNode
		c.dragNode = node
		c.dragOffset = pos.Sub(node.Position())

		return
	}

	if conn := c.ConnectionAt(pos); conn != nil {
		c.Select(nil)
		c.selectedConn = conn

		return
	}

	c.Select(nil)
	c.selectedConn = nil
}

// PointerMove advances the active gesture: node drags track the cursor in
// canvas space, pans accumulate the screen-space delta, and connect gestures
// update the preview endpoint.
func (c *Canvas) PointerMove(ev PointerEvent) {
	switch c.state {
	case StateDraggingNode:
		c.dragNode.SetPosition(c.ScreenToCanvas(ev.Pos).Sub(c.dragOffset))

	case StatePanning:
		c.pan = c.pan.Add(ev.Pos.Sub(c.lastPointer))
		c.lastPointer = ev.Pos

	case StateConnecting:
		c.lastPointer = ev.Pos
	}
}

// PointerUp ends the active gesture. A connect gesture released over an
// opposite-kind point on another node creates the connection, always oriented
// output to input regardless of which end the gesture started from. Any other
// release simply returns to idle.
func (c *Canvas) PointerUp(ev PointerEvent) {
	defer c.resetGesture()

	if c.state != StateConnecting {
		return
	}

	pos := c.ScreenToCanvas(ev.Pos)

	target := c.NodeAt(pos)
	if target == nil || target == c.connectSource {
		return
	}

	point := c.PointAt(target, pos)
	if point == nil || point.Kind == c.connectPoint.Kind {
		return
	}

	if c.connectPoint.Kind == models.PointKindOutput {
		c.Connect(c.connectPoint.ID, point.ID)
	} else {
		c.Connect(point.ID, c.connectPoint.ID)
	}
}

// Wheel zooms by notches steps anchored at the cursor.
func (c *Canvas) Wheel(ev PointerEvent, notches float32) {
	c.ZoomAt(ev.Pos, notches)
}

// PendingConnection reports the in-progress connect gesture as a canvas-space
// line from the source point to the cursor, for rendering a preview. The
// second return is false outside a connect gesture.
func (c *Canvas) PendingConnection() (math32.Line2, bool) {
	if c.state != StateConnecting {
		return math32.Line2{}, false
	}

	return math32.NewLine2(
		c.PointPosition(c.connectSource, c.connectPoint),
		c.ScreenToCanvas(c.lastPointer),
	), true
}

func (c *Canvas) resetGesture() {
	c.state = StateIdle
	c.dragNode = nil
	c.connectSource = nil
	c.connectPoint = nil
}
