package canvas

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/schedule"
	"github.com/flowcanvas/flowcanvas/pkg/nodes/transform"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// recorder captures notifications for assertions.
type recorder struct {
	added      []string
	removed    []string
	created    []string
	severed    []string
	selections []string // node IDs, "" for a cleared selection
}

func (r *recorder) NodeAdded(n protocol.Node)   { r.added = append(r.added, n.ID()) }
func (r *recorder) NodeRemoved(n protocol.Node) { r.removed = append(r.removed, n.ID()) }

func (r *recorder) ConnectionCreated(c *models.Connection) { r.created = append(r.created, c.ID) }
func (r *recorder) ConnectionRemoved(c *models.Connection) { r.severed = append(r.severed, c.ID) }

func (r *recorder) SelectionChanged(n protocol.Node) {
	if n == nil {
		r.selections = append(r.selections, "")
		return
	}

	r.selections = append(r.selections, n.ID())
}

func newNode(t *testing.T, id string, pos math32.Vector2) protocol.Node {
	t.Helper()

	node, err := transform.New(id, nil)
	require.NoError(t, err)

	node.SetPosition(pos)

	return node
}

func pointID(nodeID string) string {
	return models.MakePointID(nodeID, transform.OutputPointMain)
}

func TestTransforms_RoundTrip(t *testing.T) {
	c := New()

	cases := []struct {
		zoom float32
		pan  math32.Vector2
	}{
		{1.0, math32.Vec2(0, 0)},
		{0.1, math32.Vec2(-200, 350)},
		{2.5, math32.Vec2(17.5, -42.25)},
		{5.0, math32.Vec2(1000, 1000)},
	}

	points := []math32.Vector2{
		math32.Vec2(0, 0),
		math32.Vec2(400, 300),
		math32.Vec2(-123.5, 987.25),
	}

	for _, tc := range cases {
		c.SetZoom(tc.zoom)
		c.SetPan(tc.pan)

		for _, p := range points {
			back := c.CanvasToScreen(c.ScreenToCanvas(p))
			assert.InDelta(t, p.X, back.X, 1e-2)
			assert.InDelta(t, p.Y, back.Y, 1e-2)
		}
	}
}

func TestZoomAt_AnchorStaysUnderCursor(t *testing.T) {
	c := New()
	cursor := math32.Vec2(400, 300)

	before := c.ScreenToCanvas(cursor)
	c.ZoomAt(cursor, 1)

	assert.InDelta(t, 1.1, c.Zoom(), 1e-4)

	after := c.ScreenToCanvas(cursor)
	assert.InDelta(t, before.X, after.X, 1e-2)
	assert.InDelta(t, before.Y, after.Y, 1e-2)
}

func TestZoomAt_Clamped(t *testing.T) {
	c := New()

	c.ZoomAt(math32.Vec2(0, 0), 100)
	assert.InDelta(t, MaxZoom, c.Zoom(), 1e-4)

	c.ZoomAt(math32.Vec2(0, 0), -200)
	assert.InDelta(t, MinZoom, c.Zoom(), 1e-4)
}

func TestConnect_CreatesDirectedConnection(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	conn := c.Connect(pointID("a"), pointID("b"))

	require.NotNil(t, conn)
	assert.Equal(t, "a", conn.SourceNodeID())
	assert.Equal(t, "b", conn.TargetNodeID())
	assert.True(t, conn.Active)
	assert.Len(t, rec.created, 1)
}

func TestConnect_RejectsIllegalRequestsSilently(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	sched, err := schedule.New("s", nil)
	require.NoError(t, err)
	c.AddNode(sched)

	require.NotNil(t, c.Connect(pointID("a"), pointID("b")))

	assert.Nil(t, c.Connect(pointID("a"), pointID("a")), "self loop")
	assert.Nil(t, c.Connect(pointID("a"), pointID("b")), "duplicate")
	assert.Nil(t, c.Connect(pointID("a"), pointID("ghost")), "unknown target")
	assert.Nil(t, c.Connect("malformed", pointID("b")), "malformed source")
	assert.Nil(t, c.Connect(pointID("a"), pointID("s")), "schedule has no inputs")

	assert.Len(t, c.Connections(), 1)
	assert.Len(t, rec.created, 1)
}

func TestRemoveNode_CascadesConnections(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	a := newNode(t, "a", math32.Vec2(0, 0))
	b := newNode(t, "b", math32.Vec2(300, 0))
	d := newNode(t, "d", math32.Vec2(600, 0))

	c.AddNode(a)
	c.AddNode(b)
	c.AddNode(d)

	require.NotNil(t, c.Connect(pointID("a"), pointID("b")))
	require.NotNil(t, c.Connect(pointID("b"), pointID("d")))
	require.NotNil(t, c.Connect(pointID("a"), pointID("d")))

	c.Select(b)

	require.True(t, c.RemoveNode("b"))

	assert.Len(t, rec.severed, 2, "one notification per cascaded connection")
	assert.Equal(t, []string{"b"}, rec.removed)
	assert.Nil(t, c.SelectedNode(), "removing the selected node clears the selection")
	require.Len(t, c.Connections(), 1)
	assert.Equal(t, "a", c.Connections()[0].SourceNodeID())
	assert.Equal(t, "d", c.Connections()[0].TargetNodeID())

	assert.False(t, c.RemoveNode("b"), "already gone")
}

func TestNodeAt_TopmostWins(t *testing.T) {
	c := New()

	c.AddNode(newNode(t, "under", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "over", math32.Vec2(40, 20)))

	hit := c.NodeAt(math32.Vec2(80, 44))

	require.NotNil(t, hit)
	assert.Equal(t, "over", hit.ID())

	assert.Nil(t, c.NodeAt(math32.Vec2(-50, -50)))
}

func TestPointerGesture_DragNode(t *testing.T) {
	c := New()
	node := newNode(t, "a", math32.Vec2(0, 0))
	c.AddNode(node)

	// Press inside the body, away from any point hot zone.
	c.PointerDown(PointerEvent{Pos: math32.Vec2(80, 44), Button: ButtonLeft})
	require.Equal(t, StateDraggingNode, c.State())
	assert.Equal(t, node, c.SelectedNode())

	c.PointerMove(PointerEvent{Pos: math32.Vec2(130, 94)})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(130, 94)})

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, math32.Vec2(50, 50), node.Position())
}

func TestPointerGesture_DragTracksCursorUnderZoom(t *testing.T) {
	c := New()
	c.SetZoom(2)

	node := newNode(t, "a", math32.Vec2(0, 0))
	c.AddNode(node)

	// Canvas (80, 44) renders at screen (160, 88).
	c.PointerDown(PointerEvent{Pos: math32.Vec2(160, 88), Button: ButtonLeft})
	require.Equal(t, StateDraggingNode, c.State())

	c.PointerMove(PointerEvent{Pos: math32.Vec2(260, 88)})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(260, 88)})

	// 100 screen pixels is 50 canvas units at zoom 2.
	assert.InDelta(t, 50, node.Position().X, 1e-3)
	assert.InDelta(t, 0, node.Position().Y, 1e-3)
}

func TestPointerGesture_ConnectOutputToInput(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	// a's output point sits on its right edge at (160, 44).
	c.PointerDown(PointerEvent{Pos: math32.Vec2(160, 44), Button: ButtonLeft})
	require.Equal(t, StateConnecting, c.State())

	line, ok := c.PendingConnection()
	require.True(t, ok)
	assert.Equal(t, math32.Vec2(160, 44), line.Start)

	// Release over b's input point on its left edge at (300, 44).
	c.PointerUp(PointerEvent{Pos: math32.Vec2(300, 44), Button: ButtonLeft})

	assert.Equal(t, StateIdle, c.State())
	require.Len(t, c.Connections(), 1)
	assert.Equal(t, "a", c.Connections()[0].SourceNodeID())
	assert.Equal(t, "b", c.Connections()[0].TargetNodeID())
	assert.Len(t, rec.created, 1)
}

func TestPointerGesture_ConnectFromInputSideOrientsOutputToInput(t *testing.T) {
	c := New()

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	// Start on b's input point, release on a's output point.
	c.PointerDown(PointerEvent{Pos: math32.Vec2(300, 44), Button: ButtonLeft})
	require.Equal(t, StateConnecting, c.State())
	c.PointerUp(PointerEvent{Pos: math32.Vec2(160, 44), Button: ButtonLeft})

	require.Len(t, c.Connections(), 1)
	assert.Equal(t, "a", c.Connections()[0].SourceNodeID())
	assert.Equal(t, "b", c.Connections()[0].TargetNodeID())
}

func TestPointerGesture_ConnectReleasedOverNothingIsDiscarded(t *testing.T) {
	c := New()

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))

	c.PointerDown(PointerEvent{Pos: math32.Vec2(160, 44), Button: ButtonLeft})
	require.Equal(t, StateConnecting, c.State())
	c.PointerUp(PointerEvent{Pos: math32.Vec2(500, 500), Button: ButtonLeft})

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.Connections())
}

func TestPointerGesture_Pan(t *testing.T) {
	c := New()

	c.PointerDown(PointerEvent{Pos: math32.Vec2(10, 10), Button: ButtonMiddle})
	require.Equal(t, StatePanning, c.State())

	c.PointerMove(PointerEvent{Pos: math32.Vec2(30, 25)})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(30, 25)})

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, math32.Vec2(20, 15), c.Pan())
}

func TestPointerGesture_ModifiedLeftClickPans(t *testing.T) {
	c := New()
	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))

	// The modifier wins even over a node body.
	c.PointerDown(PointerEvent{Pos: math32.Vec2(80, 44), Button: ButtonLeft, Modifier: true})

	assert.Equal(t, StatePanning, c.State())
	assert.Nil(t, c.SelectedNode())
}

func TestPointerDown_EmptySpaceClearsSelection(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	node := newNode(t, "a", math32.Vec2(0, 0))
	c.AddNode(node)
	c.Select(node)

	c.PointerDown(PointerEvent{Pos: math32.Vec2(900, 900), Button: ButtonLeft})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(900, 900), Button: ButtonLeft})

	assert.Nil(t, c.SelectedNode())
	assert.Equal(t, []string{"a", ""}, rec.selections)
}

func TestPointerDown_OnConnectionSelectsIt(t *testing.T) {
	c := New()

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	conn := c.Connect(pointID("a"), pointID("b"))
	require.NotNil(t, conn)

	// The line runs from (160, 44) to (300, 44).
	c.PointerDown(PointerEvent{Pos: math32.Vec2(230, 46), Button: ButtonLeft})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(230, 46), Button: ButtonLeft})

	assert.Equal(t, conn, c.SelectedConnection())
	assert.Nil(t, c.SelectedNode())

	// Outside the pick tolerance nothing is hit.
	c.PointerDown(PointerEvent{Pos: math32.Vec2(230, 60), Button: ButtonLeft})
	c.PointerUp(PointerEvent{Pos: math32.Vec2(230, 60), Button: ButtonLeft})

	assert.Nil(t, c.SelectedConnection())
}

func TestRemoveConnection(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.SetNotifier(rec)

	c.AddNode(newNode(t, "a", math32.Vec2(0, 0)))
	c.AddNode(newNode(t, "b", math32.Vec2(300, 0)))

	conn := c.Connect(pointID("a"), pointID("b"))
	require.NotNil(t, conn)

	require.True(t, c.RemoveConnection(conn.ID))
	assert.Empty(t, c.Connections())
	assert.Equal(t, []string{conn.ID}, rec.severed)

	assert.False(t, c.RemoveConnection(conn.ID))
}

func TestPointPosition_DistributesAlongEdges(t *testing.T) {
	c := New()
	node := newNode(t, "a", math32.Vec2(0, 0))
	c.AddNode(node)

	in := node.InputPoints()[0]
	out := node.OutputPoints()[0]

	assert.Equal(t, math32.Vec2(0, 44), c.PointPosition(node, in))
	assert.Equal(t, math32.Vec2(160, 44), c.PointPosition(node, out))
}
