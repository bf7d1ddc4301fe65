package eventbus

import (
	"context"
	"log/slog"

	"github.com/flowcanvas/flowcanvas/pkg/events"
	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// CanvasNotifier publishes canvas graph mutations onto the event bus. It
// satisfies the canvas package's Notifier interface. Publish failures are
// logged and dropped: editing must not stall on the bus.
type CanvasNotifier struct {
	bus      EventPublisher
	canvasID string
	logger   *slog.Logger
}

func NewCanvasNotifier(bus EventPublisher, canvasID string, logger *slog.Logger) *CanvasNotifier {
	return &CanvasNotifier{
		bus:      bus,
		canvasID: canvasID,
		logger:   logger.With("module", "canvas-notifier", "canvas_id", canvasID),
	}
}

func (n *CanvasNotifier) NodeAdded(node protocol.Node) {
	n.publish(events.CanvasNodeAdded{
		BaseEvent: events.NewBaseEvent(events.CanvasNodeAddedEvent, n.canvasID),
		NodeID:    node.ID(),
		NodeKind:  node.Kind(),
	})
}

func (n *CanvasNotifier) NodeRemoved(node protocol.Node) {
	n.publish(events.CanvasNodeRemoved{
		BaseEvent: events.NewBaseEvent(events.CanvasNodeRemovedEvent, n.canvasID),
		NodeID:    node.ID(),
	})
}

func (n *CanvasNotifier) ConnectionCreated(conn *models.Connection) {
	n.publish(events.CanvasConnectionCreated{
		BaseEvent:    events.NewBaseEvent(events.CanvasConnectionCreatedEvent, n.canvasID),
		ConnectionID: conn.ID,
		SourcePoint:  conn.SourcePoint,
		TargetPoint:  conn.TargetPoint,
	})
}

func (n *CanvasNotifier) ConnectionRemoved(conn *models.Connection) {
	n.publish(events.CanvasConnectionRemoved{
		BaseEvent:    events.NewBaseEvent(events.CanvasConnectionRemovedEvent, n.canvasID),
		ConnectionID: conn.ID,
	})
}

func (n *CanvasNotifier) SelectionChanged(node protocol.Node) {
	event := events.CanvasSelectionChanged{
		BaseEvent: events.NewBaseEvent(events.CanvasSelectionChangedEvent, n.canvasID),
	}
	if node != nil {
		event.NodeID = node.ID()
	}

	n.publish(event)
}

func (n *CanvasNotifier) publish(event Event) {
	if err := n.bus.Publish(context.Background(), n.canvasID, event); err != nil {
		n.logger.Error("failed to publish canvas event",
			"event_type", event.GetType(), "error", err)
	}
}
