package canvas

import (
	"github.com/flowcanvas/flowcanvas/pkg/models"
	"github.com/flowcanvas/flowcanvas/pkg/protocol"
)

// Notifier observes canvas graph mutations. Implementations must not call
// back into the canvas.
type Notifier interface {
	NodeAdded(node protocol.Node)
	NodeRemoved(node protocol.Node)
	ConnectionCreated(conn *models.Connection)
	ConnectionRemoved(conn *models.Connection)
	// SelectionChanged fires with the newly selected node, or nil when the
	// selection was cleared.
	SelectionChanged(node protocol.Node)
}

// Notifiers fans notifications out to several observers in order.
func Notifiers(all ...Notifier) Notifier {
	return multiNotifier(all)
}

type multiNotifier []Notifier

func (m multiNotifier) NodeAdded(node protocol.Node) {
	for _, n := range m {
		n.NodeAdded(node)
	}
}

func (m multiNotifier) NodeRemoved(node protocol.Node) {
	for _, n := range m {
		n.NodeRemoved(node)
	}
}

func (m multiNotifier) ConnectionCreated(conn *models.Connection) {
	for _, n := range m {
		n.ConnectionCreated(conn)
	}
}

func (m multiNotifier) ConnectionRemoved(conn *models.Connection) {
	for _, n := range m {
		n.ConnectionRemoved(conn)
	}
}

func (m multiNotifier) SelectionChanged(node protocol.Node) {
	for _, n := range m {
		n.SelectionChanged(node)
	}
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) NodeAdded(protocol.Node)              {}
func (NopNotifier) NodeRemoved(protocol.Node)            {}
func (NopNotifier) ConnectionCreated(*models.Connection) {}
func (NopNotifier) ConnectionRemoved(*models.Connection) {}
func (NopNotifier) SelectionChanged(protocol.Node)       {}
