package cmd

import (
	"log/slog"

	"github.com/flowcanvas/flowcanvas/pkg/eventbus"
)

// NewEventBus creates the in-process gochannel event bus. Broker-backed
// buses plug in here once a deployment needs cross-process events.
func NewEventBus(logger *slog.Logger) eventbus.EventBus {
	return eventbus.NewGoChannelEventBus(logger)
}
