package app

import (
	"fmt"

	"github.com/pstuifzand/tui-timeline/internal/model"
	"github.com/pstuifzand/tui-timeline/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	a.logger.Debug("socket message", "command", msg.Command, "label", msg.Label)

	switch msg.Command {
	case socket.CommandAddItem:
		a.handleAddItem(msg)
	case socket.CommandListItems:
		a.respond(msg, &socket.Response{
			Success: true,
			Message: fmt.Sprintf("%d items", a.items.Len()),
			Items:   a.items.Snapshot().Items,
		})
	default:
		a.logger.Warn("unknown socket command", "command", msg.Command)
		a.respond(msg, &socket.Response{Message: "Unknown command: " + msg.Command})
	}
}

func (a *App) handleAddItem(msg socket.Message) {
	partial := msg.Partial()
	if !a.layerInRange(partial) {
		a.logger.Warn("socket add_item rejected: layer out of range", "priority", *partial.Priority)
		return
	}
	a.ctrl.Add(partial)
	a.logger.Info("added item from socket", "label", partial.Label, "items", a.items.Len())
	a.SetStatus("Added item from socket: " + partial.Label)
}

// layerInRange reports whether the partial's layer, when given, is one of
// the timeline's rows
func (a *App) layerInRange(p model.Partial) bool {
	return p.Priority == nil || (*p.Priority >= 0 && *p.Priority < a.ctrl.Geometry().Layers())
}

func (a *App) respond(msg socket.Message, r *socket.Response) {
	if msg.ResponseChan == nil {
		return
	}
	select {
	case msg.ResponseChan <- r:
	default:
		a.logger.Warn("socket response dropped", "command", msg.Command)
	}
}
