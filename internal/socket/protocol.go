// Package socket lets other processes send commands to a running editor
// over a unix socket. Messages and responses are single JSON values.
package socket

import "github.com/pstuifzand/tui-timeline/internal/model"

// Message represents a command sent to the running editor
type Message struct {
	Command    string            `json:"command"`
	Label      string            `json:"label,omitempty"`
	Start      *int              `json:"start,omitempty"`
	Stop       *int              `json:"stop,omitempty"`
	Priority   *int              `json:"priority,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`

	// ResponseChan is set by the server for commands that answer with data
	ResponseChan chan *Response `json:"-"`
}

// Partial returns the item fields carried by an add_item message
func (m Message) Partial() model.Partial {
	return model.Partial{
		Start:      m.Start,
		Stop:       m.Stop,
		Priority:   m.Priority,
		Label:      m.Label,
		Attributes: m.Attributes,
	}
}

// Response represents the response from the server
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Items   []model.Item `json:"items,omitempty"`
}

// Command types
const (
	CommandAddItem   = "add_item"
	CommandListItems = "list_items"
)

func isSynchronous(command string) bool {
	return command == CommandListItems
}
