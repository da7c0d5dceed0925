package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// ErrNoInstance is returned when no running editor was found
var ErrNoInstance = errors.New("no running tut instance found")

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
	timeout    time.Duration
}

// FindRunningInstance returns the socket path and pid of the most recently
// started editor
func FindRunningInstance() (string, int, error) {
	entries, err := os.ReadDir(SocketDir())
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, ErrNoInstance
		}
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newestSocket string
	var newestTime time.Time
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, ".sock") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newestSocket == "" || info.ModTime().After(newestTime) {
			newestTime = info.ModTime()
			newestSocket = filepath.Join(SocketDir(), name)
		}
	}
	if newestSocket == "" {
		return "", 0, ErrNoInstance
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newestSocket), socketPrefix), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}

	return newestSocket, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// SendAddItem asks the editor to add an item; missing placement fields are
// suggested by the editor
func (c *Client) SendAddItem(p model.Partial) (*Response, error) {
	return c.Send(Message{
		Command:    CommandAddItem,
		Label:      p.Label,
		Start:      p.Start,
		Stop:       p.Stop,
		Priority:   p.Priority,
		Attributes: p.Attributes,
	})
}

// ListItems returns the items of the running editor
func (c *Client) ListItems() ([]model.Item, error) {
	response, err := c.Send(Message{Command: CommandListItems})
	if err != nil {
		return nil, err
	}
	if !response.Success {
		return nil, fmt.Errorf("server error: %s", response.Message)
	}
	return response.Items, nil
}
