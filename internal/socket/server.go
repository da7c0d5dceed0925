package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"
)

const socketPrefix = "tut-"

// Server represents a Unix socket server for accepting external commands
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	logger     *slog.Logger
	timeout    time.Duration
}

// SocketDir returns the directory holding the sockets of running editors:
// $XDG_RUNTIME_DIR/tui-timeline, or ~/.local/share/tui-timeline without it
func SocketDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-timeline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tui-timeline")
	}
	return filepath.Join(home, ".local", "share", "tui-timeline")
}

// NewServer creates a new Unix socket server for the process pid
func NewServer(pid int, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	socketDir := SocketDir()
	if err := os.MkdirAll(socketDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(socketDir, fmt.Sprintf("%s%d.sock", socketPrefix, pid))

	// A stale socket of a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	logger.Info("socket server listening", "path", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		logger:     logger,
		timeout:    10 * time.Second,
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				s.logger.Warn("error accepting connection", "err", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	encoder := json.NewEncoder(conn)
	reply := func(r *Response) {
		if err := encoder.Encode(r); err != nil {
			s.logger.Warn("error writing response", "err", err)
		}
	}

	var msg Message
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		if err != io.EOF {
			s.logger.Warn("error decoding message", "err", err)
		}
		reply(&Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	if msg.Command == "" {
		reply(&Response{Message: "Missing command field"})
		return
	}

	if isSynchronous(msg.Command) {
		msg.ResponseChan = make(chan *Response, 1)
	}

	select {
	case s.msgChan <- msg:
	case <-s.stopChan:
		reply(&Response{Message: "Server is shutting down"})
		return
	}

	if msg.ResponseChan == nil {
		reply(&Response{Success: true, Message: "Command queued"})
		return
	}

	select {
	case response := <-msg.ResponseChan:
		reply(response)
	case <-time.After(s.timeout):
		reply(&Response{Message: "Command timed out"})
	case <-s.stopChan:
		reply(&Response{Message: "Server is shutting down"})
	}
}

// Messages returns the channel for receiving messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.socketPath != "" {
		_ = os.Remove(s.socketPath)
	}
	s.logger.Info("socket server stopped")
}
