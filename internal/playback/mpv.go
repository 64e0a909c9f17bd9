package playback

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const (
	socketWaitAttempts = 50
	socketWaitInterval = 100 * time.Millisecond
	ipcTimeout         = 2 * time.Second
)

// MPV embeds trailers in an mpv window controlled over its JSON IPC socket.
// mpv is started idle and the trailer is loaded only once the socket is
// connected, so the file-loaded event cannot be missed.
type MPV struct {
	command string
	args    []string
	logger  *slog.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	dir    string
	conn   *ipcConn
	closed bool
}

// NewMPV creates an mpv player. args are appended after the built-in flags.
func NewMPV(command string, args []string, logger *slog.Logger) *MPV {
	if logger == nil {
		logger = slog.Default()
	}
	return &MPV{command: command, args: args, logger: logger}
}

// launchArgs builds the mpv command line. Each arg is separate; nothing
// passes through a shell.
func (m *MPV) launchArgs(socketPath string) []string {
	args := []string{
		"--idle=yes",
		"--input-ipc-server=" + socketPath,
		"--no-terminal",
		"--force-window=yes",
		"--mute=yes",
		"--loop-file=inf",
		"--osc=yes",
		"--keep-open=no",
		"--title=marquee trailer",
	}
	return append(args, m.args...)
}

func (m *MPV) Embed(key string, listener Listener) error {
	socketDir, err := os.MkdirTemp("", "marquee-mpv-*")
	if err != nil {
		return fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	socketPath := filepath.Join(socketDir, "socket")

	cmd := exec.Command(m.command, m.launchArgs(socketPath)...)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(socketDir)
		return fmt.Errorf("starting mpv: %w", err)
	}

	m.mu.Lock()
	m.cmd = cmd
	m.dir = socketDir
	m.mu.Unlock()

	m.logger.Info("mpv started", "pid", cmd.Process.Pid, "key", key)

	exited := make(chan struct{})
	go func() {
		err := cmd.Wait()
		close(exited)
		m.mu.Lock()
		closed := m.closed
		m.mu.Unlock()
		if !closed {
			listener(Event{Type: EventError, Err: fmt.Errorf("mpv exited: %v", err)})
		}
	}()

	go m.connect(socketPath, WatchURL(key), listener, exited)
	return nil
}

func (m *MPV) connect(socketPath, url string, listener Listener, exited <-chan struct{}) {
	var conn net.Conn
	var err error
	for range socketWaitAttempts {
		select {
		case <-exited:
			return
		default:
		}
		if conn, err = net.Dial("unix", socketPath); err == nil {
			break
		}
		time.Sleep(socketWaitInterval)
	}
	if err != nil {
		listener(Event{Type: EventError, Err: fmt.Errorf("connecting to mpv: %w", err)})
		return
	}

	ipc := newIPCConn(conn, ipcTimeout, func(msg ipcMessage) {
		switch msg.Event {
		case "file-loaded":
			listener(Event{Type: EventReady})
		case "end-file":
			switch msg.Reason {
			case "eof":
				listener(Event{Type: EventEnded})
			case "error":
				listener(Event{Type: EventError, Err: errors.New(msg.FileError)})
			}
		}
	})

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		ipc.Close()
		return
	}
	m.conn = ipc
	m.mu.Unlock()

	if _, err := ipc.Command("loadfile", url, "replace"); err != nil {
		listener(Event{Type: EventError, Err: fmt.Errorf("loading trailer: %w", err)})
	}
}

func (m *MPV) ipc() (*ipcConn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil || m.closed {
		return nil, ErrNotReady
	}
	return m.conn, nil
}

func (m *MPV) Play() error {
	c, err := m.ipc()
	if err != nil {
		return err
	}
	_, err = c.Command("set_property", "pause", false)
	return err
}

// Playing reports true once mpv is unpaused and actually decoding
func (m *MPV) Playing() (bool, error) {
	c, err := m.ipc()
	if err != nil {
		return false, err
	}
	paused, err := c.Bool("pause")
	if err != nil {
		return false, err
	}
	idle, err := c.Bool("core-idle")
	if err != nil {
		return false, err
	}
	return !paused && !idle, nil
}

func (m *MPV) Unmute() error {
	c, err := m.ipc()
	if err != nil {
		return err
	}
	_, err = c.Command("set_property", "mute", false)
	return err
}

func (m *MPV) Muted() (bool, error) {
	c, err := m.ipc()
	if err != nil {
		return false, err
	}
	return c.Bool("mute")
}

// Close quits mpv and removes its socket directory. Safe to call twice.
func (m *MPV) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	conn, cmd, dir := m.conn, m.cmd, m.dir
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		// Best effort; the kill below covers a wedged player
		conn.Send("quit")
		conn.Close()
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
	if dir != "" {
		os.RemoveAll(dir)
	}
	return nil
}

// ipcMessage is any line mpv writes to the socket: a command reply or an event
type ipcMessage struct {
	RequestID int             `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
	Reason    string          `json:"reason"`
	FileError string          `json:"file_error"`
}

type ipcRequest struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// ipcConn multiplexes request/reply pairs and events over one socket
type ipcConn struct {
	conn    net.Conn
	timeout time.Duration
	onEvent func(ipcMessage)

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int
	pending map[int]chan ipcMessage
	events  chan ipcMessage
	done    chan struct{}
}

func newIPCConn(conn net.Conn, timeout time.Duration, onEvent func(ipcMessage)) *ipcConn {
	c := &ipcConn{
		conn:    conn,
		timeout: timeout,
		onEvent: onEvent,
		pending: make(map[int]chan ipcMessage),
		events:  make(chan ipcMessage, 16),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	go c.dispatch()
	return c
}

// dispatch delivers events off the read loop so handlers may issue
// commands and wait for their replies.
func (c *ipcConn) dispatch() {
	for msg := range c.events {
		if c.onEvent != nil {
			c.onEvent(msg)
		}
	}
}

func (c *ipcConn) readLoop() {
	defer close(c.events)
	defer close(c.done)
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Event != "" {
			if msg.Event == "file-loaded" || msg.Event == "end-file" {
				c.events <- msg
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.RequestID]
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
		if ok {
			ch <- msg
		}
	}
}

func (c *ipcConn) write(req ipcRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	_, err = c.conn.Write(data)
	return err
}

// Send writes a command without waiting for the reply
func (c *ipcConn) Send(args ...any) error {
	return c.write(ipcRequest{Command: args})
}

// Command writes a command and waits for its reply
func (c *ipcConn) Command(args ...any) (json.RawMessage, error) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	ch := make(chan ipcMessage, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	cleanup := func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}

	if err := c.write(ipcRequest{Command: args, RequestID: id}); err != nil {
		cleanup()
		return nil, fmt.Errorf("mpv ipc write: %w", err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv %v: %s", args[0], msg.Error)
		}
		return msg.Data, nil
	case <-c.done:
		cleanup()
		return nil, ErrNotReady
	case <-timer.C:
		cleanup()
		return nil, fmt.Errorf("mpv %v: timed out", args[0])
	}
}

// Bool reads a boolean property
func (c *ipcConn) Bool(name string) (bool, error) {
	data, err := c.Command("get_property", name)
	if err != nil {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, fmt.Errorf("mpv property %s: %w", name, err)
	}
	return v, nil
}

func (c *ipcConn) Close() error {
	return c.conn.Close()
}
