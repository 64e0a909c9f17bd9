package playback

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"slices"
	"testing"
	"time"
)

// fakeMPV answers IPC requests on the server half of a pipe. props maps
// property names to JSON values; unknown properties reply with an error.
func fakeMPV(t *testing.T, conn net.Conn, props map[string]string, received chan<- []any) {
	t.Helper()
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			var req struct {
				Command   []any `json:"command"`
				RequestID int   `json:"request_id"`
			}
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				continue
			}
			if received != nil {
				received <- req.Command
			}
			if req.RequestID == 0 {
				continue
			}

			reply := fmt.Sprintf(`{"request_id":%d,"error":"success","data":null}`, req.RequestID)
			if len(req.Command) == 2 && req.Command[0] == "get_property" {
				name, _ := req.Command[1].(string)
				if v, ok := props[name]; ok {
					reply = fmt.Sprintf(`{"request_id":%d,"error":"success","data":%s}`, req.RequestID, v)
				} else {
					reply = fmt.Sprintf(`{"request_id":%d,"error":"property unavailable"}`, req.RequestID)
				}
			}
			fmt.Fprintln(conn, reply)
		}
	}()
}

func TestIPCCommandRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	fakeMPV(t, server, map[string]string{"mute": "true", "pause": "false"}, nil)

	c := newIPCConn(client, time.Second, nil)
	defer c.Close()

	muted, err := c.Bool("mute")
	if err != nil || !muted {
		t.Errorf("Bool(mute) = %v, %v", muted, err)
	}
	paused, err := c.Bool("pause")
	if err != nil || paused {
		t.Errorf("Bool(pause) = %v, %v", paused, err)
	}
	if _, err := c.Bool("volume-max"); err == nil {
		t.Error("expected error for unavailable property")
	}
}

func TestIPCEventsCanIssueCommands(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	fakeMPV(t, server, map[string]string{"core-idle": "false"}, nil)

	results := make(chan bool, 1)
	var c *ipcConn
	ready := make(chan struct{})
	c = newIPCConn(client, time.Second, func(msg ipcMessage) {
		<-ready
		if msg.Event != "file-loaded" {
			return
		}
		idle, err := c.Bool("core-idle")
		results <- err == nil && !idle
	})
	close(ready)
	defer c.Close()

	// Events are written by the server side between replies
	go fmt.Fprintln(server, `{"event":"file-loaded"}`)

	select {
	case ok := <-results:
		if !ok {
			t.Error("command from event handler failed")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("event handler deadlocked")
	}
}

func TestIPCCommandTimesOut(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	// Drain without replying
	go bufio.NewReader(server).WriteTo(discard{})

	c := newIPCConn(client, 50*time.Millisecond, nil)
	defer c.Close()

	if _, err := c.Command("get_property", "mute"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestIPCClosedConnection(t *testing.T) {
	client, server := net.Pipe()
	c := newIPCConn(client, time.Second, nil)
	server.Close()

	if _, err := c.Command("get_property", "mute"); err == nil {
		t.Error("expected error on closed connection")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestMPVLaunchArgs(t *testing.T) {
	m := NewMPV("mpv", []string{"--volume=80"}, quietLogger())
	args := m.launchArgs("/tmp/x/socket")

	for _, want := range []string{
		"--input-ipc-server=/tmp/x/socket",
		"--mute=yes",
		"--loop-file=inf",
		"--idle=yes",
		"--no-terminal",
	} {
		if !slices.Contains(args, want) {
			t.Errorf("args missing %q: %v", want, args)
		}
	}
	if args[len(args)-1] != "--volume=80" {
		t.Errorf("user args not appended last: %v", args)
	}
}

func TestMPVCommandsBeforeReady(t *testing.T) {
	m := NewMPV("mpv", nil, quietLogger())
	if err := m.Play(); err != ErrNotReady {
		t.Errorf("Play() = %v, want ErrNotReady", err)
	}
	if _, err := m.Muted(); err != ErrNotReady {
		t.Errorf("Muted() = %v, want ErrNotReady", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
