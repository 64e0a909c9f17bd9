package launcher

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
)

type recorded struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string) (*Launcher, *[]recorded) {
	var calls []recorded
	l := New(command, args, slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.goos = goos
	l.start = func(name string, args ...string) error {
		calls = append(calls, recorded{name, args})
		return nil
	}
	return l, &calls
}

func TestOpenSystemDefault(t *testing.T) {
	const link = "https://www.megabox.co.kr/"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{link}},
		{"linux", "xdg-open", []string{link}},
		{"freebsd", "xdg-open", []string{link}},
		{"windows", "cmd", []string{"/c", "start", "", link}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, calls := newTestLauncher("", nil, tt.goos)
			if err := l.Open(link); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if len(*calls) != 1 {
				t.Fatalf("got %d launches", len(*calls))
			}
			got := (*calls)[0]
			if got.name != tt.wantName || !slices.Equal(got.args, tt.wantArgs) {
				t.Errorf("launched %s %v, want %s %v", got.name, got.args, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestOpenConfiguredCommand(t *testing.T) {
	l, calls := newTestLauncher("firefox", []string{"--new-tab"}, "linux")
	if err := l.Open("https://cgv.co.kr/"); err != nil {
		t.Fatal(err)
	}
	got := (*calls)[0]
	if got.name != "firefox" || !slices.Equal(got.args, []string{"--new-tab", "https://cgv.co.kr/"}) {
		t.Errorf("launched %s %v", got.name, got.args)
	}
}

func TestOpenRejectsNonHTTP(t *testing.T) {
	l, calls := newTestLauncher("", nil, "linux")
	for _, bad := range []string{"file:///etc/passwd", "javascript:alert(1)", "not a url", "https://"} {
		if err := l.Open(bad); !errors.Is(err, ErrUnsafeURL) {
			t.Errorf("Open(%q) error = %v, want ErrUnsafeURL", bad, err)
		}
	}
	if len(*calls) != 0 {
		t.Errorf("launched %d times", len(*calls))
	}
}

func TestOpenReportsStartFailure(t *testing.T) {
	l, _ := newTestLauncher("", nil, "linux")
	l.start = func(string, ...string) error { return errors.New("not found") }
	if err := l.Open("https://cgv.co.kr/"); err == nil {
		t.Error("expected error")
	}
}
