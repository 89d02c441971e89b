package window

import (
	"errors"
	"testing"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) Hide() error  { r.calls = append(r.calls, "hide"); return r.err }
func (r *recorder) Show() error  { r.calls = append(r.calls, "show"); return r.err }
func (r *recorder) Close() error { r.calls = append(r.calls, "close"); return r.err }

func TestLoggedForwards(t *testing.T) {
	r := &recorder{}
	l := Logged{Next: r}
	if err := l.Hide(); err != nil {
		t.Fatal(err)
	}
	_ = l.Show()
	_ = l.Close()
	if got := len(r.calls); got != 3 || r.calls[0] != "hide" || r.calls[2] != "close" {
		t.Fatalf("calls = %v", r.calls)
	}

	r.err = errors.New("gone")
	if err := l.Show(); !errors.Is(err, r.err) {
		t.Fatalf("expected forwarded error, got %v", err)
	}
}

func TestNoop(t *testing.T) {
	var n Noop
	if n.Hide() != nil || n.Show() != nil || n.Close() != nil {
		t.Fatalf("noop returned an error")
	}
}

type placed struct {
	recorder
	x, y int
}

func (p *placed) Origin() (int, int, error) { return p.x, p.y, nil }

func TestLoggedOrigin(t *testing.T) {
	x, y, err := Logged{Next: &placed{x: 120, y: 45}}.Origin()
	if err != nil || x != 120 || y != 45 {
		t.Fatalf("origin = %d,%d %v", x, y, err)
	}
	if _, _, err := (Logged{Next: Noop{}}).Origin(); !errors.Is(err, errNoOrigin) {
		t.Fatalf("expected errNoOrigin, got %v", err)
	}
}
