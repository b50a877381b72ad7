package serial

import (
	"errors"
	"io"
	"testing"

	"roverctl/models"
)

// fakePort scripts the port side of a Link: reads serve queued payloads one
// per call, writes and closes are recorded.
type fakePort struct {
	reads  [][]byte
	writes []byte
	closes int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, nil // read timeout with nothing pending
	}
	chunk := f.reads[0]
	f.reads = f.reads[1:]
	n := copy(p, chunk)
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.writes = append(f.writes, p...)
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closes++
	return nil
}

func newTestLink(port io.ReadWriteCloser) *Link {
	return &Link{port: port, settings: models.DefaultSettings("test")}
}

func TestSendWritesCommandByte(t *testing.T) {
	port := &fakePort{}
	l := newTestLink(port)

	resp, err := l.Send(models.Forward)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got, want := string(port.writes), "W"; got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
	if resp != "" {
		t.Errorf("resp = %q, want empty with nothing pending", resp)
	}
}

func TestSendReadsPendingResponseLine(t *testing.T) {
	port := &fakePort{reads: [][]byte{[]byte("Moving forward\r\n")}}
	l := newTestLink(port)

	resp, err := l.Send(models.Forward)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp != "Moving forward" {
		t.Errorf("resp = %q, want %q", resp, "Moving forward")
	}
}

func TestSendAssemblesSplitResponse(t *testing.T) {
	port := &fakePort{reads: [][]byte{
		[]byte("Speed: "),
		[]byte("180\n"),
	}}
	l := newTestLink(port)

	resp, err := l.Send(models.SpeedUp)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp != "Speed: 180" {
		t.Errorf("resp = %q, want %q", resp, "Speed: 180")
	}
}

func TestSendWhileClosed(t *testing.T) {
	port := &fakePort{}
	l := newTestLink(port)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err := l.Send(models.Stop)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send after Close error = %v, want ErrNotConnected", err)
	}
	if len(port.writes) != 0 {
		t.Errorf("wrote %q on a closed link", port.writes)
	}
}

func TestSendNeverOpened(t *testing.T) {
	l := &Link{settings: models.DefaultSettings("test")}
	if _, err := l.Send(models.Stop); !errors.Is(err, ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	port := &fakePort{}
	l := newTestLink(port)

	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if port.closes != 1 {
		t.Errorf("port closed %d times, want exactly once", port.closes)
	}
	if l.Connected() {
		t.Error("Connected() = true after Close")
	}
}
