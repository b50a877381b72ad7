// Package serial handles endpoint discovery and the byte-stream link to the
// rover: enumeration, robot-identifier matching with an interactive fallback,
// and a Link wrapping one open port with send/close operations.
package serial

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	goserial "github.com/tarm/serial"

	"roverctl/models"
)

// ErrNotConnected is returned by Send when the link is closed or was never
// opened. Callers report it and carry on; it is never fatal.
var ErrNotConnected = errors.New("not connected to rover")

// readSlice bounds a single blocking read on the port. Kept much shorter than
// the overall response deadline so an opportunistic read returns quickly when
// the rover has nothing to say.
const readSlice = 100 * time.Millisecond

// Link is one open serial byte-stream to the rover. It is owned by the
// control loop for the lifetime of a session; Close may be called from any
// exit path and is idempotent.
type Link struct {
	mu       sync.Mutex
	port     io.ReadWriteCloser
	settings models.SerialSettings
}

// Open connects to the rover on the given settings and waits out the settle
// delay so the Bluetooth bridge's own boot/handshake can finish.
func Open(settings models.SerialSettings) (*Link, error) {
	cfg := &goserial.Config{
		Name:        settings.Port,
		Baud:        settings.Baud,
		Parity:      goserial.ParityNone,
		Size:        8,
		StopBits:    goserial.Stop1,
		ReadTimeout: readSlice,
	}
	sp, err := goserial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", settings.Port, err)
	}
	time.Sleep(settings.SettleDelay)
	return &Link{port: sp, settings: settings}, nil
}

// Connected reports whether the link is open.
func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

// Send transmits one command byte, waits the fixed response window, then
// opportunistically reads one reply line. The returned string is empty when
// the rover had nothing pending; that is not an error. There is no
// acknowledgement protocol here.
func (l *Link) Send(cmd models.Command) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return "", ErrNotConnected
	}
	if _, err := l.port.Write([]byte{byte(cmd)}); err != nil {
		return "", fmt.Errorf("send %s: %w", cmd, err)
	}

	time.Sleep(models.ResponseWindow)
	return l.readLine(), nil
}

// readLine drains at most one newline-terminated line from the port,
// best-effort. A first read that yields nothing means no response is pending
// and ends the attempt; once bytes start arriving, reading continues until a
// newline or the read-timeout deadline.
func (l *Link) readLine() string {
	deadline := time.Now().Add(l.settings.ReadTimeout)
	buf := make([]byte, 0, 256)
	tmp := make([]byte, 128)
	for time.Now().Before(deadline) {
		n, err := l.port.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
			if strings.ContainsRune(string(buf), '\n') {
				break
			}
		} else if len(buf) == 0 {
			// Nothing pending at all; do not wait out the full deadline.
			break
		}
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(string(buf))
}

// Close releases the port. Safe to call more than once; only the first call
// closes the handle.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}
