// Package models defines the shared types used across the roverctl packages:
// the command alphabet the rover understands, the serial-link settings, and
// the telemetry event envelope consumed by the monitor.
package models

import "time"

// Serial-link timing defaults. The rover's Bluetooth-serial bridge is slow to
// come up after the port opens, hence the settle delay; the response window is
// how long a command's reply is waited for before the loop moves on.
const (
	// DefaultBaud is the rover's fixed serial speed.
	DefaultBaud = 115200

	// ReadTimeout bounds a single blocking read on the port.
	ReadTimeout = time.Second

	// SettleDelay is the pause after opening the port before traffic is
	// trusted to flow.
	SettleDelay = 2 * time.Second

	// ResponseWindow is how long Send waits before checking for a reply line.
	ResponseWindow = 50 * time.Millisecond

	// PollInterval is the key-poll period of the control loop.
	PollInterval = 10 * time.Millisecond
)

// Command is one of the single-byte instructions the rover accepts.
type Command byte

// The full command alphabet. Each is transmitted as its literal ASCII byte,
// no framing, no terminator.
const (
	Forward   Command = 'W'
	Backward  Command = 'S'
	TurnLeft  Command = 'A'
	TurnRight Command = 'D'
	SpinLeft  Command = 'Q'
	SpinRight Command = 'E'
	Stop      Command = 'X'
	SpeedUp   Command = '+'
	SpeedDown Command = '-'
	TestRun   Command = 'T'
)

// String implements fmt.Stringer.
func (c Command) String() string {
	switch c {
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	case TurnLeft:
		return "TurnLeft"
	case TurnRight:
		return "TurnRight"
	case SpinLeft:
		return "SpinLeft"
	case SpinRight:
		return "SpinRight"
	case Stop:
		return "Stop"
	case SpeedUp:
		return "SpeedUp"
	case SpeedDown:
		return "SpeedDown"
	case TestRun:
		return "TestRun"
	default:
		return string(rune(c))
	}
}

// LookupCommand maps an uppercased key rune to its Command. The second return
// is false for any key outside the alphabet.
func LookupCommand(key rune) (Command, bool) {
	switch key {
	case 'W', 'S', 'A', 'D', 'Q', 'E', 'X', '+', '-', 'T':
		return Command(key), true
	default:
		return 0, false
	}
}

// SerialSettings contains the connection parameters for the rover link.
type SerialSettings struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
	SettleDelay time.Duration
}

// DefaultSettings returns the rover's fixed link parameters for a port.
func DefaultSettings(port string) SerialSettings {
	return SerialSettings{
		Port:        port,
		Baud:        DefaultBaud,
		ReadTimeout: ReadTimeout,
		SettleDelay: SettleDelay,
	}
}

// EventKind discriminates monitor events.
type EventKind string

const (
	// EventCommand is emitted for every byte dispatched to the rover.
	EventCommand EventKind = "command"

	// EventResponse is emitted for every reply line the rover sends back.
	EventResponse EventKind = "response"

	// EventStatus is emitted for session-level changes (connected, closed).
	EventStatus EventKind = "status"
)

// Event is the telemetry envelope broadcast to monitor clients.
type Event struct {
	Kind      EventKind `json:"kind"`
	Command   string    `json:"command,omitempty"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
