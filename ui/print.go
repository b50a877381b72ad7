// Package ui provides the terminal surface of roverctl: raw single-key input
// and ANSI-colored output helpers.
package ui

import (
	"fmt"
	"io"
)

// RedWriter wraps an io.Writer and emits red-colored output. The standard
// logger is routed through it so errors stand out from command echo.
type RedWriter struct{ w io.Writer }

func (r RedWriter) Write(p []byte) (int, error) {
	out := append([]byte("\033[31m"), p...)
	out = append(out, []byte("\033[0m")...)
	return r.w.Write(out)
}

// NewRedWriter returns a RedWriter wrapping the provided io.Writer.
func NewRedWriter(w io.Writer) RedWriter { return RedWriter{w: w} }

// Debugf prints a yellow debug message when enabled is true.
func Debugf(enabled bool, format string, a ...interface{}) {
	if enabled {
		fmt.Print("\033[33m")
		fmt.Printf("[DEBUG] "+format, a...)
		fmt.Print("\033[0m")
	}
}

// Greenf prints a light green message.
func Greenf(format string, a ...interface{}) {
	fmt.Print("\033[92m")
	fmt.Printf(format, a...)
	fmt.Print("\033[0m")
}

// Warningf prints a bright yellow/orange warning.
func Warningf(format string, a ...interface{}) {
	fmt.Print("\033[93m")
	fmt.Printf(format, a...)
	fmt.Print("\033[0m")
}

// ClearScreen clears the terminal screen.
func ClearScreen() {
	fmt.Print("\033[2J\033[1;1H")
}

// PrintControls prints the key-to-command reference card.
func PrintControls() {
	line := "=================================================="
	fmt.Println("\n" + line)
	fmt.Println("ESP32 4WD ROVER CONTROL")
	fmt.Println(line)
	fmt.Println("\nMovement Controls:")
	fmt.Println("  W - Forward")
	fmt.Println("  S - Backward")
	fmt.Println("  A - Turn Left")
	fmt.Println("  D - Turn Right")
	fmt.Println("  Q - Spin Left (counter-clockwise)")
	fmt.Println("  E - Spin Right (clockwise)")
	fmt.Println("  X - STOP")
	fmt.Println("\nSpeed Controls:")
	fmt.Println("  + - Increase Speed")
	fmt.Println("  - - Decrease Speed")
	fmt.Println("\nOther:")
	fmt.Println("  T - Run Full Test Sequence")
	fmt.Println("  H - Show this help")
	fmt.Println("  ESC - Exit")
	fmt.Println(line)
	fmt.Println("\nReady! Press keys to control the rover...")
	fmt.Println("(Commands are sent immediately, no Enter needed)")
	fmt.Println()
}
