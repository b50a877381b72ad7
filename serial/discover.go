package serial

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// identifiers a port description must contain (case-insensitive) for the
// rover's Bluetooth-serial bridge to be auto-selected.
var robotIdentifiers = []string{"bluetooth", "esp32"}

// MatchesRobot reports whether a port description looks like the rover's
// serial bridge.
func MatchesRobot(description string) bool {
	d := strings.ToLower(description)
	for _, id := range robotIdentifiers {
		if strings.Contains(d, id) {
			return true
		}
	}
	return false
}

// SelectPort resolves free-form prompt input against an enumerated port list.
//
// A decimal number is an index into ports; anything else is taken as a
// literal device name (so "COM3" or "/dev/rfcomm0" always work, enumerated
// or not). An out-of-range index is an error.
func SelectPort(ports []PortInfo, input string) (string, error) {
	choice := strings.TrimSpace(input)
	if choice == "" {
		return "", fmt.Errorf("no port selected")
	}
	if idx, err := strconv.Atoi(choice); err == nil {
		if idx < 0 || idx >= len(ports) {
			return "", fmt.Errorf("port index %d out of range (have %d ports)", idx, len(ports))
		}
		return ports[idx].Name, nil
	}
	return choice, nil
}

// DiscoverPort finds the serial endpoint to connect to.
//
// It enumerates the host's ports, prints each one, and returns the first
// whose description matches a known robot identifier. When nothing matches
// it falls back to an interactive numbered list read from `in`, accepting an
// index or a literal port name. Returns an empty name with an error when no
// port is available or selected.
func DiscoverPort(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Searching for rover Bluetooth device...")
	ports := ListPorts()

	for _, p := range ports {
		fmt.Fprintf(out, "  Found: %s - %s\n", p.Name, p.Description)
		if MatchesRobot(p.Description) {
			return p.Name, nil
		}
	}

	if len(ports) == 0 {
		return "", fmt.Errorf("no serial ports found")
	}

	// No automatic match; let the user pick.
	fmt.Fprintln(out, "\nAvailable ports:")
	for i, p := range ports {
		fmt.Fprintf(out, "  [%d] %s - %s\n", i, p.Name, p.Description)
	}
	fmt.Fprint(out, "\nEnter port number (or full port name like COM3): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read port selection: %w", err)
	}
	return SelectPort(ports, line)
}
