package serial

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial endpoint exposed by the host OS.
//
// Description is best-effort: the enumerator fills it from USB/driver
// metadata when available, and discovery matches robot identifiers against
// it. The glob fallbacks can only supply the device name.
type PortInfo struct {
	Name        string
	Description string
}

// ListPorts returns a best-effort list of available serial endpoints.
//
// Supported:
// - Windows: COM ports (e.g. "COM3")
// - Linux: /dev/ttyUSB*, /dev/ttyACM*, /dev/rfcomm*
// - macOS (darwin): /dev/cu.* and /dev/tty.*
//
// The returned slice is sorted by name and de-duplicated.
func ListPorts() []PortInfo {
	// First try the cross-platform enumerator (best when available).
	if ports, err := enumerator.GetDetailedPortsList(); err == nil && len(ports) > 0 {
		out := make([]PortInfo, 0, len(ports))
		seen := make(map[string]struct{}, len(ports))
		for _, p := range ports {
			if p == nil || p.Name == "" {
				continue
			}
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			desc := p.Product
			if desc == "" && p.IsUSB {
				desc = "USB " + p.VID + ":" + p.PID
			}
			out = append(out, PortInfo{Name: p.Name, Description: desc})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}

	// Fallbacks when the enumerator returns nothing.
	switch runtime.GOOS {
	case "windows":
		// Windows enumeration failing usually means no ports at all; there is
		// no filesystem namespace to glob.
		return nil
	case "darwin":
		// Prefer "cu" devices on macOS for outgoing connections; keep "tty"
		// as well.
		return listByGlob("/dev/cu.*", "/dev/tty.*")
	default:
		// Linux/BSD-ish: common USB serial and Bluetooth RFCOMM patterns.
		return listByGlob("/dev/ttyUSB*", "/dev/ttyACM*", "/dev/rfcomm*")
	}
}

// listByGlob expands filesystem glob patterns into a stable, de-duplicated
// list of name-only entries.
func listByGlob(patterns ...string) []PortInfo {
	seen := map[string]struct{}{}
	out := make([]PortInfo, 0, 16)
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		for _, m := range matches {
			if m == "" {
				continue
			}
			// Skip non-existent entries (in case of races).
			if _, err := os.Stat(m); err != nil {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, PortInfo{Name: m})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
