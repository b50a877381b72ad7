package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"roverctl/control"
	"roverctl/internal/monitor"
	"roverctl/models"
	serialpkg "roverctl/serial"
	"roverctl/ui"
)

// App version variables. Set these at build time with -ldflags if desired.
var (
	AppVersion = "dev"
	AppBuild   = "local"
)

func main() {
	var (
		port        string
		debug       bool
		monitorAddr string
	)

	// Print a plain-text version and exit before any other output so it is
	// always visible in CI and quick checks.
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v":
			fmt.Printf("%s [build %s]\n", AppVersion, AppBuild)
			return
		case "--debug", "-d":
			debug = true
		case "--port", "-p":
			if i+1 < len(args) {
				i++
				port = args[i]
			}
		case "--monitor":
			if i+1 < len(args) {
				i++
				monitorAddr = args[i]
			}
		default:
			fmt.Println("Usage: roverctl [-v] [-d] [-p PORT] [--monitor ADDR]")
			return
		}
	}

	// Route the standard logger output through our red writer so errors are
	// visually distinct from command echo.
	log.SetFlags(0)
	log.SetOutput(ui.NewRedWriter(os.Stderr))

	// Optional read-only telemetry stream.
	var pub control.Publisher
	if monitorAddr != "" {
		hub := monitor.NewHub()
		srv := monitor.NewServer(hub)
		go func() {
			if err := srv.ListenAndServe(monitorAddr); err != nil {
				log.Printf("Monitor server stopped: %v", err)
			}
		}()
		ui.Greenf("Monitor listening on http://%s\n", monitorAddr)
		pub = hub
	}

	for {
		ui.ClearScreen()
		ui.Greenf("ESP32 4WD Rover - PC Controller %s [build %s]\n", AppVersion, AppBuild)
		ui.Greenf("--------------------------------------------\n")

		runSession(port, debug, pub)

		// Single-key prompt so 'R'/'ESC' work without Enter.
		if ui.NextRetryOrExit() == ui.KeyEsc {
			break
		}
	}

	fmt.Println("\nGoodbye!")
}

// runSession discovers an endpoint, connects, and runs one control loop.
// Every failure is reported and returns to the caller's retry prompt; nothing
// here is fatal.
func runSession(port string, debug bool, pub control.Publisher) {
	name := port
	if name == "" {
		var err error
		name, err = serialpkg.DiscoverPort(os.Stdin, os.Stdout)
		if err != nil {
			log.Printf("Error: %v", err)
			return
		}
	}

	fmt.Printf("\nConnecting to %s...\n", name)
	link, err := serialpkg.Open(models.DefaultSettings(name))
	if err != nil {
		log.Printf("Error connecting: %v", err)
		printTroubleshooting()
		return
	}
	defer func() { _ = link.Close() }()
	ui.Greenf("Connected to ESP32 4WD Rover!\n")
	publish(pub, models.Event{Kind: models.EventStatus, Text: "connected to " + name, Timestamp: time.Now()})

	// An external SIGINT (kill -INT) cancels the loop; Ctrl+C pressed in the
	// terminal arrives through the raw keyboard reader instead and is handled
	// like ESC inside the loop. Both paths deliver the stop command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := control.New(link, control.PollFunc(ui.Poll), pub)
	if err := ctrl.Run(ctx); err != nil {
		ui.Warningf("Session ended: %v\n", err)
	}

	if err := link.Close(); err != nil {
		log.Printf("Error closing port: %v", err)
	}
	fmt.Println("Disconnected from rover")
	publish(pub, models.Event{Kind: models.EventStatus, Text: "disconnected", Timestamp: time.Now()})
	ui.Debugf(debug, "Session latency: %s\n", ctrl.Summary())
}

func publish(pub control.Publisher, ev models.Event) {
	if pub != nil {
		pub.Publish(ev)
	}
}

func printTroubleshooting() {
	fmt.Println("\nFailed to connect to rover.")
	fmt.Println("\nTroubleshooting:")
	fmt.Println("1. Make sure the rover is powered on")
	fmt.Println("2. Pair with 'ESP32_4WD_Robot' in Bluetooth settings first")
	fmt.Println("3. Check that the correct COM port is selected")
	fmt.Println("4. On Windows, you may need to check Device Manager")
	fmt.Println("5. On Linux, you may need: sudo usermod -a -G dialout $USER")
}
