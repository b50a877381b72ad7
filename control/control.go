// Package control implements the key-to-command dispatch loop: poll a key,
// suppress repeats, transmit the mapped byte, and always get a stop command
// out before the session ends.
package control

import (
	"context"
	"fmt"
	"log"
	"time"

	"roverctl/models"
	"roverctl/ui"
)

// Sender is the outbound side of a rover link.
type Sender interface {
	Send(models.Command) (string, error)
}

// KeyPoller reads the next pressed key without blocking and without echo.
// The platform-specific raw-read mechanics live behind this; ui.Poll is the
// production implementation.
type KeyPoller interface {
	Poll() (rune, bool)
}

// PollFunc adapts a plain function to the KeyPoller interface.
type PollFunc func() (rune, bool)

// Poll implements KeyPoller.
func (f PollFunc) Poll() (rune, bool) { return f() }

// Publisher receives telemetry events. A nil Publisher disables publishing.
type Publisher interface {
	Publish(models.Event)
}

// Controller owns one control session over an open link. Not safe for
// concurrent use; the loop is single-threaded and the link has exactly one
// writer.
type Controller struct {
	link     Sender
	keys     KeyPoller
	pub      Publisher
	interval time.Duration

	// lastKey suppresses repeat sends while a key is held down. Reset to a
	// different key the moment one is observed.
	lastKey rune

	// samples holds command->response round trips in milliseconds, for the
	// end-of-session latency summary. Only commands that got a reply count.
	samples []float64
}

// New creates a controller polling keys at the standard interval.
func New(link Sender, keys KeyPoller, pub Publisher) *Controller {
	return &Controller{
		link:     link,
		keys:     keys,
		pub:      pub,
		interval: models.PollInterval,
	}
}

// Run executes the control loop until the escape key is pressed or ctx is
// cancelled (keyboard interrupt). Both paths deliver a best-effort stop
// command before returning; Run never returns with the rover left moving on
// purpose.
func (c *Controller) Run(ctx context.Context) error {
	ui.PrintControls()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n\nInterrupted! Stopping rover...")
			c.Stop()
			return ctx.Err()
		case <-ticker.C:
			if c.step() {
				return nil
			}
		}
	}
}

// step handles one poll cycle. Returns true when the session should end.
func (c *Controller) step() bool {
	key, ok := c.keys.Poll()
	if !ok || key == c.lastKey {
		return false
	}
	c.lastKey = key

	if key == ui.KeyEsc {
		fmt.Println("\nExiting...")
		c.Stop()
		return true
	}
	if cmd, ok := models.LookupCommand(key); ok {
		c.dispatch(cmd)
		return false
	}
	if key == 'H' {
		ui.PrintControls()
	}
	// Anything else is no key this cycle.
	return false
}

// Stop sends the stop command, best effort. Bypasses repeat suppression so
// the stop byte goes out even right after an explicit 'X'.
func (c *Controller) Stop() {
	c.dispatch(models.Stop)
}

func (c *Controller) dispatch(cmd models.Command) {
	start := time.Now()
	resp, err := c.link.Send(cmd)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Sent: %c\n", byte(cmd))
	c.publish(models.Event{Kind: models.EventCommand, Command: cmd.String(), Timestamp: time.Now()})

	if resp != "" {
		fmt.Printf("Rover: %s\n", resp)
		c.publish(models.Event{Kind: models.EventResponse, Command: cmd.String(), Text: resp, Timestamp: time.Now()})
		c.samples = append(c.samples, float64(time.Since(start).Microseconds())/1000.0)
	}
}

func (c *Controller) publish(ev models.Event) {
	if c.pub != nil {
		c.pub.Publish(ev)
	}
}

// Summary returns the latency statistics collected this session.
func (c *Controller) Summary() LatencySummary {
	return Summarize(c.samples)
}
