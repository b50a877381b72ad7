package ui

import (
	"sync"
	"unicode"

	"github.com/eiannone/keyboard"
)

// KeyEsc is the rune emitted on the channel when the escape key is pressed.
const KeyEsc rune = 27

// Singleton buffered channel and one reader goroutine to avoid multiple opens
// and to make Poll/DrainKeys non-blocking and reliable across phases.
var (
	keyCh     chan rune
	startOnce sync.Once
)

// StartKeyEvents returns a channel that emits single-key runes read without
// Enter and without echo. It initializes a single background reader the first
// time it is called. If opening the keyboard fails, an inert buffered channel
// is returned (it will not emit keys).
func StartKeyEvents() chan rune {
	startOnce.Do(func() {
		keyCh = make(chan rune, 64)
		if err := keyboard.Open(); err != nil {
			// Keyboard not available; keep a buffered channel that will never emit.
			return
		}
		go func() {
			defer keyboard.Close()
			for {
				char, key, err := keyboard.GetKey()
				if err != nil {
					close(keyCh)
					return
				}
				ev := char
				switch key {
				case 0:
					// plain character, use as-is
				case keyboard.KeyEsc, keyboard.KeyCtrlC:
					ev = KeyEsc
				default:
					// navigation/function keys carry no command meaning
					continue
				}
				// Non-blocking send so a slow consumer never stalls the
				// reader; excess events are dropped.
				select {
				case keyCh <- ev:
				default:
				}
			}
		}()
	})
	if keyCh == nil {
		keyCh = make(chan rune, 64)
	}
	return keyCh
}

// Poll returns the next pressed key without blocking. The second return is
// false when no key is pending this cycle. Letters are uppercased so the
// command alphabet is case-insensitive.
func Poll() (rune, bool) {
	select {
	case k, ok := <-StartKeyEvents():
		if !ok {
			return 0, false
		}
		return unicode.ToUpper(k), true
	default:
		return 0, false
	}
}

// DrainKeys consumes any immediately available keys to avoid accidental
// triggers when moving between phases.
func DrainKeys() {
	ch := StartKeyEvents()
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// NextRetryOrExit shows a green prompt and waits for a single 'R' (reconnect
// and run again) or ESC (exit). Returns the rune pressed.
func NextRetryOrExit() rune {
	Greenf("\nPress 'R' to reconnect, <ESC> to exit\n")
	DrainKeys()
	ch := StartKeyEvents()
	for k := range ch {
		if k == 'R' || k == 'r' {
			return 'R'
		}
		if k == KeyEsc {
			return KeyEsc
		}
	}
	return KeyEsc
}
