// Package gesture tells a single tap on a calendar day from a double tap.
package gesture

import (
	"time"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// DoubleTapWindow is the default interval within which a second tap on the
// same day confirms it.
const DoubleTapWindow = 300 * time.Millisecond

type Action int

const (
	// Select moves the selection to the tapped day.
	Select Action = iota
	// Confirm asks the owner to open a blank creation form for the day.
	Confirm
)

func (a Action) String() string {
	if a == Confirm {
		return "confirm"
	}

	return "select"
}

type Event struct {
	Action Action
	Date   time.Time
}

type Machine struct {
	window   time.Duration
	selected time.Time
	lastTap  time.Time
	lastDate time.Time
	tapped   bool
}

// New starts with selected as the current day. A non-positive window falls
// back to DoubleTapWindow.
func New(window time.Duration, selected time.Time) Machine {
	if window <= 0 {
		window = DoubleTapWindow
	}

	return Machine{window: window, selected: ledger.Day(selected)}
}

// Tap records a tap on day at time at. A tap is a confirm only when the
// previous tap hit the same day less than the window ago. The last tap is
// kept after a confirm, so a third quick tap confirms again.
func (m Machine) Tap(at, day time.Time) (Machine, Event) {
	day = ledger.Day(day)

	confirm := m.tapped && day.Equal(m.lastDate) && at.Sub(m.lastTap) < m.window

	if confirm {
		return m, Event{Action: Confirm, Date: day}
	}

	m.selected = day
	m.lastTap = at
	m.lastDate = day
	m.tapped = true

	return m, Event{Action: Select, Date: day}
}

func (m Machine) Selected() time.Time   { return m.selected }
func (m Machine) Window() time.Duration { return m.window }
