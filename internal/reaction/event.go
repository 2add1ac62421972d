package reaction

import "fmt"

// Event identifies one of the competing stochastic processes.
type Event uint8

// The declaration order is the dispatch order: cumulative thresholds are
// accumulated in exactly this sequence.
const (
	LongRangeActivation Event = iota // lx
	KillMelanophore                  // sx: melanophore killed by a neighbouring xanthophore
	KillXanthophore                  // sm: xanthophore killed by a neighbouring melanophore
	BirthXanthophore                 // bx
	BirthMelanophore                 // bm
	DeathXanthophore                 // dx
	DeathMelanophore                 // dm
)

// NumEvents is the number of distinct events.
const NumEvents = 7

// Events returns all events in dispatch order.
func Events() [NumEvents]Event {
	return [NumEvents]Event{
		LongRangeActivation,
		KillMelanophore,
		KillXanthophore,
		BirthXanthophore,
		BirthMelanophore,
		DeathXanthophore,
		DeathMelanophore,
	}
}

var eventKeys = [NumEvents]string{"lx", "sx", "sm", "bx", "bm", "dx", "dm"}

var eventLabels = [NumEvents]string{
	"long-range activation",
	"short-range kill of melanophore",
	"short-range kill of xanthophore",
	"birth of xanthophore",
	"birth of melanophore",
	"death of xanthophore",
	"death of melanophore",
}

// String returns the short rate-constant key of the event ("lx", "sx", ...).
func (e Event) String() string {
	if e < NumEvents {
		return eventKeys[e]
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// Label returns a human readable description of the event.
func (e Event) Label() string {
	if e < NumEvents {
		return eventLabels[e]
	}
	return e.String()
}
