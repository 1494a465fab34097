// Package trace provides the optimizer's debug-only diagnostic surface
// (spec.md §6): a textual dump of reaching-definitions entries and a
// per-iteration "changed" trace. Adapted from the teacher's much larger
// internal/trace package down to the two event shapes the driver
// actually emits — a Level, an Event, and a Tracer interface with a
// zero-overhead Nop implementation, so that disabling tracing can never
// perturb the optimizer's output.
package trace

// Level controls how much diagnostic detail a Tracer records.
type Level uint8

const (
	// Off emits no events at all.
	Off Level = iota
	// Phase emits one event per driver iteration ("changed: true/false").
	Phase
	// Detail additionally emits a CFA dump per unit per iteration.
	Detail
)

// String renders l for CLI flag help text and config echoing.
func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Phase:
		return "phase"
	case Detail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseLevel parses a Level from its String form; unrecognized input
// defaults to Off.
func ParseLevel(s string) Level {
	switch s {
	case "phase":
		return Phase
	case "detail":
		return Detail
	default:
		return Off
	}
}

// Event is one diagnostic emission from the driver.
type Event struct {
	// Unit is the name of the function/method/toplevel body being
	// optimized (ir.Unit.Name).
	Unit string
	// Iteration is the 0-based fixed-point iteration number.
	Iteration int
	// Changed reports whether this iteration made any change.
	Changed bool
	// CFADump is a rendered reaching-definitions report, populated only
	// at Level Detail.
	CFADump string
}

// Tracer receives Events from the driver. Implementations must not
// block the caller for long since the driver is single-threaded per
// unit (spec.md §5).
type Tracer interface {
	Trace(Event)
	Level() Level
}

// nopTracer discards every event; Nop is its shared instance.
type nopTracer struct{}

func (nopTracer) Trace(Event)  {}
func (nopTracer) Level() Level { return Off }

// Nop is the zero-overhead default Tracer.
var Nop Tracer = nopTracer{}

// Collector is a simple in-memory Tracer used by the CLI's optimize
// command to record the events the driver emits.
type Collector struct {
	level  Level
	Events []Event
}

// NewCollector returns a Collector that records events at or below lvl.
func NewCollector(lvl Level) *Collector {
	return &Collector{level: lvl}
}

func (c *Collector) Level() Level { return c.level }

func (c *Collector) Trace(e Event) {
	if c.level == Off {
		return
	}
	if c.level == Phase {
		e.CFADump = ""
	}
	c.Events = append(c.Events, e)
}
