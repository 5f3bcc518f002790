package driver

import "time"

type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent marks a boundary of one of the stages load, parse, bind, refine.
// Elapsed is set on PhaseEnd only.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver is called synchronously from the goroutine running Check.
type PhaseObserver func(PhaseEvent)
