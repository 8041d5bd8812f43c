package events

// Kind is the lifecycle transition of a task.
type Kind uint8

const (
	TaskStarted Kind = iota
	TaskSkipped
	TaskSucceeded
	TaskFailed
)

func (k Kind) String() string {
	switch k {
	case TaskStarted:
		return "pending"
	case TaskSkipped:
		return "skipped"
	case TaskSucceeded:
		return "success"
	case TaskFailed:
		return "failure"
	default:
		return "unknown"
	}
}

// Event is reported by the task sequencer for every visible transition.
type Event struct {
	Kind  Kind
	Title string

	// Reason is set for TaskSkipped.
	Reason string

	// Error is set for TaskFailed.
	Error error
}

// Handler receives events. Implementations decide how to render them.
type Handler interface {
	Handle(event Event)
}
