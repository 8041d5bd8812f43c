package events

import "slices"

// NewCollector records every event and forwards it to handler, which may be nil.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		Events:  make([]Event, 0),
		handler: handler,
	}
}

type Collector struct {
	Events  []Event
	handler Handler
}

func (c *Collector) Handle(event Event) {
	c.Events = append(c.Events, event)
	if c.handler != nil {
		c.handler.Handle(event)
	}
}

// Titles returns the titles of all tasks that appeared in the run log, in order.
func (c *Collector) Titles() []string {
	out := make([]string, 0)
	for _, event := range c.Events {
		if !slices.Contains(out, event.Title) {
			out = append(out, event.Title)
		}
	}
	return out
}

// Last returns the final event reported for title.
func (c *Collector) Last(title string) (Event, bool) {
	for i := len(c.Events) - 1; i >= 0; i-- {
		if c.Events[i].Title == title {
			return c.Events[i], true
		}
	}
	return Event{}, false
}

func (c *Collector) OfKind(kind Kind) []Event {
	out := make([]Event, 0)
	for _, event := range c.Events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}

func (c *Collector) HasKind(kind Kind) bool {
	for _, event := range c.Events {
		if event.Kind == kind {
			return true
		}
	}
	return false
}

func (c *Collector) Clear() {
	c.Events = make([]Event, 0)
}

func (c *Collector) Summary() *Summary {
	out := new(Summary)

	for _, event := range c.Events {
		switch event.Kind {
		case TaskSucceeded:
			out.Succeeded++
		case TaskSkipped:
			out.Skipped++
		case TaskFailed:
			out.Failed++
			out.Failures = append(out.Failures, event)
		}
	}

	out.Full = slices.Clone(c.Events)

	return out
}
