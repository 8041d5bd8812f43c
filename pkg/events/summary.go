package events

import (
	"fmt"
	"strings"
)

type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int

	Failures []Event

	Full []Event
}

func (s Summary) String() string {
	head := fmt.Sprintf("%d succeeded, %d skipped, %d failed", s.Succeeded, s.Skipped, s.Failed)
	if len(s.Failures) == 0 {
		return head
	}

	lines := make([]string, len(s.Failures))
	for i, f := range s.Failures {
		if f.Error != nil {
			lines[i] = fmt.Sprintf("- %s (%s)", f.Title, f.Error.Error())
		} else {
			lines[i] = fmt.Sprintf("- %s", f.Title)
		}
	}

	return head + "\n" + strings.Join(lines, "\n")
}
