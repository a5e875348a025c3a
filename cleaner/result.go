package cleaner

import "fmt"

// Failure is a message that could not be changed
type Failure struct {
	Uid uint32
	Err error
}

// BatchResult is the tally of an operation applied to each message in turn.
// A failure on one message does not stop the others.
type BatchResult struct {
	Total     int
	Succeeded int
	Failures  []Failure
}

func (r BatchResult) Failed() int {
	return len(r.Failures)
}

func (r BatchResult) String() string {
	if r.Failed() == 0 {
		return fmt.Sprintf("%d/%d succeeded", r.Succeeded, r.Total)
	}
	return fmt.Sprintf("%d/%d succeeded, %d failed", r.Succeeded, r.Total, r.Failed())
}
