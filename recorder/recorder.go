package recorder

import "context"

// Recorder appends question/answer exchanges to a per-owner chat log. A
// recording failure must never take down the query that produced the answer;
// the orchestrator logs it and moves on.
type Recorder interface {
	Record(ctx context.Context, owner string, question string, answer string) error
	// List returns the owner's turns in creation order, oldest first; a
	// positive limit caps the page from the start of the log.
	List(ctx context.Context, owner string, limit int) ([]Turn, error)
}
