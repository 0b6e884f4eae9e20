package recall

import "fmt"

type Stage string

const (
	// query pipeline stages
	StageEmbedding  Stage = "embedding"
	StageRetrieval  Stage = "retrieval"
	StageGeneration Stage = "generation"

	// ingestion and deletion hit the store without a retrieval
	StageStorage Stage = "storage"
)

// Failure carries the pipeline stage that took down a query, so the caller
// knows whether to retry the whole query, check backend connectivity, or fix
// the input. Stages are never retried inside the pipeline; a partial retry
// would feed a stale embedding into a fresh retrieval.
type Failure struct {
	Stage Stage
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed: %v", f.Stage, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func failure(stage Stage, err error) *Failure {
	return &Failure{Stage: stage, Err: err}
}
