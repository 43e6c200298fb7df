package fetch

import "fmt"

type FailureKind string

const (
	SourceUnavailable FailureKind = "SourceUnavailable"
	DecodeFailure     FailureKind = "DecodeFailure"
)

// SourceError is a recoverable, per-source failure: the source contributes no nodes and the run continues.
type SourceError struct {
	Kind  FailureKind
	Index int
	URL   string
	Err   error
}

func (e *SourceError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: source %d: %v", e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: source %d (%s): %v", e.Kind, e.Index, e.URL, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Cause() error { return e.Err }
