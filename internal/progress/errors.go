package progress

import "errors"

var (
	// ErrRegionNotFound is returned for a region id the engine does not know.
	ErrRegionNotFound = errors.New("invalid region")

	// ErrRegionLocked is returned when due questions are requested for a
	// region that has not been unlocked.
	ErrRegionLocked = errors.New("region locked")

	// ErrPersistence wraps a failed write to the progress store. In-memory
	// state is unchanged when it is returned, so the call can be retried.
	ErrPersistence = errors.New("progress: persistence failed")

	// ErrNotReady is returned when the engine is used before Initialize.
	ErrNotReady = errors.New("progress: engine not initialized")
)
