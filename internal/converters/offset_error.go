package converters

import "fmt"

// Offset of a batch failure not tied to a single coordinate, same value as errors.NoOffset
const NoOffset = -1

// Error raised by an engine for one coordinate of a batch
type OffsetError struct {
	Offset int
	Err    error
}

func NewOffsetError(offset int, err error) *OffsetError {
	return &OffsetError{Offset: offset, Err: err}
}

func (e *OffsetError) Error() string {
	if e.Offset == NoOffset {
		return e.Err.Error()
	}
	return fmt.Sprintf("coordinate %d: %v", e.Offset, e.Err)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}
