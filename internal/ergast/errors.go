package ergast

import "fmt"

// NetworkError is returned when the API could not be reached or did not answer with a 2xx status.
type NetworkError struct {
	Timeout bool  // Timeout is set when the request gave up waiting on the API
	Err     error // Err is the underlying transport or status error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timed out downloading next race: %v", e.Err)
	}
	return fmt.Sprintf("error downloading next race: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataShapeError is returned when a response does not have the shape of an Ergast race table.
type DataShapeError struct {
	Reason string
}

func (e *DataShapeError) Error() string {
	return "unexpected race data: " + e.Reason
}
