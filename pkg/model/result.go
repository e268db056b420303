package model

// Result is the envelope of every response of the customer service, and the shape handed to
// presentation code: either Success with Data, or a failure with an Error reason.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps a successful payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Failed returns a failure result with the given reason.
func Failed[T any](reason string) Result[T] {
	return Result[T]{Error: reason}
}

// ResultOf converts a Go (value, error) pair into a result.
func ResultOf[T any](data T, err error) Result[T] {
	if err != nil {
		return Failed[T](err.Error())
	}
	return Ok(data)
}
