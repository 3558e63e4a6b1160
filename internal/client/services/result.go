package services

// Result is the envelope every Coordinator operation returns.
//
// Success=false means Data is the zero value and Message says why.
// Success=true with a non-empty Message is a non-fatal advisory, such as
// serving cached data while offline.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func OkWithAdvisory[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// Stale reports whether a successful result carries an advisory.
func (r Result[T]) Stale() bool {
	return r.Success && r.Message != ""
}
