package core

type ResponseStatus string

const (
	ResponseStatusSuccess ResponseStatus = "SUCCESS"
	ResponseStatusError   ResponseStatus = "ERROR"
)

// Response is the uniform result of every remote call. Status is
// ResponseStatusSuccess iff Error is nil.
type Response[T any] struct {
	Data   T
	Status ResponseStatus
	Error  error
}

func Success[T any](data T) Response[T] {
	return Response[T]{Data: data, Status: ResponseStatusSuccess}
}

// Failure builds an error response. The fallback generator supplies Data so
// callers never need a nil check before looking at Status.
func Failure[T any](err error, fallback func() T) Response[T] {
	if err == nil {
		err = &TransportFailure{Kind: FailureUnknown}
	}
	var data T
	if fallback != nil {
		data = fallback()
	}
	return Response[T]{Data: data, Status: ResponseStatusError, Error: err}
}

func (r Response[T]) OK() bool {
	return r.Status == ResponseStatusSuccess && r.Error == nil
}

// ClassifiedError is the provider-specific attachment of an error response.
type ClassifiedError[C comparable] struct {
	Code     C
	Internal bool
}
