package provider

import "context"

// RequestResponse represents a provider that takes one input and returns one
// output, such as running a command to completion.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Stream represents a provider that takes one input and returns multiple
// outputs, such as the lines of a running command.
type Stream[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (Iterator[O], error)
}
