package provider

import "context"

// Iterator provides pull-based sequential access to a stream of values.
// The consumer calls Next() to retrieve values one at a time.
// Close must be called when done to release resources.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Collect drains it into a slice and closes it. On error the values read so
// far are returned with the error.
func Collect[T any](ctx context.Context, it Iterator[T]) (values []T, err error) {
	defer func() {
		if cerr := it.Close(); err == nil {
			err = cerr
		}
	}()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return values, err
		}
		if !ok {
			return values, nil
		}
		values = append(values, v)
	}
}
