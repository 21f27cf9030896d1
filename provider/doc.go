// Package provider defines small generic interfaces for swappable backends
// and the middleware that wraps them.
//
// Two interaction patterns are defined:
//   - RequestResponse[I, O]: one input, one output (run a command to completion)
//   - Stream[I, O]: one input, many outputs pulled through an Iterator
//     (the lines of a running command)
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse provider. Use Chain to compose
// several:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("procout"),
//	)(rawProvider)
//
// Adapt changes the input and output types of a provider, so that a generic
// backend can serve a domain-specific interface.
package provider
