// Package observability defines the logging, metrics and tracing interfaces
// that spanseek components report through.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into one injectable
// dependency. A nil Provider is valid wherever one is accepted and disables
// reporting. The semconv.go file lists the attribute keys, span names and
// metric names used by the extractors.
package observability
