// Package utils holds small string helpers shared by sinks and logging:
// [Preview] for bounded one-line excerpts and [JSONToString] for
// never-failing JSON rendering.
package utils
