// Package sink groups the element.Sink implementations used by inspection
// tooling: [console] prints one line per match and [markdown] renders matched
// (X)HTML fragments as Markdown.
//
// [console]: https://pkg.go.dev/github.com/leofalp/spanseek/providers/sink/console
// [markdown]: https://pkg.go.dev/github.com/leofalp/spanseek/providers/sink/markdown
package sink
