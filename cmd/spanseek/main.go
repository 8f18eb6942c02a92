// Command spanseek prints the delimiter blocks or XML elements found in a
// file.
//
//	spanseek blocks   [-start {] [-end }] [-print span|text|inner] [-json] FILE|-
//	spanseek elements -tag name[:priority] ... [-format text|json|markdown] [-lenient] [-color auto|always|never] FILE|-
//	spanseek decode   -tag name [-policy abort|skip] [-size-hint N] [-lenient] [-require ATTR] FILE|-
//
// Settings are read from .env and SPANSEEK_* environment variables; flags
// override both.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/leofalp/spanseek/core/block"
	"github.com/leofalp/spanseek/core/element"
	"github.com/leofalp/spanseek/internal/config"
	"github.com/leofalp/spanseek/internal/utils"
	"github.com/leofalp/spanseek/providers/observability/slogobs"
	"github.com/leofalp/spanseek/providers/sink/console"
	"github.com/leofalp/spanseek/providers/sink/markdown"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
	exitConfig = 3
)

const usage = `usage:
  spanseek blocks   [flags] FILE|-
  spanseek elements [flags] FILE|-
  spanseek decode   [flags] FILE|-
run "spanseek <command> -h" for flags`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Environ()))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, environ []string) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	cmd := &command{stdin: stdin, stdout: stdout, stderr: stderr, environ: environ}
	switch args[0] {
	case "blocks":
		return cmd.blocks(args[1:])
	case "elements":
		return cmd.elements(args[1:])
	case "decode":
		return cmd.decode(args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", args[0], usage)
		return exitUsage
	}
}

type command struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	environ []string

	cfg      config.Config
	envFile  string
	observer *slogobs.Observer
}

// flagSet registers the flags shared by every subcommand.
func (c *command) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&c.envFile, "env", ".env", "dotenv file with SPANSEEK_* settings (missing file is ignored)")
	fs.String("log-level", "", "log level: debug, info, warn, error (overrides SPANSEEK_LOG_LEVEL)")
	fs.String("log-format", "", "log format: compact or json (overrides SPANSEEK_LOG_FORMAT)")
	return fs
}

// setup parses args, loads configuration, applies explicitly set flags on top
// and returns the document named by the single positional argument. When ok
// is false the command must exit with code.
func (c *command) setup(fs *flag.FlagSet, args []string) (doc string, code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", exitOK, false
		}
		return "", exitUsage, false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "%s: expected exactly one FILE or -\n", fs.Name())
		return "", exitUsage, false
	}

	cfg, err := config.Load(c.envFile, c.environ)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return "", exitConfig, false
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "log-level":
			cfg.LogLevel = v
		case "log-format":
			cfg.LogFormat = v
		case "policy":
			cfg.Policy = v
		case "format":
			cfg.Format = v
		case "lenient":
			cfg.Lenient = v == "true"
		case "size-hint":
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				flagErr = fmt.Errorf("-size-hint must be a non-negative integer, got %q", v)
			}
			cfg.SizeHint = n
		}
	})
	if flagErr != nil {
		fmt.Fprintln(c.stderr, flagErr)
		return "", exitUsage, false
	}
	c.cfg = cfg
	c.observer = slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(cfg.LogFormat)),
		slogobs.WithLevel(slogobs.ParseLogLevel(cfg.LogLevel)),
		slogobs.WithOutput(c.stderr),
	)

	doc, err = c.load(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return "", exitConfig, false
	}
	return doc, exitOK, true
}

// load reads the whole document from path, or from stdin for "-". A leading
// byte order mark selects UTF-16 or is dropped for UTF-8; offsets refer to the
// decoded UTF-8 text.
func (c *command) load(path string) (string, error) {
	src := c.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(transform.NewReader(src, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("load %s: not valid UTF-8", path)
	}
	return string(data), nil
}

func (c *command) elementOptions() []element.Option {
	opts := []element.Option{
		element.WithPolicy(element.ParsePolicy(c.cfg.Policy)),
		element.WithObserver(c.observer),
	}
	if c.cfg.SizeHint > 0 {
		opts = append(opts, element.WithSizeHint(c.cfg.SizeHint))
	}
	if c.cfg.Lenient {
		opts = append(opts, element.WithLenient())
	}
	return opts
}

func singleRune(flagName, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) {
		return 0, fmt.Errorf("-%s must be a single character, got %q", flagName, s)
	}
	return r, nil
}

func (c *command) blocks(args []string) int {
	fs := c.flagSet("blocks")
	startFlag := fs.String("start", "{", "start delimiter (one character)")
	endFlag := fs.String("end", "}", "end delimiter (one character)")
	printFlag := fs.String("print", "span", "what to print per block: span, text or inner")
	jsonFlag := fs.Bool("json", false, "decode {...} blocks as JSON (with repair) and print one object per line; excludes -start, -end and -print")

	doc, code, ok := c.setup(fs, args)
	if !ok {
		return code
	}

	if *jsonFlag {
		var conflict string
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "start", "end", "print":
				if conflict == "" {
					conflict = f.Name
				}
			}
		})
		if conflict != "" {
			fmt.Fprintf(c.stderr, "blocks: -%s cannot be combined with -json, which always reads {...} blocks\n", conflict)
			return exitUsage
		}

		values, err := block.DecodeJSON[any](doc)
		for _, v := range values {
			fmt.Fprintln(c.stdout, utils.JSONToString(v))
		}
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return exitFailed
		}
		return exitOK
	}

	start, err := singleRune("start", *startFlag)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitUsage
	}
	end, err := singleRune("end", *endFlag)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitUsage
	}

	spans, err := block.Seek(doc, start, end)
	if errors.Is(err, block.ErrSameDelimiters) {
		fmt.Fprintln(c.stderr, err)
		return exitUsage
	}
	for _, s := range spans {
		switch *printFlag {
		case "text":
			fmt.Fprintln(c.stdout, s.Slice(doc))
		case "inner":
			fmt.Fprintln(c.stdout, s.Inner(doc))
		default:
			fmt.Fprintf(c.stdout, "%d\t%d\n", s.Start, s.End)
		}
	}
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	return exitOK
}

// tagList collects repeated -tag name[:priority] flags.
type tagList []element.TagPriority

func (l *tagList) String() string {
	parts := make([]string, 0, len(*l))
	for _, tp := range *l {
		parts = append(parts, fmt.Sprintf("%s:%d", tp.Tag, tp.Priority))
	}
	return strings.Join(parts, ",")
}

func (l *tagList) Set(v string) error {
	name, prio, hasPrio := strings.Cut(v, ":")
	tp := element.TagPriority{Tag: strings.TrimSpace(name)}
	if tp.Tag == "" {
		return errors.New("empty tag name")
	}
	if hasPrio {
		n, err := strconv.Atoi(prio)
		if err != nil {
			return fmt.Errorf("priority of %q: %w", tp.Tag, err)
		}
		tp.Priority = n
	}
	*l = append(*l, tp)
	return nil
}

func (c *command) elements(args []string) int {
	fs := c.flagSet("elements")
	var tags tagList
	fs.Var(&tags, "tag", "element to report, as name or name:priority (repeatable)")
	fs.String("format", "", "output: text, json or markdown (overrides SPANSEEK_FORMAT)")
	fs.Bool("lenient", false, "accept HTML-flavoured markup")
	colorFlag := fs.String("color", "auto", "highlight text output: auto, always or never")

	doc, code, ok := c.setup(fs, args)
	if !ok {
		return code
	}
	if len(tags) == 0 {
		fmt.Fprintln(c.stderr, "elements: at least one -tag is required")
		return exitUsage
	}

	var sink element.Sink
	switch c.cfg.Format {
	case "json":
		sink = console.New(c.stdout, console.WithFormat(console.FormatJSON))
	case "markdown":
		sink = markdown.New(c.stdout, markdown.WithSkipEmpty())
	case "text", "":
		var opts []console.Option
		switch *colorFlag {
		case "always":
			opts = append(opts, console.WithColor())
		case "auto":
			if c.stdout == io.Writer(os.Stdout) && !color.NoColor {
				opts = append(opts, console.WithColor())
			}
		case "never":
		default:
			fmt.Fprintf(c.stderr, "elements: unknown color mode %q\n", *colorFlag)
			return exitUsage
		}
		sink = console.New(c.stdout, opts...)
	default:
		fmt.Fprintf(c.stderr, "elements: unknown format %q\n", c.cfg.Format)
		return exitUsage
	}

	if err := element.ExtractRaw(doc, tags, sink, c.elementOptions()...); err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	return exitOK
}

func (c *command) decode(args []string) int {
	fs := c.flagSet("decode")
	tag := fs.String("tag", "", "element to decode (required)")
	fs.String("policy", "", "on a bad element: abort or skip (overrides SPANSEEK_POLICY)")
	fs.Int("size-hint", 0, "expected number of elements (capacity hint only)")
	fs.Bool("lenient", false, "accept HTML-flavoured markup")
	require := fs.String("require", "", "treat elements without this attribute as bad")

	doc, code, ok := c.setup(fs, args)
	if !ok {
		return code
	}
	if *tag == "" {
		fmt.Fprintln(c.stderr, "decode: -tag is required")
		return exitUsage
	}
	if p := c.cfg.Policy; p != "abort" && p != "skip" {
		fmt.Fprintf(c.stderr, "decode: unknown policy %q\n", p)
		return exitUsage
	}

	schema := element.XML[Node]()
	if *require != "" {
		schema = element.Validated(schema, requireAttr(*require))
	}

	nodes, err := element.ExtractWith(doc, *tag, schema, c.elementOptions()...)
	for _, n := range nodes {
		fmt.Fprintln(c.stdout, utils.JSONToString(n))
	}
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return exitFailed
	}
	return exitOK
}
