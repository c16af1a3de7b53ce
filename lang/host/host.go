// Package host defines the interfaces through which the runtime calls back
// into the embedding host: fetching include bodies, rewriting include URLs,
// logging, and (the out-of-scope parser's only interface to the core)
// parsing a fetched body into a script model. It also defines Options, the
// single configuration record threaded through every exported entry point.
package host

import (
	"context"

	"github.com/craigahobbs/calcscript-go/lang/model"
)

// Response is the http-response-like value a Fetcher returns.
type Response interface {
	// OK reports whether the fetch succeeded (for HTTP, a 2xx status).
	OK() bool
	// StatusText returns a short human-readable status, used in error
	// messages when OK is false.
	StatusText() string
	// Text reads and returns the full response body as text.
	Text(ctx context.Context) (string, error)
}

// Fetcher fetches the content at url, for use by the include statement.
type Fetcher func(ctx context.Context, url string) (Response, error)

// URLRewriter rewrites a URL before it is fetched, e.g. to resolve it
// against a base URL or to redirect it entirely.
type URLRewriter func(url string) string

// Logger receives log lines: duration reports, function-failure notices and
// user debugLog output.
type Logger func(line string)

// ScriptParser is the out-of-scope external parser's interface to the core:
// it turns source text fetched from url into a script model, or fails with
// a ParserError. The runtime never constructs a ScriptParser itself; the
// host supplies one via Options so that include can parse fetched bodies.
type ScriptParser interface {
	Parse(ctx context.Context, url string, src []byte) (*model.Script, error)
}

// Options configures a single execution.
type Options struct {
	// MaxStatements bounds the number of statements a single execution may
	// run; <= 0 disables the quota. Zero value of an Options{} therefore
	// means "disabled" unless the caller has explicitly set a positive
	// value; ExecuteScript/ExecuteScriptAsync apply the documented default
	// of 10,000,000 when the caller passes a nil Options.
	MaxStatements int

	// StatementCount is reset to 0 by the entry point and incremented once
	// per executed statement. It must stay a single shared counter across
	// includes and nested function calls; lang/runtime achieves that by
	// taking this field's address once, at the entry point, and threading
	// that single *int through every nested Execute/Include/Call rather than
	// re-reading it off of whichever cloned Options happens to be in scope
	// (see lang/runtime's State.Counter), so host code can still read this
	// field directly after the top-level call returns.
	StatementCount int

	// LogFn, if set, receives duration reports, function-failure notices and
	// debugLog output.
	LogFn Logger

	// FetchFn, if set, is called to fetch include bodies.
	FetchFn Fetcher

	// URLFn, if set, rewrites an include URL before it is fetched.
	URLFn URLRewriter

	// Parser parses a fetched include body into a script model. The
	// original embedding this runtime is modeled on imports its parser as a
	// sibling module rather than passing it as a hook; Go has no such
	// ambient-import mechanism, so this field is this module's extension of
	// the option set (see DESIGN.md).
	Parser ScriptParser
}

// DefaultMaxStatements is applied by the entry points when the caller omits
// Options entirely.
const DefaultMaxStatements = 10_000_000

// Clone returns a shallow copy of o suitable for passing into an include's
// nested execution: same hooks and quota, StatementCount is NOT reset (the
// statement counter is shared across includes via State.Counter, not via
// this field), only URLFn is expected to be replaced by the caller
// afterwards.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{MaxStatements: DefaultMaxStatements}
	}
	cp := *o
	return &cp
}

// Log writes line via LogFn if configured; it is a no-op otherwise.
func (o *Options) Log(line string) {
	if o != nil && o.LogFn != nil {
		o.LogFn(line)
	}
}
