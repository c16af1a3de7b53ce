package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/model"
	"github.com/craigahobbs/calcscript-go/lang/urlutil"
)

// Include implements the `include` statement, running the fetched script
// synchronously. Grounded on the teacher's module-loading path
// (lang/compiler's handling of imports), generalized from resolving a
// sibling Go package to fetching and parsing a URL through host hooks.
func Include(ctx context.Context, s *model.IncludeStmt, st *State) error {
	url, statements, opts, err := fetchInclude(ctx, s, st)
	if err != nil {
		return err
	}
	_, err = Execute(ctx, statements, st.withOpts(opts))
	if err != nil {
		return reprefixParserError(err, url)
	}
	return nil
}

// IncludeAsync is Include's async mirror, running the fetched script's
// top-level statements through ExecuteAsync so nested async calls inside an
// included script keep suspending cooperatively.
func IncludeAsync(ctx context.Context, s *model.IncludeStmt, st *State) error {
	url, statements, opts, err := fetchInclude(ctx, s, st)
	if err != nil {
		return err
	}
	_, err = ExecuteAsync(ctx, statements, st.withOpts(opts))
	if err != nil {
		return reprefixParserError(err, url)
	}
	return nil
}

// fetchInclude performs the fetch-and-parse steps shared by both the sync
// and async statement executors: resolving the effective URL, fetching it,
// and parsing the body. It returns the effective URL (for error prefixing),
// the parsed top-level statements, and an Options clone whose URLFn
// resolves further relative includes against this URL's base.
func fetchInclude(ctx context.Context, s *model.IncludeStmt, st *State) (string, []model.Statement, *host.Options, error) {
	url := s.URL
	if st.Opts.URLFn != nil {
		url = st.Opts.URLFn(url)
	}

	if st.Opts.FetchFn == nil {
		return "", nil, nil, errs.NewRuntimeError(`Include of "%s" failed`, url)
	}
	resp, fetchErr := st.Opts.FetchFn(ctx, url)
	if fetchErr != nil || resp == nil || !resp.OK() {
		msg := ""
		if resp != nil {
			msg = resp.StatusText()
		} else if fetchErr != nil {
			msg = fetchErr.Error()
		}
		if msg != "" {
			return "", nil, nil, errs.NewRuntimeError(`Include of "%s" failed with error: %s`, url, msg)
		}
		return "", nil, nil, errs.NewRuntimeError(`Include of "%s" failed`, url)
	}

	body, readErr := resp.Text(ctx)
	if readErr != nil {
		return "", nil, nil, errs.NewRuntimeError(`Include of "%s" failed with error: %s`, url, readErr.Error())
	}

	if st.Opts.Parser == nil {
		return "", nil, nil, errs.NewRuntimeError(`Include of "%s" failed with error: %s`, url, "no script parser configured")
	}
	script, parseErr := st.Opts.Parser.Parse(ctx, url, []byte(body))
	if parseErr != nil {
		var perr *errs.ParserError
		if errors.As(parseErr, &perr) {
			return "", nil, nil, perr.WithPrefix(fmt.Sprintf("Included from %q", url))
		}
		return "", nil, nil, parseErr
	}

	base := url
	opts := st.Opts.Clone()
	opts.URLFn = func(u string) string { return urlutil.Resolve(base, u) }

	return url, script.Statements, opts, nil
}

// reprefixParserError annotates a ParserError surfacing from within an
// included script's own execution (e.g. a deeper nested include) with this
// include's URL, chaining "Included from \"U\"" prefixes outward.
func reprefixParserError(err error, url string) error {
	var perr *errs.ParserError
	if errors.As(err, &perr) {
		return perr.WithPrefix(fmt.Sprintf("Included from %q", url))
	}
	return err
}
