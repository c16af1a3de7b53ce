package maincmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
	"gopkg.in/yaml.v3"

	"github.com/craigahobbs/calcscript-go/internal/demoparser"
	lenv "github.com/craigahobbs/calcscript-go/lang/env"
	"github.com/craigahobbs/calcscript-go/lang/host"
	"github.com/craigahobbs/calcscript-go/lang/runtime"
	"github.com/craigahobbs/calcscript-go/lang/stdlib"
	"github.com/craigahobbs/calcscript-go/lang/values"
)

// fileOptions is the shape of the YAML document --options-file loads: the
// execution options reduced to the subset worth driving from a static
// fixture in the example CLI.
type fileOptions struct {
	MaxStatements int `yaml:"maxStatements"`
}

// envOptions is populated by caarlos0/env/v6 from CALCSCRIPT_MAX_STATEMENTS,
// overriding fileOptions, itself overridden in turn by an explicit
// --max-statements flag (see Run).
type envOptions struct {
	MaxStatements int `env:"CALCSCRIPT_MAX_STATEMENTS" envDefault:"0"`
}

// Run parses the script at args[0] with the demo line-oriented parser and
// executes it, printing the result to stdout. Options are assembled in
// increasing priority: host.DefaultMaxStatements, then --options-file, then
// CALCSCRIPT_MAX_STATEMENTS, then --max-statements.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, fmt.Errorf("reading %s: %w", path, err))
	}

	opts, err := c.buildOptions(stdio)
	if err != nil {
		return printError(stdio, err)
	}

	script, err := (demoparser.Parser{}).Parse(ctx, path, src)
	if err != nil {
		return printError(stdio, err)
	}

	builtins := stdlib.Builtins()
	globals := lenv.NewTable(0)

	var result values.Value
	if c.Async {
		result, err = runtime.ExecuteScriptAsync(ctx, script, globals, builtins, opts)
	} else {
		result, err = runtime.ExecuteScript(ctx, script, globals, builtins, opts)
	}
	if err != nil {
		return printError(stdio, err)
	}

	fmt.Fprintln(stdio.Stdout, result.String())
	return nil
}

func (c *Cmd) buildOptions(stdio mainer.Stdio) (*host.Options, error) {
	opts := &host.Options{
		MaxStatements: host.DefaultMaxStatements,
		LogFn:         func(line string) { fmt.Fprintln(stdio.Stderr, line) },
		FetchFn:       fetchURL,
		Parser:        demoparser.Parser{},
	}

	if c.OptionsFile != "" {
		data, err := os.ReadFile(c.OptionsFile)
		if err != nil {
			return nil, fmt.Errorf("reading options file %s: %w", c.OptionsFile, err)
		}
		var fo fileOptions
		if err := yaml.Unmarshal(data, &fo); err != nil {
			return nil, fmt.Errorf("parsing options file %s: %w", c.OptionsFile, err)
		}
		if fo.MaxStatements != 0 {
			opts.MaxStatements = fo.MaxStatements
		}
	}

	var eo envOptions
	if err := env.Parse(&eo); err != nil {
		return nil, fmt.Errorf("parsing environment options: %w", err)
	}
	if eo.MaxStatements != 0 {
		opts.MaxStatements = eo.MaxStatements
	}

	if c.flags["max-statements"] {
		opts.MaxStatements = c.MaxStatements
	}

	return opts, nil
}

// fetchURL is the example CLI's host.Fetcher: plain files for local
// testing (include is host-defined, so nothing requires network
// transport), and http(s) via net/http otherwise.
func fetchURL(ctx context.Context, url string) (host.Response, error) {
	if len(url) >= 7 && url[:7] == "file://" {
		data, err := os.ReadFile(url[7:])
		if err != nil {
			return fileResponse{}, err
		}
		return fileResponse{body: string(data), ok: true}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	return httpResponse{resp: resp}, nil
}

type fileResponse struct {
	body string
	ok   bool
}

func (r fileResponse) OK() bool          { return r.ok }
func (r fileResponse) StatusText() string {
	if r.ok {
		return "OK"
	}
	return "not found"
}
func (r fileResponse) Text(context.Context) (string, error) { return r.body, nil }

type httpResponse struct {
	resp *http.Response
}

func (r httpResponse) OK() bool           { return r.resp.StatusCode >= 200 && r.resp.StatusCode < 300 }
func (r httpResponse) StatusText() string { return r.resp.Status }
func (r httpResponse) Text(_ context.Context) (string, error) {
	defer r.resp.Body.Close()
	b, err := io.ReadAll(r.resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
