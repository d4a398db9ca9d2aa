package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/tim-hardcastle/wordscript/source/ast"
	"github.com/tim-hardcastle/wordscript/source/registry"
	"github.com/tim-hardcastle/wordscript/source/repl"
	"github.com/tim-hardcastle/wordscript/source/settings"
	"github.com/tim-hardcastle/wordscript/source/stdlib"
	"github.com/tim-hardcastle/wordscript/source/text"
	"github.com/tim-hardcastle/wordscript/source/ws"
)

func main() {
	trace := flag.String("trace", "", "comma-separated parts to trace: lexer, parser, eval")
	noSQL := flag.Bool("no-sql", false, "leave the SQL functions out of the standard library")
	noCrypto := flag.Bool("no-crypto", false, "leave the bcrypt functions out of the standard library")
	flag.Usage = func() { fmt.Fprint(os.Stderr, text.HELP) }
	flag.Parse()

	if unknown := settings.Trace(strings.Split(*trace, ",")...); len(unknown) > 0 {
		fmt.Fprintln(os.Stderr, text.ERROR+"there is nothing to trace called "+text.Emph(unknown[0]))
		os.Exit(2)
	}
	reg, e := stdlib.NewRegistry(stdlib.Options{Out: os.Stdout, NoSQL: *noSQL, NoCrypto: *noCrypto})
	if e != nil {
		settings.Log.Fatalf("can't make the standard library: %v", e)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	verb, args := "repl", flag.Args()
	if len(args) > 0 {
		verb, args = args[0], args[1:]
	}
	switch verb {
	case "repl":
		repl.Start(ws.NewService(reg), os.Stdout)
	case "run":
		e = runFiles(ctx, reg, args, os.Stdout)
	case "watch":
		if len(args) != 1 {
			flag.Usage()
			os.Exit(2)
		}
		e = watch(ctx, reg, args[0], os.Stdout)
	case "tokens", "tree":
		if len(args) != 1 {
			flag.Usage()
			os.Exit(2)
		}
		e = show(reg, verb, args[0], os.Stdout)
	case "help":
		flag.Usage()
	default:
		fmt.Fprintln(os.Stderr, text.ERROR+"unknown command "+text.Emph(verb))
		flag.Usage()
		os.Exit(2)
	}
	if e != nil {
		os.Exit(1)
	}
}

// Runs each script in its own service, all at once. The registry is shared: nothing
// registers anything once the scripts have started.
func runFiles(ctx context.Context, reg *registry.Registry, paths []string, out io.Writer) error {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]string, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			sv := ws.NewService(reg)
			val, e := sv.RunFile(path)
			if e != nil {
				results[i] = sv.ErrorReport(e)
				return e
			}
			results[i] = text.BULLET + text.Emph(path) + " : " + sv.Describe(val) + "\n"
			return nil
		})
	}
	e := g.Wait()
	for _, result := range results {
		fmt.Fprint(out, result)
	}
	return e
}

// Runs the script, and then runs it again in a fresh service whenever it is written to,
// until the context is cancelled.
func watch(ctx context.Context, reg *registry.Registry, path string, out io.Writer) error {
	watcher, e := fsnotify.NewWatcher()
	if e != nil {
		return e
	}
	defer watcher.Close()
	// Editors often save by replacing the file, so we watch the directory it's in.
	if e := watcher.Add(filepath.Dir(path)); e != nil {
		return e
	}
	runOnce := func() {
		sv := ws.NewService(reg)
		val, e := sv.RunFile(path)
		if e != nil {
			fmt.Fprint(out, sv.ErrorReport(e))
			return
		}
		fmt.Fprintln(out, sv.Describe(val))
	}
	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			settings.Log.Infof("%s changed, running it again", path)
			runOnce()
		case e, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			settings.Log.Warnf("watching %s: %v", path, e)
		}
	}
}

// Prints the tokens or the syntax tree of a script.
func show(reg *registry.Registry, what, path string, out io.Writer) error {
	code, e := os.ReadFile(path)
	if e != nil {
		fmt.Fprintln(out, text.ERROR+e.Error())
		return e
	}
	sv := ws.NewService(reg)
	if what == "tokens" {
		toks, e := sv.Tokens(string(code))
		if e != nil {
			fmt.Fprint(out, sv.ErrorReport(e))
			return e
		}
		for _, tok := range toks {
			fmt.Fprintln(out, tok.String())
		}
		return nil
	}
	b, e := sv.Parse(string(code), path)
	if e != nil {
		fmt.Fprint(out, sv.ErrorReport(e))
		return e
	}
	fmt.Fprint(out, ast.Debug(b, reg))
	return nil
}
