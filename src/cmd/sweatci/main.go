package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/phroun/sweatci"
)

var version = "dev" // set via -ldflags at build time

// options holds the parsed command line
type options struct {
	help       bool
	debug      bool
	watch      bool
	configPath string
	tick       string
	lines      []string
	scripts    []string
}

// parseArgs parses argv (including the program name)
func parseArgs(argv []string) (*options, error) {
	opts := &options{configPath: sweatci.DefaultConfigPath()}

	parsed, optind, err := getopt.Getopts(argv, "hdwc:t:e:")
	if err != nil {
		return nil, err
	}
	for _, opt := range parsed {
		switch opt.Option {
		case 'h':
			opts.help = true
		case 'd':
			opts.debug = true
		case 'w':
			opts.watch = true
		case 'c':
			opts.configPath = opt.Value
		case 't':
			opts.tick = opt.Value
		case 'e':
			opts.lines = append(opts.lines, opt.Value)
		}
	}
	opts.scripts = argv[optind:]
	return opts, nil
}

func showUsage() {
	fmt.Fprintf(os.Stderr, `sweatci %s - developer console

Usage: sweatci [-h] [-d] [-w] [-c config] [-t tick] [-e line]... [script]...

Options:
  -h          Show this help
  -d          Enable debug output
  -w          Re-run scripts when they change on disk
  -c config   Config file (default %s)
  -t tick     Loop alias interval, e.g. 50ms or 0.05 (0 runs them after every line)
  -e line     Run a console line; may be repeated

Without scripts or -e lines an interactive console is started.
`, version, sweatci.DefaultConfigPath())
}

func errorPrintf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	opts, err := parseArgs(argv)
	if err != nil {
		errorPrintf("sweatci: %v\n", err)
		showUsage()
		return 2
	}
	if opts.help {
		showUsage()
		return 0
	}

	fileConfig, err := sweatci.LoadFileConfig(opts.configPath)
	if err != nil {
		errorPrintf("sweatci: %v\n", err)
		return 1
	}
	if opts.debug {
		fileConfig.Debug = true
	}
	if opts.tick != "" {
		fileConfig.Tick = opts.tick
	}
	if opts.watch {
		fileConfig.Watch = true
	}

	tick, err := fileConfig.TickInterval()
	if err != nil {
		errorPrintf("sweatci: %v\n", err)
		return 2
	}

	out := sweatci.NewConsolePrinter(nil, nil)
	config, err := fileConfig.InterpreterConfig(out)
	if err != nil {
		errorPrintf("sweatci: %v\n", err)
		return 1
	}

	console := sweatci.New(config)
	for _, key := range fileConfig.Undecoded {
		console.Logger().WarnCat(sweatci.CatSystem, "unknown config key %q in %s", key, opts.configPath)
	}
	console.RegisterStandardLibrary()

	session := sweatci.NewSession(console, tick)
	h := newHost(session, fileConfig)
	if err := h.register(console); err != nil {
		errorPrintf("sweatci: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		session.Stop()
	}()
	go func() {
		_ = session.RunTicker(ctx)
	}()

	var watched []string
	for _, path := range fileConfig.Autoexec {
		if _, err := os.Stat(path); err != nil {
			console.Logger().DebugCat(sweatci.CatIO, "skipping autoexec %s: %v", path, err)
			continue
		}
		_ = session.ExecFile(path)
		watched = append(watched, path)
	}

	status := 0
	for _, path := range opts.scripts {
		if err := session.ExecFile(path); err != nil {
			status = 1
		}
	}
	for _, line := range opts.lines {
		session.RunLine(line, sweatci.FromConsole)
	}

	if fileConfig.Watch {
		watcher, err := h.watch(append(watched, opts.scripts...))
		if err != nil {
			errorPrintf("sweatci: %v\n", err)
			return 1
		}
		defer watcher.Close()
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				h.warn("%v", err)
			}
		}()
	}

	batch := len(opts.scripts) > 0 || len(opts.lines) > 0
	switch {
	case !batch:
		repl := sweatci.NewREPL(session, sweatci.REPLConfig{
			Prompt:      h.currentPrompt,
			HistoryFile: fileConfig.History,
		})
		if err := repl.Run(ctx); err != nil {
			errorPrintf("sweatci: %v\n", err)
			return 1
		}
	case fileConfig.Watch:
		// Keep reloading until interrupted or a script runs quit
		<-session.Done()
	}
	return status
}

// host owns the CVARs and commands the program adds to the console
type host struct {
	session   *sweatci.Session
	prompt    string
	developer bool
	tick      float64
}

func newHost(session *sweatci.Session, fileConfig *sweatci.FileConfig) *host {
	return &host{
		session:   session,
		prompt:    fileConfig.Prompt,
		developer: fileConfig.Debug,
		tick:      session.TickInterval().Seconds(),
	}
}

func (h *host) register(console *sweatci.Interpreter) error {
	developer := sweatci.BoolVar(&h.developer)
	if _, err := console.BindCvar("developer", sweatci.ValueFuncs{
		SetFunc: func(text string) error {
			if err := developer.Set(text); err != nil {
				return err
			}
			console.Logger().SetEnabled(h.developer)
			return nil
		},
		StringFunc: developer.String,
	}, "<0|1> - shows debug output"); err != nil {
		return err
	}

	tick := sweatci.Float64Var(&h.tick)
	if _, err := console.BindCvar("host_tick", sweatci.ValueFuncs{
		SetFunc: func(text string) error {
			d, err := sweatci.ParseTick(text)
			if err != nil {
				return err
			}
			h.tick = d.Seconds()
			h.session.SetTickInterval(d)
			return nil
		},
		StringFunc: tick.String,
	}, "<seconds> - interval between loop alias runs, 0 runs them after every line"); err != nil {
		return err
	}

	if _, err := console.BindCvar("prompt", sweatci.StringVar(&h.prompt), "<text> - console prompt"); err != nil {
		return err
	}

	quit := func(*sweatci.Context) {
		h.session.Stop()
	}
	if _, err := console.RegisterCommand("quit", 0, 0, quit, "- exits the console"); err != nil {
		return err
	}
	if _, err := console.RegisterCommand("exit", 0, 0, quit, "- exits the console"); err != nil {
		return err
	}
	return nil
}

// currentPrompt reads the prompt CVAR under the session lock
func (h *host) currentPrompt() string {
	var prompt string
	h.session.Do(func(*sweatci.Interpreter) {
		prompt = h.prompt
	})
	return prompt
}

// watch re-runs the given scripts whenever they change
func (h *host) watch(paths []string) (*sweatci.ScriptWatcher, error) {
	watcher, err := sweatci.NewScriptWatcher(func(path string) {
		h.session.Do(func(console *sweatci.Interpreter) {
			console.Logger().NoticeCat(sweatci.CatIO, "reloading %s", path)
		})
		_ = h.session.ExecFile(path)
	}, func(err error) {
		h.warn("%v", err)
	})
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return watcher, nil
}

func (h *host) warn(format string, args ...interface{}) {
	h.session.Do(func(console *sweatci.Interpreter) {
		console.Logger().WarnCat(sweatci.CatSystem, format, args...)
	})
}
