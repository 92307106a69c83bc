// Command pratt compiles and runs a single expression from a file, or
// evaluates expressions interactively with -i.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	pratt "github.com/xirelogy/go-pratt"
	"github.com/xirelogy/go-pratt/internal/config"
	"github.com/xirelogy/go-pratt/internal/logging"
)

// Exit codes follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitData     = 65
	exitSoftware = 70
	exitIO       = 74
	exitConfig   = 78
)

func main() {
	util.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet, w io.Writer) func() {
	return func() {
		fmt.Fprintln(w, "usage: pratt [flags] <file>")
		fmt.Fprintln(w, "       pratt -i")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "flags:")
		fs.PrintDefaults()
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pratt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs, stderr)

	configPath := fs.String("config", "", "read configuration from `file` instead of searching for "+config.FileName)
	interactive := fs.Bool("i", false, "evaluate expressions interactively")
	emitPath := fs.String("emit", "", "write the compiled image to `file` instead of running")
	isImage := fs.Bool("image", false, "treat the argument as a compiled image")
	disasm := fs.Bool("disasm", true, "print the disassembly before running")
	trace := fs.Bool("trace", false, "log every dispatched instruction")
	verbosity := fs.Int("v", 0, "log verbosity (0 notice, 1 info, 2 debug)")
	logFile := fs.String("log", "", "write logs to `file` instead of stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pratt: %v\n", err)
		return exitConfig
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "disasm":
			cfg.Output.Disassemble = *disasm
		case "trace":
			cfg.Trace.Enabled = *trace
		case "v":
			cfg.Log.Verbosity = *verbosity
		case "log":
			cfg.Log.File = *logFile
		}
	})
	if cfg.Trace.Enabled && cfg.Log.Verbosity < 2 {
		cfg.Log.Verbosity = 2
	}
	if err := logging.Configure(cfg.Log.Verbosity, cfg.Log.File); err != nil {
		fmt.Fprintf(stderr, "pratt: %v\n", err)
		return exitIO
	}

	if *interactive {
		if fs.NArg() != 0 {
			fs.Usage()
			return exitUsage
		}
		return runREPL(cfg, stdout, stderr)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	return runFile(fs.Arg(0), *isImage, *emitPath, cfg, stdout, stderr)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FindAndLoad(".")
}

func runFile(path string, isImage bool, emitPath string, cfg *config.Config, stdout, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "pratt: %v\n", err)
		return exitIO
	}

	var prog *pratt.Program
	if isImage {
		prog, err = pratt.LoadImage(path, data)
	} else {
		prog, err = pratt.Compile(path, string(data))
	}
	if err != nil {
		fmt.Fprintf(stderr, "pratt: %s: %v\n", path, err)
		return exitData
	}

	if emitPath != "" {
		img, err := prog.Image()
		if err != nil {
			fmt.Fprintf(stderr, "pratt: %v\n", err)
			return exitSoftware
		}
		if err := os.WriteFile(emitPath, img, 0o644); err != nil {
			fmt.Fprintf(stderr, "pratt: %v\n", err)
			return exitIO
		}
		return exitOK
	}

	if _, err := execute(prog, cfg, stdout); err != nil {
		fmt.Fprintf(stderr, "pratt: %s: %v\n", path, err)
		return exitSoftware
	}
	return exitOK
}

// execute prints the listing when configured, then runs prog.
func execute(prog *pratt.Program, cfg *config.Config, stdout io.Writer) (pratt.Value, error) {
	if cfg.Output.Disassemble {
		if err := prog.Disassemble(stdout); err != nil {
			return pratt.Value{}, err
		}
	}
	return prog.Run(pratt.Options{Output: stdout, Trace: traceHook(cfg)})
}

// traceHook returns the logging hook when tracing is on and the VM logger
// would actually write debug messages.
func traceHook(cfg *config.Config) pratt.TraceHook {
	if !cfg.Trace.Enabled || !logging.Enabled(commonlog.Debug, "pratt.vm") {
		return nil
	}
	return pratt.LogTrace
}
