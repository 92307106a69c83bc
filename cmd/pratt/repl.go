package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	pratt "github.com/xirelogy/go-pratt"
	"github.com/xirelogy/go-pratt/internal/config"
	"github.com/xirelogy/go-pratt/internal/lexer"
)

const (
	historyFile = ".pratt_history"
	promptMain  = "> "
	promptCont  = ".. "
)

// session evaluates REPL input. Every expression is compiled into its own
// program; nothing carries over between lines.
type session struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	count  int
}

func runREPL(cfg *config.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	s := &session{cfg: cfg, stdout: stdout, stderr: stderr}
	for {
		src, ok := readExpression(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return exitOK
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return exitOK
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		s.eval(src)
	}
}

// readExpression keeps prompting while the input so far is an incomplete
// expression. An empty continuation line submits what was typed. Ctrl-C
// discards the pending input.
func readExpression(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src fails only because input ended too early.
func incomplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := pratt.Compile("probe", src)
	if errors.Is(err, lexer.ErrUnterminatedString) {
		return true
	}
	var compileErr *pratt.CompileError
	return errors.As(err, &compileErr) && compileErr.AtEnd()
}

// eval compiles and runs one expression, reporting errors without ending
// the session. It returns false on error.
func (s *session) eval(src string) bool {
	s.count++
	prog, err := pratt.Compile(fmt.Sprintf("repl:%d", s.count), src)
	if err != nil {
		fmt.Fprintf(s.stderr, "error: %v\n", err)
		return false
	}
	if _, err := execute(prog, s.cfg, s.stdout); err != nil {
		fmt.Fprintf(s.stderr, "error: %v\n", err)
		return false
	}
	return true
}
