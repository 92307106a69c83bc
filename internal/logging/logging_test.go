package logging

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tliron/commonlog"
)

func TestConfigureVerbosity(t *testing.T) {
	t.Cleanup(func() { _ = Configure(Quiet, "") })

	if err := Configure(2, ""); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if !Enabled(commonlog.Debug, "pratt.vm") {
		t.Fatalf("expected debug to be enabled at verbosity 2")
	}

	if err := Configure(0, ""); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if Enabled(commonlog.Info, "pratt.vm") {
		t.Fatalf("expected info to be disabled at verbosity 0")
	}
	if !Enabled(commonlog.Notice, "pratt.vm") {
		t.Fatalf("expected notice to be enabled at verbosity 0")
	}
}

func TestConfigureBadFile(t *testing.T) {
	t.Cleanup(func() { _ = Configure(Quiet, "") })

	path := filepath.Join(t.TempDir(), "missing", "pratt.log")
	err := Configure(1, path)
	if err == nil || !strings.Contains(err.Error(), "cannot open log file") {
		t.Fatalf("expected log file error, got %v", err)
	}
}
