package logging

import "testing"

func TestNew(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger")
	}
	if logger.Core().Enabled(-1) { // -1 = debug
		t.Errorf("debug should be disabled without Verbose")
	}

	verbose, err := New(Options{Verbose: true})
	if err != nil {
		t.Fatalf("New verbose: %v", err)
	}
	if !verbose.Core().Enabled(-1) {
		t.Errorf("debug should be enabled with Verbose")
	}

	quiet, err := New(Options{Quiet: true})
	if err != nil {
		t.Fatalf("New quiet: %v", err)
	}
	if quiet.Core().Enabled(2) { // 2 = error
		t.Errorf("quiet logger should discard everything")
	}
}
