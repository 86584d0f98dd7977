package main

import (
	"testing"

	"github.com/iov-one/xswap/errors"
)

func TestParseStartFlags(t *testing.T) {
	opts, err := parseStartFlags([]string{"-bind", "tcp://0.0.0.0:9999", "-debug"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if opts.addr != "tcp://0.0.0.0:9999" || !opts.debug || opts.inMemory {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = parseStartFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if opts.addr != "tcp://localhost:26658" || opts.debug {
		t.Fatalf("unexpected default options: %+v", opts)
	}

	if _, err := parseStartFlags([]string{"-unknown"}); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := newLogger("loud"); err == nil {
		t.Fatal("want error for an unknown level")
	}
}

func TestRunRejectsBadCommands(t *testing.T) {
	cases := map[string][]string{
		"no command":      nil,
		"unknown command": {"serve"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if err := run(t.TempDir(), "info", args); !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}
