package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

var errTimelock = Register(90, "test timelock")

func TestIs(t *testing.T) {
	wrapped := Wrap(errTimelock, "withdrawal window")

	cases := map[string]struct {
		root *Error
		err  error
		want bool
	}{
		"same instance":                 {root: errTimelock, err: errTimelock, want: true},
		"other root":                    {root: errTimelock, err: ErrState},
		"wrapped":                       {root: errTimelock, err: wrapped, want: true},
		"wrapped twice":                 {root: errTimelock, err: Wrapf(wrapped, "at %d", 100), want: true},
		"wrapped by pkg/errors":         {root: errTimelock, err: errors.Wrap(errTimelock, "x"), want: true},
		"stdlib error":                  {root: errTimelock, err: fmt.Errorf("timelock")},
		"field error":                   {root: ErrAmount, err: Field("Amount", ErrAmount, "zero"), want: true},
		"member of a group":             {root: errTimelock, err: Append(ErrState, wrapped), want: true},
		"not a member of a group":       {root: errTimelock, err: Append(ErrState, ErrInput)},
		"empty group":                   {root: errTimelock, err: Append(nil)},
		"nil root matches nil":          {root: nil, err: nil, want: true},
		"nil root matches typed nil":    {root: nil, err: (*fieldError)(nil), want: true},
		"nil root does not match error": {root: nil, err: errTimelock},
		"root does not match nil":       {root: errTimelock, err: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.root.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	std := stdlib.New("disk full")
	err := Wrap(Wrap(std, "save escrow"), "create")
	if got := errors.Cause(err); got != std {
		t.Fatalf("want the stdlib cause, got %v", got)
	}
	if want := "create: save escrow: disk full"; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
	if !stdlib.Is(err, std) {
		t.Fatal("standard library must see through the wrap")
	}
	if stackTrace(err) == nil {
		t.Fatal("stack trace not recorded")
	}
}

func TestStdlibWalksRegisteredErrors(t *testing.T) {
	cases := map[string]error{
		"wrap":          Wrap(errTimelock, "opens at 100"),
		"wrap twice":    Wrapf(Wrap(errTimelock, "opens at 100"), "escrow %d", 1),
		"field":         Field("Timelocks", errTimelock, "dst withdrawal"),
		"field of wrap": Field("Timelocks", Wrap(errTimelock, "opens at 100"), ""),
	}
	for name, err := range cases {
		t.Run(name, func(t *testing.T) {
			if !stdlib.Is(err, errTimelock) {
				t.Fatalf("stdlib Is lost the root of %q", err)
			}
			var target *Error
			if !stdlib.As(err, &target) || target.code != errTimelock.code {
				t.Fatalf("stdlib As lost the root of %q", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate code must panic")
		}
	}()
	Register(errTimelock.code, "again")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
		},
		"registered error": {
			err:      Wrap(ErrNotFound, "escrow"),
			wantCode: ErrNotFound.code,
			wantLog:  "escrow: not found",
		},
		"stdlib error is hidden": {
			err:      fmt.Errorf("connection refused"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib error in debug mode": {
			err:      fmt.Errorf("connection refused"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "connection refused",
		},
		"group reports the first code": {
			err:      Append(ErrAmount, ErrInput),
			wantCode: ErrAmount.code,
			wantLog:  "2 errors occurred:\n\t* invalid amount\n\t* invalid input",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}

	_, log := ABCIInfo(Wrap(ErrState, "escrow"), true)
	if !strings.Contains(log, "errors_test.go") {
		t.Errorf("debug log must carry a stack trace: %q", log)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrState); err != ErrState {
		t.Fatalf("single error must be returned as is, got %v", err)
	}
	nested := Append(ErrState, Append(ErrInput, ErrAmount))
	if m, ok := nested.(multiErr); !ok || len(m) != 3 {
		t.Fatalf("want three flattened errors, got %#v", nested)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Amount", ErrAmount, "zero"),
		Wrap(Field("Token", ErrEmpty, ""), "immutables"),
		AppendField(nil, "Amount", ErrOverflow),
		AppendField(nil, "Memo", nil),
	)

	if got := FieldErrors(err, "Amount"); len(got) != 2 {
		t.Errorf("want two Amount errors, got %d", len(got))
	}
	got := FieldErrors(err, "Token")
	if len(got) != 1 || !ErrEmpty.Is(got[0]) {
		t.Errorf("want a single empty Token error, got %v", got)
	}
	if got := FieldErrors(err, "Memo"); len(got) != 0 {
		t.Errorf("nil errors must not be recorded, got %v", got)
	}
	if Field("Amount", nil, "ignored") != nil {
		t.Error("field of a nil error must be nil")
	}
	if msg := Field("Amount", ErrAmount, "must be %d", 1).Error(); msg != `field "Amount": must be 1: invalid amount` {
		t.Errorf("unexpected message %q", msg)
	}
}
