package errwrap

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestAppendNil(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Errorf("expected nil, got %+v", err)
	}
	reterr := fmt.Errorf("reterr")
	if err := Append(reterr, nil); err != reterr {
		t.Errorf("expected reterr, got %+v", err)
	}
	other := fmt.Errorf("err")
	if err := Append(nil, other); err != other {
		t.Errorf("expected err, got %+v", err)
	}
}

func TestAppendFlatten(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")
	var err error
	for _, e := range []error{a, b, c} {
		err = Append(err, e)
	}
	got := Flatten(err)
	if len(got) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(got), got)
	}
	for i, want := range []error{a, b, c} {
		if got[i] != want {
			t.Errorf("index %d: want %v, got %v", i, want, got[i])
		}
	}
	if !errors.Is(err, b) {
		t.Errorf("errors.Is should see through the aggregate")
	}
}

func TestWrapfCause(t *testing.T) {
	base := errors.New("base")
	wrapped := Wrapf(base, "reading %s", "plan.ple")
	if wrapped.Error() != "reading plan.ple: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if Cause(wrapped) != base {
		t.Errorf("cause lost")
	}
	if Wrapf(nil, "x") != nil {
		t.Errorf("wrapping nil must stay nil")
	}
	if String(nil) != "" || String(base) != "base" {
		t.Errorf("String mismatch")
	}
}
