package cleanup

import (
	"errors"
	"testing"
)

func TestRunAllLIFO(t *testing.T) {
	var order []int
	Register(func() error { order = append(order, 1); return nil })
	Register(func() error { order = append(order, 2); return nil })
	Register(func() error { order = append(order, 3); return nil })

	if err := RunAll(); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("order = %v, want [3 2 1]", order)
	}
}

func TestRunAllCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	Register(func() error { return boom })
	Register(func() error { return nil })

	err := RunAll()
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}

	// Hooks run once; a second RunAll is a no-op.
	if err := RunAll(); err != nil {
		t.Errorf("second RunAll = %v, want nil", err)
	}
}

func TestRegisterNilIgnored(t *testing.T) {
	Register(nil)
	if err := RunAll(); err != nil {
		t.Errorf("RunAll = %v", err)
	}
}
