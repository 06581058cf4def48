package cleanup

import (
	"errors"
	"reflect"
	"testing"
)

func TestRunAllReverseOrderAndJoinedErrors(t *testing.T) {
	errFirst := errors.New("first")
	errThird := errors.New("third")
	var order []int

	Register(func() error { order = append(order, 1); return errFirst })
	Register(nil)
	Register(func() error { order = append(order, 2); return nil })
	Register(func() error { order = append(order, 3); return errThird })

	err := RunAll()
	if !reflect.DeepEqual(order, []int{3, 2, 1}) {
		t.Fatalf("order = %v, want [3 2 1]", order)
	}
	if !errors.Is(err, errFirst) || !errors.Is(err, errThird) {
		t.Fatalf("err = %v, want both failures", err)
	}

	if err := RunAll(); err != nil {
		t.Fatalf("second RunAll should have nothing to do, got %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("hooks ran twice: %v", order)
	}
}
