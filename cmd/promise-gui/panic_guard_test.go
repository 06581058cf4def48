package main

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRunGuardedReportsScope(t *testing.T) {
	var got string
	runGuarded("render", func(scope string) { got = scope }, func() {
		panic("boom")
	})
	if got != "render" {
		t.Fatalf("reported scope = %q, want render", got)
	}
}

func TestRunGuardedQuietWithoutPanic(t *testing.T) {
	var called atomic.Bool
	runGuarded("render", func(string) { called.Store(true) }, func() {})
	if called.Load() {
		t.Fatalf("report should not be called")
	}
}

func TestNilAppSafeGoRecovers(t *testing.T) {
	var a *promiseApp
	done := make(chan struct{})
	a.safeGo("test.nil_app", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("safeGo goroutine did not finish")
	}
}
