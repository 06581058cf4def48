package main

import (
	"fmt"
	"runtime/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/promise/internal/logger"
)

// runGuarded runs fn and turns a panic into a log record plus a call to
// report.
func runGuarded(scope string, report func(scope string), fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		if report != nil {
			report(scope)
		}
	}()
	fn()
}

// reporter is nil for a nil app so that guards still work before the window
// exists.
func (a *promiseApp) reporter() func(string) {
	if a == nil {
		return nil
	}
	return a.reportPanic
}

func (a *promiseApp) safeGo(scope string, fn func()) {
	report := a.reporter()
	go runGuarded(scope, report, fn)
}

// safeDo runs fn on the UI goroutine.
func (a *promiseApp) safeDo(scope string, fn func()) {
	report := a.reporter()
	runGuarded(scope+".dispatch", report, func() {
		fyne.Do(func() {
			runGuarded(scope, report, fn)
		})
	})
}

// reportPanic tells the user once per run; later panics are only logged.
func (a *promiseApp) reportPanic(scope string) {
	if fyne.CurrentApp() == nil {
		return
	}
	a.panicNoticeOnce.Do(func() {
		fyne.Do(func() {
			if a.window == nil {
				return
			}
			dialog.ShowInformation(
				"Unexpected Error",
				"Something went wrong while updating the widget ("+scope+"). Pull down to refresh; if this repeats, restart the app.",
				a.window,
			)
		})
	})
}
