package homebrew

import "time"

// ProcessContext represents the running application's lifecycle as seen by the platform. IsRunning turns false once
// the platform (or the user) asks the program to exit.
type ProcessContext interface {
	Initialize() error
	IsRunning() bool
	Shutdown()
}

// ConsoleLog is an on-screen text overlay. Printed lines accumulate in a buffer until Draw puts them on screen.
type ConsoleLog interface {
	Initialize() error
	Print(text string)
	Draw()
	Release()
}

type Clock interface {
	Sleep(d time.Duration)
}

// ProcessFuncs can be used to write partial process contexts.
type ProcessFuncs struct {
	InitializeFunc func() error
	IsRunningFunc  func() bool
	ShutdownFunc   func()
}

func (p ProcessFuncs) Initialize() error {
	if p.InitializeFunc == nil {
		return nil
	}
	return p.InitializeFunc()
}

// IsRunning reports false when no IsRunningFunc is set, so a bare ProcessFuncs exits immediately.
func (p ProcessFuncs) IsRunning() bool {
	if p.IsRunningFunc == nil {
		return false
	}
	return p.IsRunningFunc()
}

func (p ProcessFuncs) Shutdown() {
	if p.ShutdownFunc != nil {
		p.ShutdownFunc()
	}
}

var _ ProcessContext = ProcessFuncs{}

// ConsoleFuncs can be used to write partial console overlays.
type ConsoleFuncs struct {
	InitializeFunc func() error
	PrintFunc      func(text string)
	DrawFunc       func()
	ReleaseFunc    func()
}

func (c ConsoleFuncs) Initialize() error {
	if c.InitializeFunc == nil {
		return nil
	}
	return c.InitializeFunc()
}

func (c ConsoleFuncs) Print(text string) {
	if c.PrintFunc != nil {
		c.PrintFunc(text)
	}
}

func (c ConsoleFuncs) Draw() {
	if c.DrawFunc != nil {
		c.DrawFunc()
	}
}

func (c ConsoleFuncs) Release() {
	if c.ReleaseFunc != nil {
		c.ReleaseFunc()
	}
}

var _ ConsoleLog = ConsoleFuncs{}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func(d time.Duration)

func (f ClockFunc) Sleep(d time.Duration) {
	f(d)
}

var _ Clock = ClockFunc(nil)
