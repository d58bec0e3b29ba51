package homebrew

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type State = int32

const (
	StateInvalid State = iota
	StateUninitialized
	StateRunning
	StateDraining
	StateTerminated
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

const (
	Greeting = "Hello World!"
	Farewell = "Exiting... good bye."

	DefaultPollInterval   = 100 * time.Millisecond
	DefaultLingerDuration = 1000 * time.Millisecond
)

// Application drives the lifecycle of a homebrew program: it acquires the process context and the console overlay,
// redraws the overlay while the process is running, and releases both in a fixed order once the process is asked to
// exit. Resources are released through deferred cleanup so a panic inside a collaborator does not leak them.
type Application struct {
	on sync.Once

	state int32

	context context.Context
	cancel  context.CancelFunc

	hook Hook
	term func(err error)

	process ProcessContext
	console ConsoleLog
	clock   Clock

	pollInterval   time.Duration
	lingerDuration time.Duration
}

// New returns an Application wired to the given collaborators.
func New(process ProcessContext, console ConsoleLog, clock Clock) *Application {
	app := &Application{
		process: process,
		console: console,
		clock:   clock,
	}
	app.on.Do(app.init)
	return app
}

func (app *Application) init() {
	app.context, app.cancel = context.WithCancel(context.Background())
	app.hook = func(phase string, err error) {}
	app.term = func(err error) {
		slog.Error("application terminated", "error", err)
		os.Exit(ExitFailure)
	}

	app.pollInterval = DefaultPollInterval
	app.lingerDuration = DefaultLingerDuration

	atomic.StoreInt32(&app.state, StateUninitialized)
}

func (app *Application) WithHook(hook Hook) {
	app.on.Do(app.init)
	app.hook = hook
}

func (app *Application) WithValue(key, value interface{}) {
	app.on.Do(app.init)
	app.context = context.WithValue(app.context, key, value)
}

// WithPollInterval overrides how long the run loop sleeps between draws.
func (app *Application) WithPollInterval(interval time.Duration) {
	app.on.Do(app.init)
	app.pollInterval = interval
}

// WithLingerDuration overrides how long the farewell stays on screen before release.
func (app *Application) WithLingerDuration(duration time.Duration) {
	app.on.Do(app.init)
	app.lingerDuration = duration
}

func (app *Application) Context() context.Context {
	app.on.Do(app.init)
	return app.context
}

var _ Contextual = &Application{}

func (app *Application) State() State {
	return atomic.LoadInt32(&app.state)
}

// core

// Run executes the whole lifecycle and returns the process exit status. On the normal path the status is always
// ExitSuccess, no matter how many times the loop iterated.
func (app *Application) Run() int {
	app.on.Do(app.init)

	if !atomic.CompareAndSwapInt32(&app.state, StateUninitialized, StateRunning) {
		app.hook("startup", ErrAlreadyRun)
		app.term(ErrAlreadyRun)
		return ExitFailure
	}

	if app.process == nil || app.console == nil || app.clock == nil {
		app.finish(ErrMissingCollaborator)
		return ExitFailure
	}

	var failure error
	// registered first so it runs after every release below
	defer func() {
		app.finish(failure)
	}()

	if failure = app.process.Initialize(); failure != nil {
		app.hook("startup", failure)
		return ExitFailure
	}
	defer app.process.Shutdown()

	if failure = app.console.Initialize(); failure != nil {
		app.hook("startup", failure)
		return ExitFailure
	}
	defer app.console.Release()

	app.hook("running", nil)
	app.console.Print(Greeting)

	for app.process.IsRunning() {
		app.console.Draw()
		app.hook("frame", nil)
		app.clock.Sleep(app.pollInterval)
	}

	atomic.StoreInt32(&app.state, StateDraining)
	app.hook("draining", nil)

	app.console.Print(Farewell)
	app.console.Draw()
	app.clock.Sleep(app.lingerDuration)

	return ExitSuccess
}

func (app *Application) finish(err error) {
	atomic.StoreInt32(&app.state, StateTerminated)
	app.cancel()

	app.hook("terminated", err)
	if err != nil {
		app.term(err)
	}
}
