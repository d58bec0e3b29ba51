package homebrew

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	initialize = "initialize"
	isRunning  = "isRunning"
	shutdown   = "shutdown"
	printText  = "print"
	draw       = "draw"
	release    = "release"
	sleep      = "sleep"
)

type recorder struct {
	counts  map[string]int
	events  []string
	printed []string
	sleeps  []time.Duration
}

// recordingCollaborators returns collaborators whose running flag follows the given sequence and reports false once
// it is exhausted.
func recordingCollaborators(running ...bool) (*recorder, *ProcessFuncs, *ConsoleFuncs, ClockFunc) {
	rec := &recorder{counts: make(map[string]int)}
	record := func(event string) {
		rec.counts[event]++
		rec.events = append(rec.events, event)
	}

	process := &ProcessFuncs{
		InitializeFunc: func() error {
			record("process." + initialize)
			return nil
		},
		IsRunningFunc: func() bool {
			record(isRunning)
			if len(running) == 0 {
				return false
			}
			next := running[0]
			running = running[1:]
			return next
		},
		ShutdownFunc: func() {
			record("process." + shutdown)
		},
	}

	console := &ConsoleFuncs{
		InitializeFunc: func() error {
			record("console." + initialize)
			return nil
		},
		PrintFunc: func(text string) {
			record(printText)
			rec.printed = append(rec.printed, text)
		},
		DrawFunc: func() {
			record(draw)
		},
		ReleaseFunc: func() {
			record("console." + release)
		},
	}

	clock := ClockFunc(func(d time.Duration) {
		record(sleep)
		rec.sleeps = append(rec.sleeps, d)
	})

	return rec, process, console, clock
}

func newTestApp(t *testing.T, process ProcessContext, console ConsoleLog, clock Clock, term func(err error)) *Application {
	t.Helper()
	app := New(process, console, clock)
	app.term = term
	return app
}

func noError(t *testing.T) func(err error) {
	return func(err error) {
		require.NoError(t, err, "application unexpectedly failed with error")
	}
}

func Test_ApplicationRun(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true, true, false)
	app := newTestApp(t, process, console, clock, noError(t))

	code := app.Run()

	require.Equal(t, ExitSuccess, code, "unexpected exit code")
	require.Equal(t, 3, rec.counts[draw], "unexpected draw count")
	require.Equal(t, 2, rec.counts[printText], "unexpected print count")
	require.Equal(t, []string{Greeting, Farewell}, rec.printed, "unexpected printed lines")
	require.Equal(t, []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
		1000 * time.Millisecond,
	}, rec.sleeps, "unexpected sleeps")
	require.Equal(t, StateTerminated, app.State(), "unexpected final state")
}

func Test_ApplicationRun_Sequence(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true, false)
	app := newTestApp(t, process, console, clock, noError(t))

	app.Run()

	require.Equal(t, []string{
		"process." + initialize,
		"console." + initialize,
		printText,
		isRunning,
		draw,
		sleep,
		isRunning,
		printText,
		draw,
		sleep,
		"console." + release,
		"process." + shutdown,
	}, rec.events, "unexpected lifecycle sequence")
}

func Test_ApplicationRun_NeverRunning(t *testing.T) {
	rec, process, console, clock := recordingCollaborators()
	app := newTestApp(t, process, console, clock, noError(t))

	code := app.Run()

	require.Equal(t, ExitSuccess, code, "unexpected exit code")
	require.Equal(t, 1, rec.counts[isRunning], "unexpected poll count")
	require.Equal(t, 1, rec.counts[draw], "unexpected draw count")
	require.Equal(t, []time.Duration{1000 * time.Millisecond}, rec.sleeps, "unexpected sleeps")
	require.Equal(t, []string{Greeting, Farewell}, rec.printed, "unexpected printed lines")
	require.Equal(t, 1, rec.counts["console."+release], "unexpected release count")
	require.Equal(t, 1, rec.counts["process."+shutdown], "unexpected shutdown count")
}

func Test_ApplicationRun_ManyIterations(t *testing.T) {
	for _, iterations := range []int{1, 5, 50} {
		t.Run(fmt.Sprintf("%d iterations", iterations), func(t *testing.T) {
			running := make([]bool, iterations)
			for i := range running {
				running[i] = true
			}

			rec, process, console, clock := recordingCollaborators(running...)
			app := newTestApp(t, process, console, clock, noError(t))

			require.Equal(t, ExitSuccess, app.Run(), "unexpected exit code")
			require.Equal(t, iterations+1, rec.counts[draw], "unexpected draw count")
			require.Equal(t, iterations+1, rec.counts[isRunning], "unexpected poll count")
			require.Equal(t, iterations+1, rec.counts[sleep], "unexpected sleep count")
			require.Equal(t, 1000*time.Millisecond, rec.sleeps[len(rec.sleeps)-1], "unexpected final sleep")
		})
	}
}

func Test_ApplicationRun_Durations(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true, false)
	app := newTestApp(t, process, console, clock, noError(t))
	app.WithPollInterval(16 * time.Millisecond)
	app.WithLingerDuration(2 * time.Second)

	app.Run()

	require.Equal(t, []time.Duration{16 * time.Millisecond, 2 * time.Second}, rec.sleeps, "unexpected sleeps")
}

func Test_ApplicationRun_Hooks(t *testing.T) {
	_, process, console, clock := recordingCollaborators(true, true, false)
	app := newTestApp(t, process, console, clock, noError(t))

	var phases []string
	app.WithHook(func(phase string, err error) {
		require.NoError(t, err, "unexpected hook error")
		phases = append(phases, phase)
	})

	app.Run()

	require.Equal(t, []string{"running", "frame", "frame", "draining", "terminated"}, phases, "unexpected phases")
}

func Test_ApplicationRun_Context(t *testing.T) {
	_, process, console, clock := recordingCollaborators(true, false)
	app := newTestApp(t, process, console, clock, noError(t))
	app.WithValue(ContextKey("title"), "hello")

	require.NoError(t, app.Context().Err(), "context cancelled before run")

	app.Run()

	require.Error(t, app.Context().Err(), "context not cancelled after run")
	require.Equal(t, "hello", app.Context().Value(ContextKey("title")))
}

func Test_ApplicationRun_ProcessInitializeError(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true)
	process.InitializeFunc = func() error {
		return fmt.Errorf("something went wrong")
	}

	var terminated error
	app := newTestApp(t, process, console, clock, func(err error) {
		terminated = err
	})

	code := app.Run()

	require.Equal(t, ExitFailure, code, "unexpected exit code")
	require.EqualError(t, terminated, "something went wrong")
	require.Equal(t, 0, rec.counts["console."+initialize], "unexpected console initialize count")
	require.Equal(t, 0, rec.counts["process."+shutdown], "unexpected shutdown count")
	require.Equal(t, 0, rec.counts[printText], "unexpected print count")
}

func Test_ApplicationRun_ConsoleInitializeError(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true)
	console.InitializeFunc = func() error {
		return fmt.Errorf("something went wrong")
	}

	var terminated error
	var hooked []string
	app := newTestApp(t, process, console, clock, func(err error) {
		terminated = err
	})
	app.WithHook(func(phase string, err error) {
		if err != nil {
			hooked = append(hooked, phase)
		}
	})

	code := app.Run()

	require.Equal(t, ExitFailure, code, "unexpected exit code")
	require.EqualError(t, terminated, "something went wrong")
	require.Equal(t, []string{"startup", "terminated"}, hooked, "unexpected failing phases")
	require.Equal(t, 1, rec.counts["process."+shutdown], "process context was not released")
	require.Equal(t, 0, rec.counts["console."+release], "unexpected console release")
	require.Equal(t, 0, rec.counts[isRunning], "unexpected poll")
}

func Test_ApplicationRun_PanicReleases(t *testing.T) {
	rec, process, console, clock := recordingCollaborators(true, true)
	console.DrawFunc = func() {
		panic("framebuffer gone")
	}

	app := newTestApp(t, process, console, clock, noError(t))

	require.Panics(t, func() { app.Run() })

	releaseAt, shutdownAt := -1, -1
	for i, event := range rec.events {
		switch event {
		case "console." + release:
			releaseAt = i
		case "process." + shutdown:
			shutdownAt = i
		}
	}
	require.NotEqual(t, -1, releaseAt, "console was not released")
	require.Greater(t, shutdownAt, releaseAt, "process released before console")
	require.Equal(t, StateTerminated, app.State(), "unexpected final state")
}

func Test_ApplicationRun_Twice(t *testing.T) {
	rec, process, console, clock := recordingCollaborators()

	var terminated error
	app := newTestApp(t, process, console, clock, func(err error) {
		terminated = err
	})

	require.Equal(t, ExitSuccess, app.Run())
	require.NoError(t, terminated)

	require.Equal(t, ExitFailure, app.Run())
	require.ErrorIs(t, terminated, ErrAlreadyRun)
	require.Equal(t, 1, rec.counts["process."+initialize], "process initialized twice")
}

func Test_ApplicationRun_MissingCollaborator(t *testing.T) {
	var terminated error
	app := newTestApp(t, nil, ConsoleFuncs{}, ClockFunc(func(time.Duration) {}), func(err error) {
		terminated = err
	})

	require.Equal(t, ExitFailure, app.Run())
	require.ErrorIs(t, terminated, ErrMissingCollaborator)
	require.Equal(t, StateTerminated, app.State())
}

func Test_LogHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	hook := Chain(nil, LogHook(logger))
	hook("running", nil)
	hook("frame", nil)
	hook("startup", fmt.Errorf("no console"))

	out := buf.String()
	require.Contains(t, out, "phase=running")
	require.NotContains(t, out, "frame drawn")
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "no console")
}
