package proc

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

const (
	stateIdle int32 = iota
	stateRunning
	stateExiting
	stateStopped
)

var ErrAlreadyInitialized = fmt.Errorf("process context is already initialized")

// Process tracks whether the program has been asked to exit.
type Process struct {
	state int32

	logger  *slog.Logger
	signals chan os.Signal
	done    chan struct{}
}

func New(logger *slog.Logger) *Process {
	if logger == nil {
		logger = slog.Default()
	}
	return &Process{logger: logger}
}

// Initialize marks the process running and starts watching for termination signals. A Process can only be initialized
// once.
func (p *Process) Initialize() error {
	if !atomic.CompareAndSwapInt32(&p.state, stateIdle, stateRunning) {
		return ErrAlreadyInitialized
	}

	p.signals = make(chan os.Signal, 1)
	p.done = make(chan struct{})
	signal.Notify(p.signals, syscall.SIGTERM, syscall.SIGINT)

	go p.watch(p.signals, p.done)
	return nil
}

func (p *Process) watch(signals <-chan os.Signal, done <-chan struct{}) {
	select {
	case sig := <-signals:
		p.logger.Info("exit requested", "signal", sig.String())
		p.RequestExit()
	case <-done:
	}
}

func (p *Process) IsRunning() bool {
	return atomic.LoadInt32(&p.state) == stateRunning
}

// RequestExit clears the running flag. It has no effect unless the process is running.
func (p *Process) RequestExit() {
	atomic.CompareAndSwapInt32(&p.state, stateRunning, stateExiting)
}

// Shutdown stops watching for signals. Calling it more than once, or before Initialize, is harmless.
func (p *Process) Shutdown() {
	previous := atomic.SwapInt32(&p.state, stateStopped)
	if previous != stateRunning && previous != stateExiting {
		return
	}
	signal.Stop(p.signals)
	close(p.done)
}
