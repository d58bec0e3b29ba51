package homebrew

import (
	"log/slog"
)

// Hook observes lifecycle transitions. Phases are "startup", "running", "frame", "draining" and "terminated"; err is
// non-nil only when the transition was caused by a failure.
type Hook func(phase string, err error)

// Chain returns a Hook that invokes every non-nil hook in order.
func Chain(hooks ...Hook) Hook {
	return func(phase string, err error) {
		for _, hook := range hooks {
			if hook != nil {
				hook(phase, err)
			}
		}
	}
}

// LogHook logs every transition. Frames are logged at debug level since there is one per poll interval.
func LogHook(logger *slog.Logger) Hook {
	return func(phase string, err error) {
		switch {
		case err != nil:
			logger.Error("lifecycle transition failed", "phase", phase, "error", err)
		case phase == "frame":
			logger.Debug("frame drawn")
		default:
			logger.Info("lifecycle transition", "phase", phase)
		}
	}
}
