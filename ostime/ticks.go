package ostime

import "time"

const (
	BusClockSpeed   = 248_625_000
	TimerClockSpeed = BusClockSpeed / 4
)

// Ticks counts platform timer ticks.
type Ticks int64

func MillisecondsToTicks(ms int64) Ticks {
	return Ticks(ms * TimerClockSpeed / 1000)
}

func MicrosecondsToTicks(us int64) Ticks {
	return Ticks(us * (TimerClockSpeed / 1000) / 1000)
}

// DurationToTicks converts d without overflowing for durations up to the range of time.Duration.
func DurationToTicks(d time.Duration) Ticks {
	seconds := int64(d / time.Second)
	remainder := int64(d % time.Second)
	return Ticks(seconds*TimerClockSpeed + remainder*TimerClockSpeed/int64(time.Second))
}

func (t Ticks) Duration() time.Duration {
	seconds := int64(t) / TimerClockSpeed
	remainder := int64(t) % TimerClockSpeed
	return time.Duration(seconds)*time.Second + time.Duration(remainder*int64(time.Second)/TimerClockSpeed)
}

func (t Ticks) Milliseconds() int64 {
	return int64(t) * 1000 / TimerClockSpeed
}
