package Bench

import (
	"fmt"
	"strings"
	"time"
)

type TimeUnit time.Duration

const (
	Nanosecond  = TimeUnit(time.Nanosecond)
	Microsecond = TimeUnit(time.Microsecond)
	Millisecond = TimeUnit(time.Millisecond)
	Second      = TimeUnit(time.Second)
)

func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(s) {
	case "ns":
		return Nanosecond, nil
	case "us":
		return Microsecond, nil
	case "ms":
		return Millisecond, nil
	case "s":
		return Second, nil
	}
	return 0, fmt.Errorf("%w: time unit %q, expected ns, us, ms or s", ErrConfig, s)
}

func (u TimeUnit) String() string {
	switch u {
	case Nanosecond:
		return "ns"
	case Microsecond:
		return "us"
	case Millisecond:
		return "ms"
	case Second:
		return "s"
	}
	return time.Duration(u).String()
}

// Scale expresses d in units of u.
func (u TimeUnit) Scale(d time.Duration) float64 {
	return float64(d) / float64(u)
}
