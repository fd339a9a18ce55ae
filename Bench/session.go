package Bench

import (
	"errors"
	"fmt"

	"github.com/intel/forTriangleBenchGo/TriangleCount"
	"go.uber.org/zap"
)

// Guard owns the backend sessions for the lifetime of a benchmark run. Every
// session is initialized once by Acquire and finalized once by Release.
type Guard struct {
	sessions []TriangleCount.Session
	env      []string
	released bool
	logger   *zap.Logger
}

// Acquire initializes the sessions in order. If one fails, the sessions
// already initialized are finalized again before the error is returned.
func Acquire(logger *zap.Logger, sessions ...TriangleCount.Session) (*Guard, error) {
	g := &Guard{logger: logger}
	for _, s := range sessions {
		if err := s.Init(); err != nil {
			return nil, errors.Join(fmt.Errorf("init %v: %w", s.Name(), err), g.Release())
		}
		g.sessions = append(g.sessions, s)
		info, err := s.Info()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("info %v: %w", s.Name(), err), g.Release())
		}
		g.env = append(g.env, info)
		logger.Info("env: "+info, zap.String("backend", s.Name()))
	}
	return g, nil
}

// Env returns one info line per acquired session.
func (g *Guard) Env() []string {
	return g.env
}

// Release finalizes the sessions in reverse order. Later calls do nothing.
func (g *Guard) Release() error {
	if g.released {
		return nil
	}
	g.released = true
	var errs []error
	for i := len(g.sessions) - 1; i >= 0; i-- {
		s := g.sessions[i]
		if err := s.Finalize(); err != nil {
			errs = append(errs, fmt.Errorf("finalize %v: %w", s.Name(), err))
			continue
		}
		g.logger.Debug("session released", zap.String("backend", s.Name()))
	}
	return errors.Join(errs...)
}
