package sweatci

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Session serializes access to an Interpreter shared by an input loop,
// a tick loop and a script watcher. Every call into the interpreter made
// through a Session holds the same mutex for the whole parse.
type Session struct {
	mu     sync.Mutex
	interp *Interpreter

	tick        atomic.Int64
	tickChanged chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// NewSession wraps interp. A tick of zero or less runs loop aliases once after
// every line instead of on a timer.
func NewSession(interp *Interpreter, tick time.Duration) *Session {
	s := &Session{
		interp:      interp,
		tickChanged: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	s.tick.Store(int64(tick))
	return s
}

// Interpreter returns the wrapped interpreter. Callers must not use it
// while other goroutines run the session; use Do instead.
func (s *Session) Interpreter() *Interpreter {
	return s.interp
}

// Do runs fn with the session lock held
func (s *Session) Do(fn func(*Interpreter)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.interp)
}

// RunLine parses one line of input
func (s *Session) RunLine(line string, origin Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interp.ParseLine(line, origin)
	if s.TickInterval() <= 0 {
		s.interp.RunLoopAliasesOnce()
	}
}

// ExecFile runs a script file under the session lock
func (s *Session) ExecFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.ExecFile(path)
}

// RunTick runs every loop alias once
func (s *Session) RunTick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interp.RunLoopAliasesOnce()
}

// TickInterval returns the current tick interval
func (s *Session) TickInterval() time.Duration {
	return time.Duration(s.tick.Load())
}

// SetTickInterval changes the tick interval. It is safe to call from a
// command handler while the session lock is held.
func (s *Session) SetTickInterval(d time.Duration) {
	if time.Duration(s.tick.Swap(int64(d))) == d {
		return
	}
	select {
	case s.tickChanged <- struct{}{}:
	default:
	}
}

// RunTicker calls RunTick every tick interval until ctx is cancelled or the
// session stops. While the interval is zero it waits for it to change.
func (s *Session) RunTicker(ctx context.Context) error {
	for {
		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		if d := s.TickInterval(); d > 0 {
			timer = time.NewTimer(d)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return ctx.Err()
		case <-s.done:
			stopTimer(timer)
			return nil
		case <-s.tickChanged:
			stopTimer(timer)
		case <-fire:
			s.RunTick()
		}
	}
}

// Stop ends the session. It is safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Done is closed once the session stops
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stopped reports whether Stop was called
func (s *Session) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
