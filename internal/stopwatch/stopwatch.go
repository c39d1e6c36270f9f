// Package stopwatch counts elapsed whole seconds for a game in progress.
package stopwatch

import (
	"fmt"
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type Option func(*Stopwatch)

// WithTicker replaces the wall-clock ticker.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(s *Stopwatch) {
		s.newTicker = newTicker
	}
}

// Stopwatch runs at most one ticker at a time. Starting it again cancels the
// running ticker and counts from zero.
type Stopwatch struct {
	mu        sync.Mutex
	seconds   int
	stop      chan struct{}
	done      chan struct{}
	onTick    func(seconds int)
	newTicker func(time.Duration) Ticker
}

// New returns a stopped stopwatch. onTick, if not nil, is called from the
// ticker goroutine after every counted second.
func New(onTick func(seconds int), opts ...Option) *Stopwatch {
	s := &Stopwatch{
		onTick:    onTick,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.seconds = 0
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.newTicker(time.Second), s.stop, s.done)
}

// Stop freezes the count. It does not wait for the ticker goroutine, so an
// onTick call already under way may still finish, but no second is counted
// after Stop returns.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Reset stops the stopwatch and sets the count back to zero.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.seconds = 0
}

func (s *Stopwatch) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *Stopwatch) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seconds
}

func (s *Stopwatch) run(ticker Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
		}

		s.mu.Lock()
		select {
		case <-stop:
			s.mu.Unlock()
			return
		default:
		}
		s.seconds++
		n := s.seconds
		s.mu.Unlock()

		if s.onTick != nil {
			s.onTick(n)
		}
	}
}

// Format renders seconds as mm:ss.
func Format(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
