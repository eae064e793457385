// Package terminal owns the tcell screen lifecycle and input polling.
// Events arrive on typed channels; the resize channel coalesces with
// drop-old semantics so a burst of window resizes never backs up the
// frame loop.
package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ResizeEvent carries the new terminal dimensions in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// Service manages the screen and the input polling goroutine.
type Service struct {
	screen tcell.Screen

	keyCh    chan *tcell.EventKey
	mouseCh  chan *tcell.EventMouse
	resizeCh chan ResizeEvent
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu      sync.Mutex
	running bool
	inited  bool
}

// NewService creates a service on a real terminal screen.
func NewService() (*Service, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal screen: %w", err)
	}
	return NewServiceWith(screen), nil
}

// NewServiceWith creates a service on an injected screen. Tests pass a
// tcell SimulationScreen.
func NewServiceWith(screen tcell.Screen) *Service {
	return &Service{
		screen:   screen,
		keyCh:    make(chan *tcell.EventKey, 64),
		mouseCh:  make(chan *tcell.EventMouse, 64),
		resizeCh: make(chan ResizeEvent, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Init prepares the screen for rendering.
func (s *Service) Init() error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.screen.EnableMouse()
	s.screen.HideCursor()
	s.screen.Clear()
	s.mu.Lock()
	s.inited = true
	s.mu.Unlock()
	return nil
}

// Start launches the polling goroutine. Idempotent.
func (s *Service) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.pollLoop()
}

// Stop shuts down polling and restores the terminal. Idempotent; safe
// on every teardown path.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		if s.inited {
			s.inited = false
			s.mu.Unlock()
			s.screen.Fini()
			return
		}
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	// Wake PollEvent so the goroutine can observe the stop signal
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-s.doneCh

	s.mu.Lock()
	s.inited = false
	s.mu.Unlock()
	s.screen.Fini()
}

// Screen exposes the underlying screen for the compositor flush.
func (s *Service) Screen() tcell.Screen {
	return s.screen
}

// Size returns the current screen dimensions.
func (s *Service) Size() (int, int) {
	return s.screen.Size()
}

// Keys returns the keyboard event channel.
func (s *Service) Keys() <-chan *tcell.EventKey {
	return s.keyCh
}

// Mice returns the mouse event channel.
func (s *Service) Mice() <-chan *tcell.EventMouse {
	return s.mouseCh
}

// Resizes returns the resize channel. Only the latest pending resize
// is retained.
func (s *Service) Resizes() <-chan ResizeEvent {
	return s.resizeCh
}

// pollLoop reads screen events until stopped. A panic here would leave
// the terminal in raw mode, so recovery restores it before bailing.
func (s *Service) pollLoop() {
	defer close(s.doneCh)

	defer func() {
		if r := recover(); r != nil {
			s.screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nterminal poll crashed: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized under us
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			s.pushResize(ResizeEvent{Width: w, Height: h})
		case *tcell.EventKey:
			select {
			case s.keyCh <- ev:
			default:
				// Input faster than the frame loop consumes; drop
			}
		case *tcell.EventMouse:
			select {
			case s.mouseCh <- ev:
			default:
			}
		case *tcell.EventInterrupt:
			// Stop wakeup; loop re-checks stopCh
		}
	}
}

// pushResize keeps only the newest pending resize: drop the stale one,
// then publish. The single reader makes the two-step swap safe.
func (s *Service) pushResize(ev ResizeEvent) {
	for {
		select {
		case s.resizeCh <- ev:
			return
		default:
			select {
			case <-s.resizeCh:
			default:
			}
		}
	}
}
