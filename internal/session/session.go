// Package session runs one chart's event loop. All chart state is owned by
// the loop goroutine; other goroutines talk to it through Post and Frames.
package session

import (
	"bytes"
	"context"
	"log"
	"time"

	"census/internal/chart"
	"census/internal/models"
	"census/internal/render"
)

// Event is a browser event forwarded to the session
type Event interface {
	event()
}

// Resize reports the new viewport size
type Resize struct {
	Size chart.Size
}

// Select is a click on an axis-label control
type Select struct {
	Axis   models.Axis
	Metric models.Metric
}

// Hover is the pointer entering a marker
type Hover struct {
	Abbr string
}

// Leave is the pointer leaving a marker
type Leave struct {
	Abbr string
}

func (Resize) event() {}
func (Select) event() {}
func (Hover) event()  {}
func (Leave) event()  {}

// Frame is one rendered update. Err is set when the event failed, in which
// case SVG is empty and the previous frame stays valid.
type Frame struct {
	SVG []byte
	Err error
}

// Config configures a Session
type Config struct {
	Selector string
	Debounce time.Duration
	Chart    chart.Options
}

// Session owns a Renderer and applies events to it one at a time
type Session struct {
	cfg       Config
	records   []models.Record
	container *chart.Container
	renderer  *chart.Renderer
	events    chan Event
	frames    chan Frame
}

// New creates a session over records. A nil records slice means the dataset
// failed to load: every event is then ignored and no chart is ever mounted.
func New(records []models.Record, cfg Config) *Session {
	if cfg.Chart.Clock == nil {
		cfg.Chart.Clock = chart.SystemClock
	}
	return &Session{
		cfg:       cfg,
		records:   records,
		container: chart.NewContainer(cfg.Selector),
		renderer:  chart.NewRenderer(cfg.Chart),
		events:    make(chan Event, 16),
		frames:    make(chan Frame, 16),
	}
}

// Post queues ev for the loop. It blocks until the event is queued or ctx
// is done.
func (s *Session) Post(ctx context.Context, ev Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frames delivers rendered frames. It is closed when Run returns.
func (s *Session) Frames() <-chan Frame {
	return s.frames
}

// Run processes events until ctx is done
func (s *Session) Run(ctx context.Context) {
	defer close(s.frames)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending chart.Size
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-fire:
			fire = nil
			s.remount(ctx, pending)

		case ev := <-s.events:
			if s.records == nil {
				continue
			}
			switch ev := ev.(type) {
			case Resize:
				if s.cfg.Debounce <= 0 {
					s.remount(ctx, ev.Size)
					continue
				}
				pending = ev.Size
				if timer == nil {
					timer = time.NewTimer(s.cfg.Debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(s.cfg.Debounce)
				}
				fire = timer.C

			case Select:
				if !s.renderer.Bound() {
					continue
				}
				changed, err := s.renderer.OnLabelClick(ev.Axis, ev.Metric)
				if err != nil {
					s.fail(ctx, err)
					continue
				}
				if changed {
					s.emit(ctx)
				}

			case Hover:
				if !s.renderer.Bound() {
					continue
				}
				if err := s.renderer.HoverAbbr(ev.Abbr); err != nil {
					s.fail(ctx, err)
					continue
				}
				s.emit(ctx)

			case Leave:
				if !s.renderer.Bound() {
					continue
				}
				if err := s.renderer.LeaveAbbr(ev.Abbr); err != nil {
					s.fail(ctx, err)
					continue
				}
				s.emit(ctx)
			}
		}
	}
}

// remount rebuilds the chart for size, keeping the selection
func (s *Session) remount(ctx context.Context, size chart.Size) {
	var err error
	if s.renderer.Bound() {
		err = s.renderer.Resize(s.container, size)
	} else {
		err = s.renderer.Mount(s.container, size)
		if err == nil {
			err = s.renderer.BindData(s.records)
		}
	}
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.emit(ctx)
}

func (s *Session) emit(ctx context.Context) {
	var buf bytes.Buffer
	if err := render.SVG(&buf, s.container.Chart(), s.cfg.Chart.Clock.Now()); err != nil {
		s.fail(ctx, err)
		return
	}
	s.send(ctx, Frame{SVG: buf.Bytes()})
}

func (s *Session) fail(ctx context.Context, err error) {
	log.Printf("Chart %s: %v", s.cfg.Selector, err)
	s.send(ctx, Frame{Err: err})
}

func (s *Session) send(ctx context.Context, f Frame) {
	select {
	case s.frames <- f:
	case <-ctx.Done():
	}
}
