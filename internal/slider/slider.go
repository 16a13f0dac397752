// Package slider implements the hero carousel as a single timer-driven state
// machine. The track is the real slides wrapped in boundary clones,
// [last, real..., first]; landing on a clone snaps to the matching real slide
// without animation, which closes the loop.
//
// The machine never reads the clock itself. Callers pass the current time to
// every method, so one owner drives it from whatever timer source it has.
package slider

import (
	"math"
	"time"
)

// Phase is the animation state.
type Phase int

const (
	Idle Phase = iota
	Animating
	SnappingBack
)

func (p Phase) String() string {
	switch p {
	case Animating:
		return "animating"
	case SnappingBack:
		return "snapping-back"
	}
	return "idle"
}

type axis int

const (
	axisUnknown axis = iota
	axisHorizontal
	axisVertical
)

// Config holds the timing and gesture constants.
type Config struct {
	AutoplayInterval   time.Duration
	TransitionDuration time.Duration
	// SwipeThreshold is the fraction of the slide width a drag must cover to
	// commit to the neighbouring slide.
	SwipeThreshold float64
	// AxisLockDistance is the displacement in pixels after which a gesture is
	// classified as horizontal or vertical.
	AxisLockDistance float64
	// Easing holds the cubic-bezier control points x1, y1, x2, y2.
	Easing [4]float64
}

// DefaultEasing is the CSS "ease" curve.
var DefaultEasing = [4]float64{0.25, 0.1, 0.25, 1.0}

// DefaultConfig 与前台轮播保持一致：4 秒自动切换，0.8 秒过渡，拖动超过 20% 即翻页。
func DefaultConfig() Config {
	return Config{
		AutoplayInterval:   4 * time.Second,
		TransitionDuration: 800 * time.Millisecond,
		SwipeThreshold:     0.2,
		AxisLockDistance:   10,
		Easing:             DefaultEasing,
	}
}

// Augment wraps items in boundary clones. Lists shorter than two are returned
// as a copy without clones.
func Augment[T any](items []T) []T {
	if len(items) < 2 {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items)+2)
	out = append(out, items[len(items)-1])
	out = append(out, items...)
	return append(out, items[0])
}

// StartIndex is the track index of the first real slide.
func StartIndex(count int) int {
	if count < 2 {
		return 0
	}
	return 1
}

// State is a snapshot for rendering.
type State struct {
	Index     int
	ActiveDot int
	Phase     Phase
	Translate float64
}

// Slider 是轮播的状态机，非并发安全，由单一调用方驱动。
type Slider struct {
	cfg   Config
	count int
	width float64
	ease  func(float64) float64

	index     int
	phase     Phase
	translate float64
	idleSince time.Time

	from, to  float64
	startedAt time.Time

	dragging         bool
	axis             axis
	originX, originY float64
	dragBase         float64
}

// New creates a slider over count real slides of the given pixel width,
// resting on the first real slide.
func New(count int, width float64, cfg Config, now time.Time) *Slider {
	if cfg.Easing == ([4]float64{}) {
		cfg.Easing = DefaultEasing
	}
	s := &Slider{
		cfg:       cfg,
		count:     count,
		width:     width,
		ease:      cubicBezier(cfg.Easing[0], cfg.Easing[1], cfg.Easing[2], cfg.Easing[3]),
		index:     StartIndex(count),
		idleSince: now,
	}
	s.translate = s.offsetOf(s.index)
	return s
}

// Looping reports whether the track has boundary clones.
func (s *Slider) Looping() bool {
	return s.count >= 2
}

// Index returns the current track index.
func (s *Slider) Index() int { return s.index }

// Phase returns the current animation phase.
func (s *Slider) Phase() Phase { return s.phase }

// ActiveDot maps the track index to the real slide shown, 0-based.
func (s *Slider) ActiveDot() int {
	if !s.Looping() {
		return 0
	}
	switch s.index {
	case 0:
		return s.count - 1
	case s.count + 1:
		return 0
	}
	return s.index - 1
}

// State returns a rendering snapshot at now.
func (s *Slider) State(now time.Time) State {
	return State{
		Index:     s.index,
		ActiveDot: s.ActiveDot(),
		Phase:     s.phase,
		Translate: s.Translate(now),
	}
}

// Translate returns the horizontal track offset in pixels at now.
func (s *Slider) Translate(now time.Time) float64 {
	if s.phase != Animating {
		return s.translate
	}
	return s.from + (s.to-s.from)*s.ease(s.progress(now))
}

// Resize changes the slide width, rescaling any offsets in flight.
func (s *Slider) Resize(width float64) {
	if width <= 0 || width == s.width {
		return
	}
	if s.width > 0 {
		ratio := width / s.width
		s.from *= ratio
		s.to *= ratio
		s.dragBase *= ratio
	}
	s.width = width
	if !s.dragging {
		s.translate = s.offsetOf(s.index)
	}
}

// Tick advances timers: it settles a finished animation, snaps back from a
// boundary clone, and autoplays after the idle interval.
func (s *Slider) Tick(now time.Time) Phase {
	switch s.phase {
	case Animating:
		if s.progress(now) < 1 {
			return s.phase
		}
		s.settle(s.startedAt.Add(s.cfg.TransitionDuration))
		if s.phase == SnappingBack {
			return s.phase
		}
	case SnappingBack:
		s.phase = Idle
	}

	if s.phase == Idle && !s.dragging && s.Looping() && s.cfg.AutoplayInterval > 0 &&
		!now.Before(s.idleSince.Add(s.cfg.AutoplayInterval)) {
		s.animateTo(s.index+1, now)
	}
	return s.phase
}

// Next moves one slide forward. It is ignored while a move is in flight.
func (s *Slider) Next(now time.Time) bool {
	if !s.acceptsInput() {
		return false
	}
	s.animateTo(s.index+1, now)
	return true
}

// Prev moves one slide back. It is ignored while a move is in flight.
func (s *Slider) Prev(now time.Time) bool {
	if !s.acceptsInput() {
		return false
	}
	s.animateTo(s.index-1, now)
	return true
}

// GoTo jumps to real slide i (0-based). It is ignored while a move is in
// flight or when i is out of range.
func (s *Slider) GoTo(i int, now time.Time) bool {
	if !s.acceptsInput() || i < 0 || i >= s.count {
		return false
	}
	s.animateTo(i+StartIndex(s.count), now)
	return true
}

// PointerDown starts a drag at (x, y).
func (s *Slider) PointerDown(x, y float64, now time.Time) bool {
	if !s.acceptsInput() || s.width <= 0 {
		return false
	}
	if s.phase == SnappingBack {
		s.phase = Idle
	}
	s.dragging = true
	s.axis = axisUnknown
	s.originX, s.originY = x, y
	s.dragBase = s.translate
	return true
}

// PointerMove follows the pointer. It returns true when the gesture is a
// horizontal swipe the caller should consume; vertical gestures are left to
// the page so scrolling keeps working.
func (s *Slider) PointerMove(x, y float64) bool {
	if !s.dragging {
		return false
	}
	dx, dy := x-s.originX, y-s.originY

	if s.axis == axisUnknown && (math.Abs(dx) > s.cfg.AxisLockDistance || math.Abs(dy) > s.cfg.AxisLockDistance) {
		if math.Abs(dx) > math.Abs(dy) {
			s.axis = axisHorizontal
		} else {
			s.axis = axisVertical
		}
	}
	if s.axis != axisHorizontal {
		return false
	}

	minT := -float64(s.count+1) * s.width
	s.translate = math.Max(minT, math.Min(0, s.dragBase+dx))
	return true
}

// PointerUp ends a drag and animates to the slide it resolves to.
func (s *Slider) PointerUp(now time.Time) {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.axis != axisHorizontal {
		s.translate = s.offsetOf(s.index)
		return
	}

	movedBy := s.translate - s.dragBase
	pos := -s.translate / s.width
	next := int(math.Round(pos))
	switch limit := s.width * s.cfg.SwipeThreshold; {
	case movedBy < -limit:
		next = int(math.Ceil(pos))
	case movedBy > limit:
		next = int(math.Floor(pos))
	}
	if next < 0 {
		next = 0
	}
	if next > s.count+1 {
		next = s.count + 1
	}
	s.animateTo(next, now)
}

func (s *Slider) acceptsInput() bool {
	return s.Looping() && !s.dragging && s.phase != Animating
}

func (s *Slider) animateTo(index int, now time.Time) {
	s.from = s.Translate(now)
	s.to = s.offsetOf(index)
	s.index = index
	s.startedAt = now
	s.phase = Animating
	if s.cfg.TransitionDuration <= 0 {
		s.settle(now)
	}
}

// settle lands the finished animation at endAt and snaps off a boundary clone.
func (s *Slider) settle(endAt time.Time) {
	s.translate = s.to
	s.phase = Idle
	s.idleSince = endAt

	target := s.index
	switch s.index {
	case 0:
		target = s.count
	case s.count + 1:
		target = 1
	}
	if target != s.index {
		s.index = target
		s.translate = s.offsetOf(target)
		s.phase = SnappingBack
	}
}

func (s *Slider) progress(now time.Time) float64 {
	if s.cfg.TransitionDuration <= 0 {
		return 1
	}
	p := float64(now.Sub(s.startedAt)) / float64(s.cfg.TransitionDuration)
	return math.Max(0, math.Min(1, p))
}

func (s *Slider) offsetOf(index int) float64 {
	return -float64(index) * s.width
}
