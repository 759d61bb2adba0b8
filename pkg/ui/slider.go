package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a simple UI widget
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	Step     float64 // when > 0, Value snaps to Min + k*Step
	X, Y     float64
	W, H     float64

	changed bool
}

// NewSlider creates a new slider instance
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     14,
	}
	s.Value = s.snap(value)
	return s
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	s.changed = false
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if !inside(float64(mx), float64(my), s.X, s.Y, s.W, s.H) {
		return
	}
	// Calculate value based on horizontal position
	v := s.snap(s.Min + (float64(mx)-s.X)/s.W*(s.Max-s.Min))
	if v != s.Value {
		s.Value = v
		s.changed = true
	}
}

// Changed reports whether the last Update moved the value.
func (s *Slider) Changed() bool { return s.changed }

// Int returns Value rounded to the nearest integer.
func (s *Slider) Int() int { return int(math.Round(s.Value)) }

// Text formats the current value for display next to the label.
func (s *Slider) Text() string {
	if s.Step >= 1 {
		return fmt.Sprintf("%d", s.Int())
	}
	return fmt.Sprintf("%.2f", s.Value)
}

func (s *Slider) snap(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	if s.Max <= s.Min {
		return
	}
	// Draw Value Bar (Light Gray/White)
	ratio := (s.Value - s.Min) / (s.Max - s.Min)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}

// inside reports whether (px, py) lies in the rectangle at (x, y) of size w*h.
func inside(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
