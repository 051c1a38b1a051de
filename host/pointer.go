package host

import (
	"context"
	"math"
	"time"
)

// PointerSettings tunes the mouse motion model
type PointerSettings struct {
	MaxSpeed     float64
	SpeedMulti   float64
	Acceleration float64
	Friction     float64
}

// DefaultPointerSettings matches a comfortable 60 Hz cursor
func DefaultPointerSettings() PointerSettings {
	return PointerSettings{
		MaxSpeed:     4,
		SpeedMulti:   1,
		Acceleration: 0.3,
		Friction:     0.85,
	}
}

// Pointer turns held mouse directions into cursor motion
type Pointer struct {
	settings  PointerSettings
	mouse     Mouse
	direction func() Direction

	velocityX float64
	velocityY float64
}

// NewPointer creates a pointer reading directions from direction
func NewPointer(mouse Mouse, direction func() Direction, settings PointerSettings) *Pointer {
	return &Pointer{settings: settings, mouse: mouse, direction: direction}
}

// Velocity returns the current velocity
func (p *Pointer) Velocity() (float64, float64) {
	return p.velocityX, p.velocityY
}

// Step advances the motion model by one tick
func (p *Pointer) Step() error {
	d := p.direction()
	maxSpeed := p.settings.MaxSpeed

	// Calculate input direction
	inputX := float64(0)
	inputY := float64(0)
	if d.Left {
		inputX -= maxSpeed
	}
	if d.Right {
		inputX += maxSpeed
	}
	if d.Up {
		inputY -= maxSpeed
	}
	if d.Down {
		inputY += maxSpeed
	}
	return p.accelerate(inputX, inputY)
}

// accelerate adjusts velocity based on input direction
func (p *Pointer) accelerate(inputX, inputY float64) error {
	actualSpeed := p.settings.MaxSpeed * p.settings.SpeedMulti
	// Apply acceleration in the input direction
	if inputX != 0 {
		p.velocityX += inputX * p.settings.Acceleration
	} else {
		// Apply friction when no input
		p.velocityX *= p.settings.Friction
	}

	if inputY != 0 {
		p.velocityY += inputY * p.settings.Acceleration
	} else {
		p.velocityY *= p.settings.Friction
	}

	// Clamp to maximum speed
	speed := math.Sqrt(p.velocityX*p.velocityX + p.velocityY*p.velocityY)
	if speed > actualSpeed {
		scale := actualSpeed / speed
		p.velocityX *= scale
		p.velocityY *= scale
	}

	// Cut off tiny movements
	if math.Abs(p.velocityX) < 0.1 {
		p.velocityX = 0
	}
	if math.Abs(p.velocityY) < 0.1 {
		p.velocityY = 0
	}

	// while moving, move the mouse
	if p.velocityX != 0 || p.velocityY != 0 {
		return p.mouse.Move(int32(p.velocityX), int32(p.velocityY))
	}
	return nil
}

// Run ticks the pointer until ctx is done. Move errors are passed to onErr.
func (p *Pointer) Run(ctx context.Context, interval time.Duration, onErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Step(); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
