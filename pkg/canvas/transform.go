package canvas

import "cogentcore.org/core/math32"

// Zoom bounds and the multiplicative step applied per wheel notch.
const (
	MinZoom  = 0.1
	MaxZoom  = 5.0
	ZoomStep = 1.1
)

// Zoom returns the current zoom factor.
func (c *Canvas) Zoom() float32 { return c.zoom }

// Pan returns the current pan offset in screen space.
func (c *Canvas) Pan() math32.Vector2 { return c.pan }

// SetPan replaces the pan offset.
func (c *Canvas) SetPan(pan math32.Vector2) { c.pan = pan }

// SetZoom sets the zoom factor clamped to the allowed range, keeping the
// canvas origin's screen position fixed.
func (c *Canvas) SetZoom(zoom float32) {
	c.zoom = math32.Clamp(zoom, MinZoom, MaxZoom)
}

// ScreenToCanvas converts a screen-space position to canvas space.
func (c *Canvas) ScreenToCanvas(p math32.Vector2) math32.Vector2 {
	return p.Sub(c.pan).DivScalar(c.zoom)
}

// CanvasToScreen converts a canvas-space position to screen space. It is the
// exact inverse of [Canvas.ScreenToCanvas] up to float precision.
func (c *Canvas) CanvasToScreen(p math32.Vector2) math32.Vector2 {
	return p.MulScalar(c.zoom).Add(c.pan)
}

// ZoomAt applies notches wheel steps (positive zooms in) anchored at the
// given screen position: the canvas point under the cursor stays under the
// cursor. Each notch scales zoom by 10%, clamped to [MinZoom, MaxZoom].
func (c *Canvas) ZoomAt(screen math32.Vector2, notches float32) {
	target := math32.Clamp(c.zoom*math32.Pow(ZoomStep, notches), MinZoom, MaxZoom)
	if target == c.zoom {
		return
	}

	anchor := c.ScreenToCanvas(screen)
	c.zoom = target
	c.pan = screen.Sub(anchor.MulScalar(c.zoom))
}
