// Package demo is a small scene exercising the engine: generated
// sprites bouncing under different blend modes, rotation, pixel-exact
// collision feedback, mouse tracking and the frame timing bar.
package demo

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/avico/go-blit/blit"
	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
	"github.com/avico/go-blit/blit/gfx"
)

// Scene holds the demo's state between frames.
type Scene struct {
	engine *blit.Engine

	ballID int
	time   float32
	pos    geom.Point
	vel    geom.Point
	frames int
}

// New creates the demo scene for an engine.
func New(e *blit.Engine) *Scene {
	return &Scene{
		engine: e,
		pos:    geom.Pt(40, 40),
		vel:    geom.Pt(55, 38),
	}
}

// Entry generates the demo's sprite if no loaded sheet matches.
func (s *Scene) Entry(args []string) {
	s.ballID = s.engine.Sprites.FindID("ball")
	if s.ballID < 0 {
		s.ballID = s.makeBall()
	}
	s.engine.Sprites.CentreOrigin(s.ballID)
	slog.Info("Demo scene ready", "ball_sprite", s.ballID)
}

// makeBall registers a 4-frame generated ball sheet, 16x16 per frame.
func (s *Scene) makeBall() int {
	const size = 16
	canvas, _ := buffer.New(size*4, size)
	shades := [4]buffer.Pixel{buffer.Red, buffer.Yellow, buffer.Green, buffer.Cyan}
	for f := 0; f < 4; f++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx := float32(x) - size/2 + 0.5
				dy := float32(y) - size/2 + 0.5
				if dx*dx+dy*dy <= (size/2-1)*(size/2-1) {
					canvas.SetPixel(f*size+x, y, shades[f])
				}
			}
		}
	}
	id, err := s.engine.Sprites.Add("ball_4", canvas, 4, 1)
	if err != nil {
		slog.Error("Failed to register demo sprite", "error", err)
		return -1
	}
	return id
}

// Update draws one frame. Returns true when the demo decides to quit
// (it never does; quitting comes from the backend).
func (s *Scene) Update(elapsed float32) bool {
	g := s.engine.Gfx
	w := float32(s.engine.Display().Width())
	h := float32(s.engine.Display().Height())

	s.engine.Bar.Begin(buffer.Blue)
	s.time += elapsed
	s.frames++

	// Move and bounce.
	s.pos = s.pos.Add(s.vel.Scale(elapsed))
	if s.pos.X < 8 || s.pos.X > w-8 {
		s.vel.X = -s.vel.X
	}
	if s.pos.Y < 8 || s.pos.Y > h-8 {
		s.vel.Y = -s.vel.Y
	}

	g.Clear(buffer.ARGB(255, 16, 16, 32))
	s.engine.Bar.SetColour(buffer.Green)

	// Primitives.
	g.DrawRect(geom.Pt(2, 2), geom.Pt(w-3, h-3), buffer.Grey, false)
	g.DrawCircle(geom.Pt(w/2, h/2), int(h/3), buffer.ARGB(255, 60, 60, 90))
	g.DrawLine(geom.Pt(2, 2), geom.Pt(w-3, h-3), buffer.ARGB(80, 255, 255, 255))

	// Sprites: one plain animated, one rotating, one additive ghost.
	frame := int(s.time*8) % 4
	g.Draw(s.ballID, s.pos, frame)
	centre := geom.Pt(w/2, h/2)
	g.DrawRotated(s.ballID, centre, 0, s.time, 2, gfx.White)

	g.SetBlendMode(gfx.BlendAdd)
	g.DrawTransparent(s.ballID, geom.Pt(w/2+math32.Cos(s.time)*40, h/2+math32.Sin(s.time)*40),
		1, gfx.Alpha(0.5))
	g.SetBlendMode(gfx.BlendNormal)

	s.engine.Bar.SetColour(buffer.Orange)

	// Pixel-exact collision between the bouncer and the spinner.
	ta := geom.Translation(s.pos.X, s.pos.Y)
	tb := geom.RotScaleTrans(s.time, 2, centre)
	if g.SpriteCollide(s.ballID, frame, ta, s.ballID, 0, tb) {
		g.DrawDebugString(geom.Pt(w/2, h-12), "HIT", buffer.Red, true)
	}

	// HUD.
	if s.engine.Mouse.Pos.X >= 0 {
		g.DrawCircle(s.engine.Mouse.Pos, 3, buffer.White)
	}
	hud := fmt.Sprintf("%5.1fms present", float32(s.engine.LastPresentDuration().Microseconds())/1000)
	g.DrawDebugString(geom.Pt(4, h-12), hud, buffer.White, false)

	g.DrawTimingBar(s.engine.Bar, geom.Pt(4, 4), geom.Pt(w-8, 4))
	return false
}

// Exit reports the demo's final statistics and the process status.
func (s *Scene) Exit() int {
	slog.Info("Demo finished", "frames", s.frames)
	return 0
}
