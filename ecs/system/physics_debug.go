package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/flickyfrog/common"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func DrawPhysicsDebug(space *cp.Space, w *ecs.World, viewport common.Viewport, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	var camEntity ecs.Entity
	drawer := &physicsDebugDrawer{
		screen:   screen,
		viewport: viewport,
		camX:     cameraX(w, &camEntity),
	}
	cp.DrawSpace(space, drawer)
}

// DebugStats are tongue counters accumulated from world events.
type DebugStats struct {
	Generations       int
	SegmentsSpawned   int
	JointsSpawned     int
	EntitiesDespawned int
}

func (s *DebugStats) Record(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventTongueSegmentSpawned:
		s.SegmentsSpawned++
	case ecs.EventTongueJointSpawned:
		s.JointsSpawned++
	case ecs.EventTongueDespawned:
		if data, ok := evt.Data.(ecs.TongueDespawnEvent); ok {
			s.Generations++
			s.EntitiesDespawned += len(data.Entities)
		}
	}
}

func DrawTongueDebug(w *ecs.World, stats DebugStats, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.CharacterComponent.Kind())
	if !ok {
		return
	}
	tongue, _ := ecs.Get(w, player, component.TongueComponent)
	character, _ := ecs.Get(w, player, component.CharacterComponent)
	input, _ := ecs.Get(w, player, component.InputComponent)

	text := fmt.Sprintf("TPS: %0.1f FPS: %0.1f\nTongue: %s (gen %d)\nTongueOut: %v\nSegments: %d Joints: %d\nLast intent: %s %s\nReleased generations: %d (%d entities)",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		tongue.State, tongue.Generation,
		character.TongueOut,
		len(tongue.Segments), len(tongue.Joints),
		input.Intent, input.Side,
		stats.Generations, stats.EntitiesDespawned)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen   *ebiten.Image
	viewport common.Viewport
	camX     float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

// DrawDot sizes are in pixels.
func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.viewport.PixelsPerUnit()
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.viewport.WorldToScreen(a.X, a.Y, d.camX)
	x2, y2 := d.viewport.WorldToScreen(b.X, b.Y, d.camX)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(color))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
