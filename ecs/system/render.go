package system

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/flickyfrog/common"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

// RenderSystem draws sprites as solid rectangles through the camera.
type RenderSystem struct {
	viewport  common.Viewport
	camEntity ecs.Entity
	pixel     *ebiten.Image
}

func NewRenderSystem(viewport common.Viewport) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(colorWhite)
	return &RenderSystem{viewport: viewport, pixel: pixel}
}

func (r *RenderSystem) SetViewport(viewport common.Viewport) {
	r.viewport = viewport
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX := cameraX(w, &r.camEntity)
	ppu := r.viewport.PixelsPerUnit()
	halfView := r.viewport.WidthUnits() / 2

	for _, d := range drawOrder(w) {
		t, s := d.transform, d.sprite
		if s.Width <= 0 || s.Height <= 0 {
			continue
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		width, height := s.Width*sx, s.Height*sy

		reach := math.Max(width, height) / 2
		if t.X+reach < camX-halfView || t.X-reach > camX+halfView {
			continue
		}

		px, py := r.viewport.WorldToScreen(t.X, t.Y, camX)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(width*ppu, height*ppu)
		// screen space is y-down
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Translate(px, py)
		op.ColorScale.ScaleWithColor(s.Color)

		screen.DrawImage(r.pixel, op)
	}
}

type drawable struct {
	entity    ecs.Entity
	transform component.Transform
	sprite    component.Sprite
}

// drawOrder returns the sprited entities sorted by layer, then entity id.
func drawOrder(w *ecs.World) []drawable {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	out := make([]drawable, 0, len(entities))
	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent)
		if !ok {
			continue
		}
		out = append(out, drawable{entity: e, transform: t, sprite: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].sprite.Layer != out[j].sprite.Layer {
			return out[i].sprite.Layer < out[j].sprite.Layer
		}
		return uint64(out[i].entity) < uint64(out[j].entity)
	})
	return out
}

// cameraX resolves the camera entity, caching it in cached.
func cameraX(w *ecs.World, cached *ecs.Entity) float64 {
	if !cached.Valid() || !w.IsAlive(*cached) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return 0
		}
		*cached = camEntity
	}
	if camTransform, ok := ecs.Get(w, *cached, component.TransformComponent); ok {
		return camTransform.X
	}
	return 0
}
