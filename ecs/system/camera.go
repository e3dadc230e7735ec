package system

import (
	"github.com/milk9111/flickyfrog/common"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

// TrackCamera steps the camera toward the character plus offset. It reports
// false when the camera is already there.
func TrackCamera(cameraX, characterX, offset, dt float64) (float64, bool) {
	target := characterX + offset
	if target-cameraX == 0 {
		return cameraX, false
	}
	return common.Lerp(cameraX, target, dt), true
}

type CameraSystem struct {
	viewport     common.Viewport
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(viewport common.Viewport) *CameraSystem {
	return &CameraSystem{viewport: viewport}
}

func (cs *CameraSystem) SetViewport(viewport common.Viewport) {
	cs.viewport = viewport
}

// Update moves the camera entity horizontally after its target.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		targetEntity := findEntityByNameOrTag(w, camComp.TargetName)
		if !targetEntity.Valid() {
			return
		}
		cs.targetEntity = targetEntity
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return
	}

	if cs.viewport.Valid() {
		offset := cs.viewport.WidthUnits() * camComp.Lead
		if offset != camComp.Offset {
			camComp.Offset = offset
			if err := ecs.Add(w, cs.camEntity, component.CameraComponent, camComp); err != nil {
				panic("camera system: update camera: " + err.Error())
			}
		}
	}

	x, moved := TrackCamera(camTransform.X, targetTransform.X, camComp.Offset, w.Frame().DT)
	if !moved {
		return
	}
	camTransform.X = x
	if err := ecs.Add(w, cs.camEntity, component.TransformComponent, camTransform); err != nil {
		panic("camera system: update transform: " + err.Error())
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
