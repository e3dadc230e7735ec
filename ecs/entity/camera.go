package entity

import (
	"fmt"

	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml")
}

func NewCameraAt(w *ecs.World, x float64) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, 0, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}

// SetCameraLead updates the lead of every camera.
func SetCameraLead(w *ecs.World, lead float64) {
	ecs.ForEach(w, component.CameraComponent, func(_ ecs.Entity, cam *component.Camera) {
		cam.Lead = lead
	})
}
