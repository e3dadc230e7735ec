package entity

import (
	"fmt"

	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
)

// NewPillar builds a pillar centered on (x, y). The prefab's 1x1 collider and
// sprite are stretched to height.
func NewPillar(w *ecs.World, x, y, height float64) (ecs.Entity, error) {
	pillar, err := BuildEntity(w, "pillar.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, pillar, x, y, 0); err != nil {
		return 0, fmt.Errorf("pillar: override transform: %w", err)
	}

	body, _ := ecs.Get(w, pillar, component.PhysicsBodyComponent)
	body.Height = height
	if err := ecs.Add(w, pillar, component.PhysicsBodyComponent, body); err != nil {
		return 0, fmt.Errorf("pillar: override body: %w", err)
	}
	sprite, _ := ecs.Get(w, pillar, component.SpriteComponent)
	sprite.Height = height
	if err := ecs.Add(w, pillar, component.SpriteComponent, sprite); err != nil {
		return 0, fmt.Errorf("pillar: override sprite: %w", err)
	}
	return pillar, nil
}

func NewGround(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "ground.yaml")
}
