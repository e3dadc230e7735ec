package entity

import (
	"fmt"

	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/levels"
)

// LoadLevelToWorld creates the ground and every pillar of a layout.
func LoadLevelToWorld(w *ecs.World, layout *levels.Layout) error {
	if layout == nil {
		return fmt.Errorf("level: layout is nil")
	}
	if _, err := NewGround(w); err != nil {
		return fmt.Errorf("level: ground: %w", err)
	}
	for i, p := range layout.Pillars {
		if _, err := NewPillar(w, p.X, p.Y, p.Height); err != nil {
			return fmt.Errorf("level: pillar %d: %w", i, err)
		}
	}
	return nil
}
