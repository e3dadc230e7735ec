package prefabs

import (
	"fmt"

	"github.com/milk9111/flickyfrog/ecs/component"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Layer  int        `yaml:"layer"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
	VelocityX  float64 `yaml:"velocity_x"`
	VelocityY  float64 `yaml:"velocity_y"`
}

type CollisionLayerComponentSpec struct {
	Category []string `yaml:"category"`
	Mask     []string `yaml:"mask"`
}

type CameraComponentSpec struct {
	Target string  `yaml:"target"`
	Lead   float64 `yaml:"lead"`
}

var layerBits = map[string]uint32{
	"rope":   component.LayerRope,
	"player": component.LayerPlayer,
	"pillar": component.LayerPillar,
	"ground": component.LayerGround,
}

// LayerBits folds layer names into a bitmask.
func LayerBits(names []string) (uint32, error) {
	var bits uint32
	for _, name := range names {
		bit, ok := layerBits[name]
		if !ok {
			return 0, fmt.Errorf("prefabs: unknown collision layer %q", name)
		}
		bits |= bit
	}
	return bits, nil
}
