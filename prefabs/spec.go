package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec holds the world scale and simulation settings.
type WorldSpec struct {
	WorldSize        float64 `yaml:"world_size"`
	WorldHeightUnits float64 `yaml:"world_height_units"`
	Gravity          float64 `yaml:"gravity"`
	Substeps         int     `yaml:"substeps"`
	Iterations       int     `yaml:"iterations"`
	ScreenWidth      int     `yaml:"screen_width"`
	ScreenHeight     int     `yaml:"screen_height"`
	PillarCount      int     `yaml:"pillar_count"`
	Seed             int64   `yaml:"seed"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// TongueSpec tunes chain synthesis.
type TongueSpec struct {
	SegmentWidth        float64    `yaml:"segment_width"`
	SegmentMass         float64    `yaml:"segment_mass"`
	TrimFactor          float64    `yaml:"trim_factor"`
	CharacterCompliance float64    `yaml:"character_compliance"`
	SegmentCompliance   float64    `yaml:"segment_compliance"`
	PillarCompliance    float64    `yaml:"pillar_compliance"`
	StiffnessScale      float64    `yaml:"stiffness_scale"`
	Color               *YAMLColor `yaml:"color"`
}

func LoadTongueSpec() (*TongueSpec, error) {
	spec, err := LoadSpec[TongueSpec]("tongue.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts either a CSS color name ("red") or a #RRGGBB[AA] hex string.
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.RGBA = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
