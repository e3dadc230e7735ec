package prefabs

import (
	"image/color"
	"testing"

	"github.com/milk9111/flickyfrog/ecs/component"
	"gopkg.in/yaml.v3"
)

func TestLoadTongueSpec(t *testing.T) {
	spec, err := LoadTongueSpec()
	if err != nil {
		t.Fatalf("load tongue spec: %v", err)
	}
	if spec.SegmentWidth != 0.1 || spec.SegmentMass != 0.001 {
		t.Fatalf("unexpected segment settings: %+v", spec)
	}
	if spec.CharacterCompliance != 0.01 || spec.SegmentCompliance != 0.001 || spec.PillarCompliance != 0.01 {
		t.Fatalf("unexpected compliance settings: %+v", spec)
	}
	if spec.Color == nil || spec.Color.RGBA != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("expected red tongue color, got %+v", spec.Color)
	}
}

func TestLoadWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("load world spec: %v", err)
	}
	if spec.Substeps != 10 {
		t.Fatalf("expected 10 substeps, got %d", spec.Substeps)
	}
	if spec.WorldHeightUnits != 32 || spec.WorldSize != 32 {
		t.Fatalf("unexpected world scale: %+v", spec)
	}
}

func TestEntityPrefabsDefineComponents(t *testing.T) {
	for _, name := range []string{"player.yaml", "pillar.yaml", "ground.yaml", "camera.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if len(spec.Components) == 0 {
				t.Fatalf("%s defines no components", name)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "named", in: "green", want: color.RGBA{G: 128, A: 255}},
		{name: "hex", in: "'#102030'", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{name: "hex_alpha", in: "'#10203040'", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{name: "garbage", in: "not-a-color", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if c.RGBA != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, c.RGBA)
			}
		})
	}
}

func TestLayerBits(t *testing.T) {
	bits, err := LayerBits([]string{"ground", "pillar"})
	if err != nil {
		t.Fatalf("layer bits: %v", err)
	}
	if bits != component.LayerGround|component.LayerPillar {
		t.Fatalf("unexpected bits %b", bits)
	}
	if _, err := LayerBits([]string{"water"}); err == nil {
		t.Fatalf("expected error for unknown layer")
	}
}
