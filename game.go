package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flickyfrog/common"
	"github.com/milk9111/flickyfrog/ecs"
	"github.com/milk9111/flickyfrog/ecs/component"
	"github.com/milk9111/flickyfrog/ecs/entity"
	"github.com/milk9111/flickyfrog/ecs/system"
	"github.com/milk9111/flickyfrog/levels"
	"github.com/milk9111/flickyfrog/prefabs"
	"golang.org/x/image/colornames"
)

type Options struct {
	Debug   bool
	Seed    int64
	Pillars int
}

type Game struct {
	opts      Options
	worldSpec *prefabs.WorldSpec
	viewport  common.Viewport

	world     *ecs.World
	scheduler *ecs.Scheduler
	pointer   *system.EbitenPointer
	physics   *system.PhysicsSystem
	camera    *system.CameraSystem
	tongue    *system.TongueSystem
	render    *system.RenderSystem

	watcher *prefabs.Watcher
	stats   system.DebugStats
	tick    uint64

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.Pillars > 0 {
		worldSpec.PillarCount = opts.Pillars
	}
	if opts.Seed != 0 {
		worldSpec.Seed = opts.Seed
	}
	if worldSpec.Seed == 0 {
		worldSpec.Seed = time.Now().UnixNano()
	}
	if worldSpec.ScreenWidth <= 0 || worldSpec.ScreenHeight <= 0 {
		return nil, errors.New("game: world.yaml: screen size must be positive")
	}

	tongueSpec, err := prefabs.LoadTongueSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		opts:      opts,
		worldSpec: worldSpec,
		viewport: common.Viewport{
			Width:       float64(worldSpec.ScreenWidth),
			Height:      float64(worldSpec.ScreenHeight),
			HeightUnits: worldSpec.WorldHeightUnits,
		},
	}
	g.pointer = system.NewEbitenPointer(g.viewport.Width, g.viewport.Height)
	g.tongue = system.NewTongueSystem(chainTuning(tongueSpec), tongueColor(tongueSpec))
	g.pauseUI = NewPauseUI(g)

	if err := g.reset(); err != nil {
		return nil, err
	}
	log.Printf("level seed %d, %d pillars", worldSpec.Seed, worldSpec.PillarCount)

	if opts.Debug {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

// reset builds a fresh world from the current level seed.
func (g *Game) reset() error {
	spec := g.worldSpec
	layout, err := levels.NewScriptGenerator(spec.PillarCount, spec.WorldHeightUnits, spec.Seed).Generate()
	if err != nil {
		return fmt.Errorf("game: generate level: %w", err)
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, layout); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewPlayerAt(w, -g.viewport.WidthUnits()/2, -spec.WorldHeightUnits/4); err != nil {
		return fmt.Errorf("game: player: %w", err)
	}
	if _, err := entity.NewCameraAt(w, 0); err != nil {
		return fmt.Errorf("game: camera: %w", err)
	}

	if _, err := w.Single(component.CharacterComponent); err != nil {
		return fmt.Errorf("game: character: %w", err)
	}
	if _, err := w.Single(component.CameraComponent); err != nil {
		return fmt.Errorf("game: camera: %w", err)
	}

	tongueSpec, err := prefabs.LoadTongueSpec()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.physics = system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:        spec.Gravity,
		Substeps:       spec.Substeps,
		Iterations:     spec.Iterations,
		StiffnessScale: tongueSpec.StiffnessScale,
	})
	g.camera = system.NewCameraSystem(g.viewport)
	g.render = system.NewRenderSystem(g.viewport)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.pointer),
		g.physics,
		g.camera,
		g.tongue,
	)
	g.world = w
	g.stats = system.DebugStats{}
	g.tick = 0
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollPrefabs()

	g.tick++
	g.world.SetFrame(ecs.Frame{DT: 1.0 / float64(ebiten.TPS()), Tick: g.tick})
	g.scheduler.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		g.stats.Record(evt)
	}
	return nil
}

func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("prefab watcher: %v", err)
	default:
	}

	for _, name := range g.watcher.Poll() {
		switch name {
		case "tongue.yaml":
			spec, err := prefabs.LoadTongueSpec()
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			g.tongue.SetTuning(chainTuning(spec), tongueColor(spec))
			g.physics.SetStiffnessScale(spec.StiffnessScale)
			log.Printf("reloaded %s", name)
		case "camera.yaml":
			lead, err := cameraLead()
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			entity.SetCameraLead(g.world, lead)
			log.Printf("reloaded %s", name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Lightskyblue)
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, g.viewport, screen)
		system.DrawTongueDebug(g.world, g.stats, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.worldSpec.ScreenWidth, g.worldSpec.ScreenHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close prefab watcher: %v", err)
		}
	}
}

func chainTuning(spec *prefabs.TongueSpec) system.ChainTuning {
	t := system.DefaultChainTuning()
	if spec == nil {
		return t
	}
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&t.SegmentWidth, spec.SegmentWidth)
	set(&t.SegmentMass, spec.SegmentMass)
	set(&t.TrimFactor, spec.TrimFactor)
	set(&t.CharacterCompliance, spec.CharacterCompliance)
	set(&t.SegmentCompliance, spec.SegmentCompliance)
	set(&t.PillarCompliance, spec.PillarCompliance)
	return t
}

func tongueColor(spec *prefabs.TongueSpec) color.RGBA {
	if spec == nil || spec.Color == nil {
		return colornames.Red
	}
	return spec.Color.RGBA
}

func cameraLead() (float64, error) {
	spec, err := prefabs.LoadEntityBuildSpec("camera.yaml")
	if err != nil {
		return 0, err
	}
	cam, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](spec.Components["camera"])
	if err != nil {
		return 0, err
	}
	return cam.Lead, nil
}
