package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/sparsecs/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	world        *ecs.World
	scheduler    *ecs.Scheduler
	timer        *debugui.FrameTimer
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	// Systems run inside the ImGui frame so ImguiSystem can issue widgets
	return g.imguiBackend.Get().Frame(func() error {
		return g.scheduler.Once(float64(g.timer.GetDeltaTime()))
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	world := ecs.NewWorld(4096)

	// Register ImGui backend as a singleton
	ecs.SetSingleton(world, debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720))
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	// Entities with ImGui render functions
	_ = ecs.AddComponent(world, world.Create(), debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	// Built-in inspection windows
	if err := debugui.SpawnDebugUI(world); err != nil {
		panic(err)
	}

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.DebugUISystem{})

	game := &Game{
		world:        world,
		scheduler:    scheduler,
		timer:        debugui.NewFrameTimer(),
		imguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](world),
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
