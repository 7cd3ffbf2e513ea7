package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/sparsecs/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	Entities ecs.Query2[Transform, Speed]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.Each(func(_ ecs.Entity, t *Transform, sp *Speed) {
		t.X += sp.DX * float32(frame.DeltaTime)
		t.Y += sp.DY * float32(frame.DeltaTime)
	})
}

type HealingSystem struct {
	Entities  ecs.Query[Hitpoints]
	RegenRate float32
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.Each(func(_ ecs.Entity, hp *Hitpoints) {
		if hp.Current < hp.Max {
			hp.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
		}
	})
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// The Scheduler binds Query and Singleton fields when a system is registered,
// runs systems in registration order and flushes the command buffer after
// each frame.
func ExampleScheduler() {
	w := ecs.NewWorld(64)

	a := w.Create()
	_ = ecs.AddComponent(w, a, Transform{X: 0, Y: 0})
	_ = ecs.AddComponent(w, a, Speed{DX: 10, DY: 5})
	_ = ecs.AddComponent(w, a, Hitpoints{Current: 80, Max: 100})

	b := w.Create()
	_ = ecs.AddComponent(w, b, Transform{X: 100, Y: 100})
	_ = ecs.AddComponent(w, b, Speed{DX: -5, DY: -5})
	_ = ecs.AddComponent(w, b, Hitpoints{Current: 50, Max: 100})

	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&HealingSystem{RegenRate: 10})

	if err := scheduler.Once(1.0); err != nil {
		fmt.Println(err)
	}

	fmt.Println("After one frame:")
	ecs.NewQuery2[Transform, Hitpoints](w).Each(func(_ ecs.Entity, t *Transform, hp *Hitpoints) {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n", t.X, t.Y, hp.Current, hp.Max)
	})

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous game loop.
// Run blocks and executes all systems at a fixed interval until the
// context is cancelled.
func ExampleScheduler_Run() {
	w := ecs.NewWorld(64)

	e := w.Create()
	_ = ecs.AddComponent(w, e, Transform{X: 0, Y: 0})
	_ = ecs.AddComponent(w, e, Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type GameTime struct {
	TotalFrames int
	TotalTime   float64
}

type TimeTracker struct {
	GameTime ecs.Singleton[GameTime]
}

func (s *TimeTracker) Execute(frame *ecs.UpdateFrame) {
	gameTime := s.GameTime.Get()
	gameTime.TotalFrames++
	gameTime.TotalTime += frame.DeltaTime
}

type ScoreTracker struct {
	Points int
}

type ScoreSystem struct {
	Entities ecs.Query[Transform]
	Score    ecs.Singleton[ScoreTracker]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	count := 0
	for range s.Entities.Iter() {
		count++
	}
	s.Score.Get().Points += count * 10
}

// ExampleScheduler_withSingletons demonstrates using singleton components in systems.
// Singleton fields are bound by the Scheduler just like Query fields.
func ExampleScheduler_withSingletons() {
	w := ecs.NewWorld(64)

	ecs.NewSingleton[GameTime](w)
	ecs.NewSingleton[ScoreTracker](w)

	for i := 0; i < 3; i++ {
		_ = ecs.AddComponent(w, w.Create(), Transform{X: float32(i * 10), Y: float32(i * 10)})
	}

	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&TimeTracker{})
	scheduler.Register(&ScoreSystem{})

	for i := 0; i < 3; i++ {
		if err := scheduler.Once(0.016); err != nil {
			fmt.Println(err)
		}
	}

	gameTime := ecs.NewSingleton[GameTime](w).Get()
	fmt.Printf("Frames: %d, Time: %.3f\n", gameTime.TotalFrames, gameTime.TotalTime)

	score := ecs.NewSingleton[ScoreTracker](w).Get()
	fmt.Printf("Score: %d points\n", score.Points)

	// Output:
	// Frames: 3, Time: 0.048
	// Score: 90 points
}
