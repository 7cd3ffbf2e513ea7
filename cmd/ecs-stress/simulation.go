package main

import (
	"math"
	"math/rand"

	"github.com/plus3/sparsecs/ecs"
)

type Position struct{ X, Y float32 }

type Velocity struct{ DX, DY float32 }

type Heading struct{ Angle float32 }

type Mass struct{ Kg float32 }

type Health struct{ Current, Max int32 }

type Team uint8

type Lifetime struct{ Frames int32 }

type TeamTally struct {
	Alive [4]int
}

// Spawner attaches a random mix of components to new entities.
type Spawner struct {
	rng         *rand.Rand
	maxLifetime int
}

func NewSpawner(seed int64, maxLifetime int) *Spawner {
	return &Spawner{
		rng:         rand.New(rand.NewSource(seed)),
		maxLifetime: maxLifetime,
	}
}

var componentAdders = []func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error{
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(w, e, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})
	},
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(w, e, Velocity{DX: rng.Float32()*2 - 1, DY: rng.Float32()*2 - 1})
	},
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(w, e, Heading{Angle: rng.Float32() * 2 * math.Pi})
	},
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(w, e, Mass{Kg: 1 + rng.Float32()*99})
	},
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		hp := int32(50 + rng.Intn(50))
		return ecs.AddComponent(w, e, Health{Current: hp, Max: 100})
	},
	func(w *ecs.World, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(w, e, Team(rng.Intn(4)))
	},
}

// Spawn gives e between one and five random components, plus a Lifetime when
// churn is enabled. It matches the signature of Commands.Spawn.
func (s *Spawner) Spawn(w *ecs.World, e ecs.Entity) error {
	n := s.rng.Intn(5) + 1
	for _, i := range s.rng.Perm(len(componentAdders))[:n] {
		if err := componentAdders[i](w, e, s.rng); err != nil {
			return err
		}
	}
	if s.maxLifetime > 0 {
		return ecs.AddComponent(w, e, Lifetime{Frames: int32(s.rng.Intn(s.maxLifetime) + 1)})
	}
	return nil
}

type MovementSystem struct {
	Entities ecs.Query2[Position, Velocity]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	s.Entities.Each(func(_ ecs.Entity, p *Position, v *Velocity) {
		p.X += v.DX * dt
		p.Y += v.DY * dt
	})
}

type GravitySystem struct {
	Entities ecs.Query2[Velocity, Mass]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	s.Entities.Each(func(_ ecs.Entity, v *Velocity, m *Mass) {
		v.DY -= 9.8 * dt / m.Kg
	})
}

type SteeringSystem struct {
	Entities ecs.Query3[Position, Velocity, Heading]
}

func (s *SteeringSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	s.Entities.Each(func(_ ecs.Entity, p *Position, v *Velocity, h *Heading) {
		h.Angle += dt
		speed := float32(math.Hypot(float64(v.DX), float64(v.DY)))
		v.DX = speed * float32(math.Cos(float64(h.Angle)))
		v.DY = speed * float32(math.Sin(float64(h.Angle)))
	})
}

type RegenSystem struct {
	Entities ecs.Query[Health]
}

func (s *RegenSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.Each(func(_ ecs.Entity, h *Health) {
		if h.Current < h.Max {
			h.Current++
		}
	})
}

type TeamTallySystem struct {
	Entities ecs.Query2[Team, Health]
	Tally    ecs.Singleton[TeamTally]
}

func (s *TeamTallySystem) Execute(frame *ecs.UpdateFrame) {
	tally := s.Tally.Get()
	if tally == nil {
		ecs.SetSingleton(frame.World, TeamTally{})
		tally = s.Tally.Get()
	}
	tally.Alive = [4]int{}
	s.Entities.Each(func(_ ecs.Entity, t *Team, h *Health) {
		if h.Current > 0 {
			tally.Alive[*t%4]++
		}
	})
}

// LifetimeSystem destroys expired entities and queues a replacement for each,
// keeping the population stable while pools churn.
type LifetimeSystem struct {
	Entities ecs.Query[Lifetime]
	Spawner  *Spawner
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.Each(func(e ecs.Entity, l *Lifetime) {
		l.Frames--
		if l.Frames <= 0 {
			frame.Commands.Destroy(e)
			frame.Commands.Spawn(s.Spawner.Spawn)
		}
	})
}

var systemFactories = []func(sp *Spawner) ecs.System{
	func(*Spawner) ecs.System { return &MovementSystem{} },
	func(*Spawner) ecs.System { return &GravitySystem{} },
	func(*Spawner) ecs.System { return &SteeringSystem{} },
	func(*Spawner) ecs.System { return &RegenSystem{} },
	func(*Spawner) ecs.System { return &TeamTallySystem{} },
	func(sp *Spawner) ecs.System { return &LifetimeSystem{Spawner: sp} },
}

// RegisterSystems registers count systems, cycling through every kind.
func RegisterSystems(s *ecs.Scheduler, sp *Spawner, count int) {
	for i := 0; i < count; i++ {
		s.Register(systemFactories[i%len(systemFactories)](sp))
	}
}

// Populate creates count entities through the spawner.
func Populate(w *ecs.World, sp *Spawner, count int) error {
	for i := 0; i < count; i++ {
		if err := sp.Spawn(w, w.Create()); err != nil {
			return err
		}
	}
	return nil
}

// maxLifetimeFor picks a lifetime range so that about churn entities expire
// per frame once the population has settled.
func maxLifetimeFor(entities, churn int) int {
	if churn <= 0 || entities <= 0 {
		return 0
	}
	return max(1, 2*entities/churn)
}
