package ecs_test

import (
	"fmt"

	"github.com/plus3/sparsecs/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

type GameScore struct {
	Points int
	Level  int
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
// Singletons are global components not associated with any entity, useful for
// game state, configuration, or other application-wide data.
func ExampleNewSingleton() {
	w := ecs.NewWorld(0)

	// Create singleton with initializer
	config := ecs.NewSingleton[GameConfig](w, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})

	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	// Modify the singleton
	config.Get().Difficulty = "Hard"
	fmt.Printf("Updated difficulty: %s\n", config.Get().Difficulty)

	// A second accessor ignores its initializer because the value exists
	sameConfig := ecs.NewSingleton[GameConfig](w, GameConfig{Difficulty: "Easy"})
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	// Output:
	// Config: 4 players, Normal difficulty
	// Updated difficulty: Hard
	// Same config: Hard difficulty
}

// ExampleSingleton_multipleReferences shows that multiple Singleton instances
// reference the same underlying data.
func ExampleSingleton_multipleReferences() {
	w := ecs.NewWorld(0)

	score1 := ecs.NewSingleton[GameScore](w, GameScore{Points: 0, Level: 1})
	fmt.Printf("Score1: %d points, Level %d\n", score1.Get().Points, score1.Get().Level)

	score1.Get().Points = 100
	score1.Get().Level = 2

	score2 := ecs.NewSingleton[GameScore](w)
	fmt.Printf("Score2: %d points, Level %d\n", score2.Get().Points, score2.Get().Level)

	score2.Get().Points = 250
	fmt.Printf("Score1 after Score2 update: %d points\n", score1.Get().Points)

	// Output:
	// Score1: 0 points, Level 1
	// Score2: 100 points, Level 2
	// Score1 after Score2 update: 250 points
}

// ExampleSetSingleton replaces a singleton's value. Accessors bound before the
// call observe the new value.
func ExampleSetSingleton() {
	w := ecs.NewWorld(0)

	var score ecs.Singleton[GameScore]
	score.Init(w)
	fmt.Println("exists:", score.Exists())

	ecs.SetSingleton(w, GameScore{Points: 10, Level: 1})
	fmt.Println("exists:", score.Exists(), "points:", score.Get().Points)

	held := score.Get()
	ecs.SetSingleton(w, GameScore{Points: 99, Level: 5})
	fmt.Println("held pointer sees:", held.Points, held.Level)

	// Output:
	// exists: false
	// exists: true points: 10
	// held pointer sees: 99 5
}
