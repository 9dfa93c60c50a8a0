// Stress test comparing sweep-and-prune against brute-force broad phase
package main

import (
	"fmt"
	"math/rand"
	"time"

	"doomcast/internal/engine"
	"doomcast/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type nullClock struct{}

func (nullClock) Now() time.Duration { return 0 }

func main() {
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}

	for _, count := range testCounts {
		testBroadPhase(count)
	}
}

func testBroadPhase(count int) {
	world := physics.NewPhysicsWorld(physics.DefaultConfig(), nullClock{})
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a square, size scales with count to keep density reasonable
	spawnSize := float32(2000) + float32(count)*2

	for i := 0; i < count; i++ {
		obj := engine.NewGameObject(fmt.Sprintf("body_%d", i))
		obj.Transform.Position = rl.NewVector2(rng.Float32()*spawnSize, rng.Float32()*spawnSize)
		body := physics.NewBody()
		body.Mass = 1 + rng.Float32()*4
		obj.AddComponent(body)
		body.AddCircleCollider(rl.Vector2{}, 5+rng.Float32()*15)
		world.AddBody(body)
	}
	bodies := world.Bodies()

	const iterations = 10

	sapStart := time.Now()
	var sapPairs []physics.CollisionPair
	for i := 0; i < iterations; i++ {
		sapPairs = physics.SweepAndPrune(bodies, nil)
	}
	sapTime := time.Since(sapStart) / iterations

	bruteStart := time.Now()
	var brutePairs []physics.CollisionPair
	for i := 0; i < iterations; i++ {
		brutePairs = physics.BruteForce(bodies, nil)
	}
	bruteTime := time.Since(bruteStart) / iterations

	tickStart := time.Now()
	world.Step()
	tickTime := time.Since(tickStart)
	stats := world.Stats()

	speedup := float64(bruteTime) / float64(max(sapTime, time.Nanosecond))

	fmt.Printf("%5d bodies: SAP %9v (%5d pairs) | brute %10v (%5d pairs) | %.1fx | tick %v, %d colliding\n",
		count, sapTime.Round(time.Microsecond), len(sapPairs),
		bruteTime.Round(time.Microsecond), len(brutePairs), speedup,
		tickTime.Round(time.Microsecond), stats.Colliding)
}
