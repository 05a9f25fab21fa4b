// Package engine provides the core simulation logic for Martian Robots.
//
// The engine package implements the robot mechanics including:
//   - Compass orientations and left/right turn transitions
//   - Forward-movement geometry and grid bounds checks
//   - The scent registry that remembers where robots were lost
//   - Per-robot instruction processing (Active, Lost, Finished)
//   - Sequential simulation of every robot in a run
//
// Core Types:
//
// Robot describes one robot as supplied by the mission input. Simulation
// holds the immutable Bounds of a run together with the single ScentRegistry
// shared by every robot deployed into it. Each deployment yields a Result
// carrying the robot's 1-based ID and its final Outcome.
//
// Usage:
//
//	sim := engine.NewSimulation(engine.Bounds{MaxX: 5, MaxY: 3})
//	res, err := sim.Deploy(engine.Robot{
//		Start:        engine.Position{X: 3, Y: 2},
//		Heading:      engine.North,
//		Instructions: engine.MustInstructions("FRRFLLFFRRFLL"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Outcome.Lost) // true
//
// Rules:
//
// A robot that would step off the grid is lost. It stays on the last cell it
// occupied and leaves a scent for that cell and heading. Any later robot of
// the same run that issues a forward instruction from a scented cell while
// facing the scented heading ignores that instruction instead of being lost.
// Robots are simulated strictly one after another in input order, since each
// may change the outcome of those that follow.
package engine
