// Package websocket provides a live feed of simulation results for Martian Robots.
//
// The websocket package implements:
//   - Run-aware WebSocket connections
//   - Per-robot and per-run event broadcasting
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// pair of goroutines that manage reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON objects {run_id, event, data}. After each run the
// hub emits one "robot_finished" event per robot, in run order, with the
// robot's report as data, followed by a "run_completed" event with the full
// run.
//
// Subscriptions:
//
// Clients pick a run with the query parameter ?run=<id>; run IDs match
// case-insensitively. A run exists only once it has completed, so ServeRunWS
// sends its events as soon as the client connects. Clients connecting
// without a run (or with run=*) receive the events of every later run.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.BroadcastRun(runInfo)
package websocket
