// Package service provides the business logic layer for Martian Robots.
//
// The service package implements:
//   - Parsing and simulating ad-hoc mission input
//   - Simulating named missions from the mission library
//   - Keeping completed runs in memory for later inspection
//
// Core Interfaces:
//
// SimulationService is the main service interface used by the HTTP, WebSocket
// and MCP transports. RunStore keeps completed runs and hands out copies.
// MissionLibrary loads named missions.
//
// Errors:
//
// Lookups of unknown runs or missions return an error wrapping ErrNotFound,
// whichever RunStore or MissionLibrary produced it, so callers can test with
// errors.Is(err, service.ErrNotFound) without importing the store packages.
//
// Architecture:
//
// The service layer sits between the transports and the engine. Every call
// to Simulate or SimulateMission is an independent run with its own scent
// registry, so separate requests never influence each other, while robots
// within one run are still processed strictly in input order.
//
// Usage:
//
//	runs := session.NewManager()
//	missions, _ := config.NewManager("missions")
//	svc := service.NewSimulationService(runs, missions)
//
//	info, err := svc.Simulate(ctx, "5 3\n1 1 E\nRFRFRFRF")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(info.Report) // prints "1 1 E"
package service
