// Package api provides the REST API for Martian Robots.
//
// Endpoints:
//
//	GET    /api                   list of endpoints
//	POST   /api/runs              simulate {"input": "..."} or {"mission_id": "..."}
//	GET    /api/runs              list runs (?order=asc|desc&limit=N)
//	GET    /api/runs/{id}         run details
//	GET    /api/runs/{id}/report  plain-text report, one "X Y O [LOST]" line per robot
//	DELETE /api/runs/{id}         forget a run
//	GET    /api/missions          list missions in the library
//	GET    /api/missions/{name}   mission details and canonical text
//	GET    /ws?run={id}           live events (omit run for every run)
//
// Errors are returned as {"error": "..."} with 400 for malformed or invalid
// mission input, 404 for unknown runs or missions and 500 otherwise.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	server := api.NewServer(simService, hub)
//	http.ListenAndServe(":8080", server)
package api
