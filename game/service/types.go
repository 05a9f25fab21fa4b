package service

import (
	"time"

	"github.com/wricardo/martian-robots/game/engine"
)

// RunInfo describes a completed run
type RunInfo struct {
	ID             string              `json:"id"`
	MissionID      string              `json:"mission_id,omitempty"`
	Input          string              `json:"input"`
	Bounds         engine.Bounds       `json:"bounds"`
	Robots         []RobotReport       `json:"robots"`
	Scents         []engine.ScentEntry `json:"scents"`
	Report         string              `json:"report"`
	RobotCount     int                 `json:"robot_count"`
	LostCount      int                 `json:"lost_count"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
}

// RobotReport is one robot's start and final state
type RobotReport struct {
	ID           int                `json:"id"`
	Start        engine.Position    `json:"start"`
	Heading      engine.Orientation `json:"heading"`
	Instructions string             `json:"instructions"`

	Position    engine.Position    `json:"position"`
	Orientation engine.Orientation `json:"orientation"`
	Lost        bool               `json:"lost"`
	Executed    int                `json:"executed"`
	Ignored     int                `json:"ignored,omitempty"`
	Line        string             `json:"line"`
}

// MissionInfo provides a summary of a mission in the library
type MissionInfo struct {
	Filename  string        `json:"filename"`
	MissionID string        `json:"mission_id"` // The identifier to use for simulate_mission
	Bounds    engine.Bounds `json:"bounds"`
	Robots    int           `json:"robots"`
}

// MissionDetail is a mission together with its canonical text
type MissionDetail struct {
	MissionInfo
	Input     string         `json:"input"`
	RobotList []engine.Robot `json:"robot_list"`
}
