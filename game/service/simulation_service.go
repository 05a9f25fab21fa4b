package service

import (
	"context"
	"time"

	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/mission"
)

// SimulationService defines all simulation-related operations
type SimulationService interface {
	// Runs
	Simulate(ctx context.Context, input string) (*RunInfo, error)
	SimulateMission(ctx context.Context, missionID string) (*RunInfo, error)
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error

	// Missions
	ListMissions(ctx context.Context) ([]*MissionInfo, error)
	LoadMission(ctx context.Context, missionID string) (*MissionDetail, error)
}

// RunStore defines storage operations for completed runs. Returned runs are
// copies safe to read without locking. Get, Touch and Delete wrap ErrNotFound
// for unknown IDs.
type RunStore interface {
	Create(run *Run) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
	// Touch refreshes LastAccessedAt and returns the updated run
	Touch(id string) (*Run, error)
}

// MissionLibrary loads named missions. LoadMission wraps ErrNotFound when no
// mission has the given name.
type MissionLibrary interface {
	LoadMission(name string) (*mission.Mission, error)
	ListMissions() ([]*MissionInfo, error)
}

// Run is a completed simulation kept in memory
type Run struct {
	ID             string
	MissionID      string
	Mission        *mission.Mission
	Results        []engine.Result
	Scents         []engine.ScentEntry
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
