package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/mission"
)

// ErrNotFound is the sentinel every RunStore and MissionLibrary wraps when a
// run or mission does not exist. Callers match it with errors.Is; the API
// maps it to 404.
var ErrNotFound = errors.New("not found")

// simulationServiceImpl implements the SimulationService interface
type simulationServiceImpl struct {
	runs     RunStore
	missions MissionLibrary
}

// NewSimulationService creates a new simulation service instance
func NewSimulationService(runs RunStore, missions MissionLibrary) SimulationService {
	return &simulationServiceImpl{
		runs:     runs,
		missions: missions,
	}
}

// Simulate parses input and runs every robot in it
func (s *simulationServiceImpl) Simulate(ctx context.Context, input string) (*RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := mission.Parse(input)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, "", m)
}

// SimulateMission runs a mission from the library
func (s *simulationServiceImpl) SimulateMission(ctx context.Context, missionID string) (*RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := s.missions.LoadMission(missionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if available, listErr := s.missions.ListMissions(); listErr == nil && len(available) > 0 {
				var ids []string
				for _, info := range available {
					ids = append(ids, info.MissionID)
				}
				return nil, fmt.Errorf("mission '%s' not found, available missions: %v: %w", missionID, ids, err)
			}
		}
		return nil, fmt.Errorf("failed to load mission %s: %w", missionID, err)
	}
	return s.execute(ctx, missionID, m)
}

// execute runs the mission with a fresh scent registry and stores the result
func (s *simulationServiceImpl) execute(ctx context.Context, missionID string, m *mission.Mission) (*RunInfo, error) {
	results, scents, err := m.Run()
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run, err := s.runs.Create(&Run{
		MissionID: missionID,
		Mission:   m,
		Results:   results,
		Scents:    scents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}

	info := newRunInfo(run)
	log.Printf("[RUN] id=%s mission=%q robots=%d lost=%d scents=%d",
		info.ID, missionID, info.RobotCount, info.LostCount, len(info.Scents))
	return info, nil
}

// GetRun retrieves a completed run
func (s *simulationServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	run, err := s.runs.Touch(runID)
	if err != nil {
		return nil, err
	}
	return newRunInfo(run), nil
}

// ListRuns returns all runs still held in memory
func (s *simulationServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	runs := s.runs.List()
	result := make([]*RunInfo, 0, len(runs))
	for _, run := range runs {
		result = append(result, newRunInfo(run))
	}
	return result, nil
}

// DeleteRun removes a run
func (s *simulationServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	return s.runs.Delete(runID)
}

// ListMissions returns the missions available in the library
func (s *simulationServiceImpl) ListMissions(ctx context.Context) ([]*MissionInfo, error) {
	return s.missions.ListMissions()
}

// LoadMission returns a mission with its canonical text
func (s *simulationServiceImpl) LoadMission(ctx context.Context, missionID string) (*MissionDetail, error) {
	m, err := s.missions.LoadMission(missionID)
	if err != nil {
		return nil, err
	}

	return &MissionDetail{
		MissionInfo: MissionInfo{
			MissionID: missionID,
			Bounds:    m.Bounds,
			Robots:    len(m.Robots),
		},
		Input:     mission.Encode(m),
		RobotList: m.Robots,
	}, nil
}

func newRunInfo(run *Run) *RunInfo {
	info := &RunInfo{
		ID:             run.ID,
		MissionID:      run.MissionID,
		Input:          mission.Encode(run.Mission),
		Bounds:         run.Mission.Bounds,
		Robots:         make([]RobotReport, 0, len(run.Results)),
		Scents:         run.Scents,
		Report:         mission.FormatReport(run.Results),
		RobotCount:     len(run.Results),
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
	}
	if info.Scents == nil {
		info.Scents = []engine.ScentEntry{}
	}

	for _, res := range run.Results {
		if res.Outcome.Lost {
			info.LostCount++
		}
		info.Robots = append(info.Robots, RobotReport{
			ID:           res.ID,
			Start:        res.Robot.Start,
			Heading:      res.Robot.Heading,
			Instructions: engine.InstructionString(res.Robot.Instructions),
			Position:     res.Outcome.Position,
			Orientation:  res.Outcome.Orientation,
			Lost:         res.Outcome.Lost,
			Executed:     res.Outcome.Executed,
			Ignored:      res.Outcome.Ignored,
			Line:         mission.FormatOutcome(res.Outcome),
		})
	}
	return info
}
