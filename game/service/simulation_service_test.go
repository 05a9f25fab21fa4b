package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/martian-robots/game/engine"
	"github.com/wricardo/martian-robots/game/mission"
)

const sampleInput = "5 3\n1 1 E\nRFRFRFRF\n3 2 N\nFRRFLLFFRRFLL\n0 3 W\nLLFFFLFLFL"

// memoryStore is a minimal RunStore for tests
type memoryStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	next int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{runs: make(map[string]*Run)}
}

func (s *memoryStore) Create(run *Run) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	run.ID = fmt.Sprintf("run-%d", s.next)
	run.CreatedAt = time.Now()
	run.LastAccessedAt = run.CreatedAt
	s.runs[run.ID] = run
	return run, nil
}

func (s *memoryStore) Get(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %w", ErrNotFound)
	}
	return run, nil
}

func (s *memoryStore) List() []*Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Run
	for i := 1; i <= s.next; i++ {
		if run, ok := s.runs[fmt.Sprintf("run-%d", i)]; ok {
			out = append(out, run)
		}
	}
	return out
}

func (s *memoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run %w", ErrNotFound)
	}
	delete(s.runs, id)
	return nil
}

func (s *memoryStore) Touch(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %w", ErrNotFound)
	}
	run.LastAccessedAt = time.Now()
	c := *run
	return &c, nil
}

// fakeLibrary serves missions from a map of texts
type fakeLibrary map[string]string

func (l fakeLibrary) LoadMission(name string) (*mission.Mission, error) {
	text, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("mission %w", ErrNotFound)
	}
	return mission.Parse(text)
}

func (l fakeLibrary) ListMissions() ([]*MissionInfo, error) {
	var out []*MissionInfo
	for name := range l {
		out = append(out, &MissionInfo{MissionID: name})
	}
	return out, nil
}

func newTestService() (SimulationService, *memoryStore) {
	store := newMemoryStore()
	return NewSimulationService(store, fakeLibrary{"sample": sampleInput}), store
}

func TestSimulate_Sample(t *testing.T) {
	svc, _ := newTestService()

	info, err := svc.Simulate(context.Background(), sampleInput)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if info.Report != "1 1 E\n3 3 N LOST\n2 3 S" {
		t.Errorf("Unexpected report: %q", info.Report)
	}
	if info.RobotCount != 3 || info.LostCount != 1 {
		t.Errorf("Expected 3 robots and 1 lost, got %d and %d", info.RobotCount, info.LostCount)
	}
	if len(info.Scents) != 1 || info.Scents[0] != (engine.ScentEntry{Position: engine.Position{X: 3, Y: 3}, Orientation: engine.North}) {
		t.Errorf("Unexpected scents: %v", info.Scents)
	}
	third := info.Robots[2]
	if third.ID != 3 || third.Instructions != "LLFFFLFLFL" || third.Ignored != 1 || third.Line != "2 3 S" {
		t.Errorf("Unexpected third robot report: %+v", third)
	}
	if info.Input != sampleInput {
		t.Errorf("Expected canonical input to be echoed, got %q", info.Input)
	}
}

func TestSimulate_RunsAreIndependent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Robot 3 alone is lost; an earlier run's scent must not leak into it.
	if _, err := svc.Simulate(ctx, sampleInput); err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	info, err := svc.Simulate(ctx, "5 3\n0 3 W\nLLFFFLFLFL")
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if info.Report != "3 3 N LOST" {
		t.Errorf("Expected fresh registry per run, got %q", info.Report)
	}
}

func TestSimulate_InvalidInput(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Simulate(context.Background(), "5 3\n1 1 Z\nF")
	if !errors.Is(err, mission.ErrInvalidMission) {
		t.Errorf("Expected ErrInvalidMission, got %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("Expected no run to be stored for invalid input")
	}
}

func TestSimulate_CanceledContext(t *testing.T) {
	svc, _ := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Simulate(ctx, sampleInput); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := svc.SimulateMission(ctx, "sample"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSimulateMission(t *testing.T) {
	svc, _ := newTestService()

	info, err := svc.SimulateMission(context.Background(), "sample")
	if err != nil {
		t.Fatalf("SimulateMission failed: %v", err)
	}
	if info.MissionID != "sample" || info.LostCount != 1 {
		t.Errorf("Unexpected run: %+v", info)
	}
}

func TestSimulateMission_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SimulateMission(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "available missions: [sample]") {
		t.Errorf("Expected available missions in error, got %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Simulate(ctx, sampleInput)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	got, err := svc.GetRun(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Report != created.Report {
		t.Errorf("Expected same report, got %q", got.Report)
	}

	runs, _ := svc.ListRuns(ctx)
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}

	if err := svc.DeleteRun(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := svc.GetRun(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestLoadMission(t *testing.T) {
	svc, _ := newTestService()

	detail, err := svc.LoadMission(context.Background(), "sample")
	if err != nil {
		t.Fatalf("LoadMission failed: %v", err)
	}
	if detail.Robots != 3 || len(detail.RobotList) != 3 || detail.Input != sampleInput {
		t.Errorf("Unexpected mission detail: %+v", detail)
	}
}
