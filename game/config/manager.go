package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/martian-robots/game/mission"
	"github.com/wricardo/martian-robots/game/service"
)

var (
	ErrMissionNotFound = fmt.Errorf("mission %w", service.ErrNotFound)
	ErrInvalidMission  = errors.New("invalid mission file")
)

const (
	// MissionExt is the file extension of mission files
	MissionExt = ".txt"

	// SampleMissionID names the built-in mission, available even when the
	// directory has no file of that name
	SampleMissionID = "sample"

	SampleMission = `5 3
1 1 E
RFRFRFRF
3 2 N
FRRFLLFFRRFLL
0 3 W
LLFFFLFLFL`
)

// Manager handles mission loading and caching
type Manager struct {
	missionDir string
	missions   map[string]*mission.Mission
	mu         sync.RWMutex
}

// NewManager creates a new mission manager
func NewManager(missionDir string) (*Manager, error) {
	// Ensure mission directory exists
	if _, err := os.Stat(missionDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("mission directory does not exist: %s", missionDir)
	}

	return &Manager{
		missionDir: missionDir,
		missions:   make(map[string]*mission.Mission),
	}, nil
}

// Dir returns the directory missions are loaded from
func (m *Manager) Dir() string {
	return m.missionDir
}

// LoadMission loads a mission by name
func (m *Manager) LoadMission(name string) (*mission.Mission, error) {
	name = strings.TrimSuffix(name, MissionExt)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, ErrMissionNotFound
	}

	m.mu.RLock()
	// Check cache first
	if cached, exists := m.missions[name]; exists {
		m.mu.RUnlock()
		return cached, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, exists := m.missions[name]; exists {
		return cached, nil
	}

	data, err := os.ReadFile(filepath.Join(m.missionDir, name+MissionExt))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read mission file: %w", err)
		}
		if name != SampleMissionID {
			return nil, ErrMissionNotFound
		}
		data = []byte(SampleMission)
	}

	parsed, err := mission.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidMission, name, err)
	}

	m.missions[name] = parsed
	return parsed, nil
}

// ListMissions returns information about all valid missions. The built-in
// sample is listed unless a file overrides it.
func (m *Manager) ListMissions() ([]*service.MissionInfo, error) {
	entries, err := os.ReadDir(m.missionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission directory: %w", err)
	}

	var missions []*service.MissionInfo
	sawSample := false

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MissionExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), MissionExt)
		loaded, err := m.LoadMission(name)
		if err != nil {
			// Skip invalid missions
			continue
		}
		if name == SampleMissionID {
			sawSample = true
		}

		missions = append(missions, &service.MissionInfo{
			Filename:  entry.Name(),
			MissionID: name,
			Bounds:    loaded.Bounds,
			Robots:    len(loaded.Robots),
		})
	}

	if !sawSample {
		if sample, err := m.LoadMission(SampleMissionID); err == nil {
			missions = append(missions, &service.MissionInfo{
				MissionID: SampleMissionID,
				Bounds:    sample.Bounds,
				Robots:    len(sample.Robots),
			})
		}
	}

	sort.Slice(missions, func(i, j int) bool {
		return missions[i].MissionID < missions[j].MissionID
	})
	return missions, nil
}

// RefreshCache drops every cached mission so files are read again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missions = make(map[string]*mission.Mission)
}

// ValidateDir parses every mission file in dir and returns the error of each
// invalid file, keyed by file name. An empty map means every file is valid.
func ValidateDir(dir string) (map[string]error, []string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+MissionExt))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list mission files: %w", err)
	}

	failures := make(map[string]error)
	var checked []string
	for _, file := range files {
		base := filepath.Base(file)
		checked = append(checked, base)

		data, err := os.ReadFile(file)
		if err != nil {
			failures[base] = err
			continue
		}
		if _, err := mission.Parse(string(data)); err != nil {
			failures[base] = err
		}
	}
	sort.Strings(checked)
	return failures, checked, nil
}
