package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/martian-robots/game/mission"
	"github.com/wricardo/martian-robots/game/service"
)

func writeMission(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write mission: %v", err)
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestManager_LoadMission(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "corner.txt", "2 2\n0 0 S\nF")

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	m, err := manager.LoadMission("corner")
	if err != nil {
		t.Fatalf("Failed to load mission: %v", err)
	}
	if m.Bounds.MaxX != 2 || len(m.Robots) != 1 {
		t.Errorf("Unexpected mission: %+v", m)
	}

	// Extension is optional and results are cached
	again, err := manager.LoadMission("corner.txt")
	if err != nil {
		t.Fatalf("Failed to load mission with extension: %v", err)
	}
	if again != m {
		t.Error("Expected cached mission instance")
	}
}

func TestManager_LoadMission_NotFound(t *testing.T) {
	manager, _ := NewManager(t.TempDir())

	for _, name := range []string{"missing", "", "../etc/passwd", ".."} {
		_, err := manager.LoadMission(name)
		if !errors.Is(err, ErrMissionNotFound) {
			t.Errorf("LoadMission(%q): expected ErrMissionNotFound, got %v", name, err)
		}
		if !errors.Is(err, service.ErrNotFound) {
			t.Errorf("LoadMission(%q): expected error to wrap service.ErrNotFound", name)
		}
	}
}

func TestManager_LoadMission_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "broken.txt", "60 3\n1 1 E\nF")
	manager, _ := NewManager(dir)

	_, err := manager.LoadMission("broken")
	if !errors.Is(err, ErrInvalidMission) {
		t.Errorf("Expected ErrInvalidMission, got %v", err)
	}
	if !errors.Is(err, mission.ErrInvalidMission) {
		t.Errorf("Expected the parse error to be wrapped, got %v", err)
	}
}

func TestManager_BuiltInSample(t *testing.T) {
	manager, _ := NewManager(t.TempDir())

	m, err := manager.LoadMission(SampleMissionID)
	if err != nil {
		t.Fatalf("Failed to load sample: %v", err)
	}
	if len(m.Robots) != 3 {
		t.Errorf("Expected 3 robots in sample, got %d", len(m.Robots))
	}
}

func TestManager_SampleOverride(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "sample.txt", "1 1\n0 0 N\nF")
	manager, _ := NewManager(dir)

	m, err := manager.LoadMission(SampleMissionID)
	if err != nil {
		t.Fatalf("Failed to load sample: %v", err)
	}
	if len(m.Robots) != 1 {
		t.Errorf("Expected sample.txt to override the built-in sample, got %d robots", len(m.Robots))
	}
}

func TestManager_ListMissions(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "alpha.txt", "3 3\n1 1 N\nF\n2 2 E\nL")
	writeMission(t, dir, "broken.txt", "nonsense")
	writeMission(t, dir, "notes.md", "ignored")
	os.Mkdir(filepath.Join(dir, "nested.txt"), 0755)

	manager, _ := NewManager(dir)
	missions, err := manager.ListMissions()
	if err != nil {
		t.Fatalf("Failed to list missions: %v", err)
	}

	if len(missions) != 2 {
		t.Fatalf("Expected alpha and sample, got %d missions", len(missions))
	}
	if missions[0].MissionID != "alpha" || missions[0].Robots != 2 || missions[0].Filename != "alpha.txt" {
		t.Errorf("Unexpected first mission: %+v", missions[0])
	}
	if missions[1].MissionID != SampleMissionID || missions[1].Filename != "" {
		t.Errorf("Expected built-in sample second, got %+v", missions[1])
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "m.txt", "5 5\n0 0 N\nF")
	manager, _ := NewManager(dir)

	first, _ := manager.LoadMission("m")
	writeMission(t, dir, "m.txt", "5 5\n0 0 N\nF\n1 1 E\nF")

	cached, _ := manager.LoadMission("m")
	if cached != first {
		t.Error("Expected cached mission before refresh")
	}

	manager.RefreshCache()
	reloaded, err := manager.LoadMission("m")
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if len(reloaded.Robots) != 2 {
		t.Errorf("Expected reloaded mission to have 2 robots, got %d", len(reloaded.Robots))
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "m.txt", SampleMission)
	manager, _ := NewManager(dir)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadMission("m"); err != nil {
				t.Errorf("Concurrent load failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "good.txt", SampleMission)
	writeMission(t, dir, "bad.txt", "5 3\n1 1 Q\nF")

	failures, checked, err := ValidateDir(dir)
	if err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
	if len(checked) != 2 || checked[0] != "bad.txt" || checked[1] != "good.txt" {
		t.Errorf("Unexpected checked files: %v", checked)
	}
	if len(failures) != 1 || failures["bad.txt"] == nil {
		t.Errorf("Expected only bad.txt to fail, got %v", failures)
	}
}
