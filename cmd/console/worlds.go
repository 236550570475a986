package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/outbreakrpg/engine/pkg/world"
)

// listWorldDefs returns every *.json world definition filename under
// dataDir/worlds, sorted for stable menu ordering.
func listWorldDefs(dataDir string) ([]string, error) {
	worldsDir := filepath.Join(dataDir, "worlds")
	var filenames []string

	err := filepath.WalkDir(worldsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		filenames = append(filenames, filepath.Base(path))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list world definitions: %w", err)
	}

	sort.Strings(filenames)
	return filenames, nil
}

// loadWorldDef reads and unmarshals one world definition file, the same
// direct-JSON-round-trip a session uses to start play (internal/storage's
// GetWorldDef does the identical thing server-side).
func loadWorldDef(dataDir, filename string) (*world.World, error) {
	path := filepath.Join(dataDir, "worlds", filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world definition %s: %w", filename, err)
	}

	var w world.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world definition %s: %w", filename, err)
	}
	return &w, nil
}

// findPlayerCharacter locates the first Controllable character in a freshly
// loaded world definition, the same rule internal/handlers.SessionHandler
// applies when starting a session over HTTP.
func findPlayerCharacter(w *world.World) (world.UID, bool) {
	for uid, c := range w.Characters {
		if c.Controllable {
			return uid, true
		}
	}
	return "", false
}
