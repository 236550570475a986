package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/outbreakrpg/engine/pkg/world"
)

// World definition operations (filesystem-backed). A world definition is a
// plain JSON document in the teacher's scenario-catalog shape: the starting
// *world.World for a new session, loaded via its own JSON round-trip rather
// than a bespoke definition type.

func (r *RedisStorage) ListWorldDefs(ctx context.Context) ([]string, error) {
	worldsDir := filepath.Join(r.dataDir, "worlds")
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
			return []string{}, nil
		}
		r.logger.Error("failed to walk world definitions directory", "error", err)
		return nil, fmt.Errorf("failed to list world definitions: %w", err)
	}

	return filenames, nil
}

func (r *RedisStorage) GetWorldDef(ctx context.Context, filename string) (*world.World, error) {
	path := filepath.Join(r.dataDir, "worlds", filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world definition not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read world definition file: %w", err)
	}

	var w world.World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world definition: %w", err)
	}

	return &w, nil
}
