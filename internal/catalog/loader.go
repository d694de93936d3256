package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drivelane/showroom/internal/domain"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// Load reads a catalog snapshot from a JSON file. The file holds a
// top-level array of vehicle records. Loaded once at process start;
// the returned slice is treated as immutable afterwards.
func Load(path string) ([]vehicle.Vehicle, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog snapshot from raw JSON.
func Parse(data []byte) ([]vehicle.Vehicle, error) {
	var vehicles []vehicle.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(vehicles) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(vehicles))
	for i, v := range vehicles {
		if v.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := seen[v.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d duplicates id %q", i, v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return vehicles, nil
}
