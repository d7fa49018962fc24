// Package config loads the run configuration: region polygons, the class of
// interest and tracker tuning.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/flowcv/regioncount-go/regioncount"
)

// Config is the complete run configuration.
type Config struct {
	// TargetClass is the single detector class label counted by the run.
	TargetClass int `yaml:"target_class"`
	// Regions are the tracked zones in priority order: the first region in
	// the list is checked first.
	Regions []RegionConfig `yaml:"regions"`
	// Tracker tunes the built-in tracker, used only when raw detections
	// carry no track ids.
	Tracker TrackerConfig `yaml:"tracker"`
}

// RegionConfig defines a single region polygon.
type RegionConfig struct {
	Name string `yaml:"name,omitempty"`
	// Coords lists vertices as [[x1,y1], [x2,y2], ...] integer pixels.
	Coords [][]int `yaml:"coords"`
}

// TrackerConfig tunes the built-in tracker.
type TrackerConfig struct {
	MaxMisses int     `yaml:"max_misses"`
	MinIoU    float64 `yaml:"min_iou"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read config file %s", path)
	}
	cfg := &Config{
		Tracker: TrackerConfig{
			MaxMisses: 30,
			MinIoU:    0.3,
		},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "can't parse config file %s", path)
	}
	return cfg, nil
}

// BuildRegions validates the configured polygons and builds the region set.
// Malformed polygons are fatal here, before any frame is processed.
func (c *Config) BuildRegions() (*regioncount.RegionSet, error) {
	polygons := make([][]regioncount.Point, len(c.Regions))
	for i, region := range c.Regions {
		vertices := make([]regioncount.Point, len(region.Coords))
		for j, coord := range region.Coords {
			if len(coord) != 2 {
				return nil, errors.Errorf("region %d vertex %d: want [x y] pair, got %d values", i+1, j, len(coord))
			}
			vertices[j] = regioncount.NewPoint(float64(coord[0]), float64(coord[1]))
		}
		polygons[i] = vertices
	}
	regions, err := regioncount.NewRegionSet(polygons...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid region configuration")
	}
	return regions, nil
}
