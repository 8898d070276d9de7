// Package storage persists computed scenario results to disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
)

// Results is the on-disk document of one simulation run. Pair-keyed
// tables use "consumer+producer" string keys.
type Results struct {
	GeneratedAt time.Time                     `json:"generated_at"`
	Strategy    string                        `json:"strategy"`
	Attachments attachment.Table              `json:"attachments"`
	PairRoutes  map[string]routing.PairRoutes `json:"pair_routes,omitempty"`
	CrossStats  map[string]routing.PairCross  `json:"cross_stats,omitempty"`
}

// PairKey renders an ordered pair as a results-document key.
func PairKey(consumer, producer string) string {
	return fmt.Sprintf("%s+%s", consumer, producer)
}

// Storage handles persistence of simulation results.
type Storage struct {
	dataDir string
}

// NewStorage creates a storage instance rooted at dataDir.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) resultsPath() string {
	return filepath.Join(s.dataDir, "results.json")
}

// Save persists the results to disk. The document is marshalled fully
// before anything is written, so a failure never leaves partial output.
func (s *Storage) Save(results *Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal results")
	}
	if err := os.WriteFile(s.resultsPath(), data, 0644); err != nil {
		return errors.Wrap(err, "write results file")
	}
	return nil
}

// Load reads previously saved results, or returns nil when none exist.
func (s *Storage) Load() (*Results, error) {
	data, err := os.ReadFile(s.resultsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read results file")
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrap(err, "unmarshal results")
	}
	return &results, nil
}

// Exists checks whether a results file is present.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.resultsPath())
	return err == nil
}
