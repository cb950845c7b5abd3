package engine

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corvidchess/engine/pkg/search"
)

// DifficultyProfile bundles search depth, randomness and technique toggles
// into one named playing strength, loadable from YAML so a caller can add or
// retune profiles without a code change.
type DifficultyProfile struct {
	Name  string `yaml:"name"`
	Depth uint   `yaml:"depth"`
	Hash  uint   `yaml:"hashMiB"`
	Noise uint   `yaml:"noiseMillipawns"`

	// TimeMs, if > 0, bounds each search by wall-clock time in addition to
	// Depth. Zero means depth is the only limit.
	TimeMs uint `yaml:"timeMs"`

	// TopN, if > 1, samples uniformly among the TopN highest-scoring root
	// moves found by search instead of always playing the single best one.
	TopN int `yaml:"topN"`

	UseNullMove          bool `yaml:"useNullMove"`
	UseLMR               bool `yaml:"useLMR"`
	UseAspirationWindows bool `yaml:"useAspirationWindows"`
	UseQuiescence        bool `yaml:"useQuiescence"`
	UseFutilityPruning   bool `yaml:"useFutilityPruning"`
	UseKillerMoves       bool `yaml:"useKillerMoves"`
	UseHistoryHeuristic  bool `yaml:"useHistoryHeuristic"`
}

// searchOptions translates a profile's technique toggles into search.Options
// for a given depth limit.
func (p DifficultyProfile) searchOptions() search.Options {
	return search.Options{
		DepthLimit:               int(p.Depth),
		TimeLimit:                time.Duration(p.TimeMs) * time.Millisecond,
		DisableNullMove:          !p.UseNullMove,
		DisableLMR:               !p.UseLMR,
		DisableAspirationWindows: !p.UseAspirationWindows,
		DisableQuiescence:        !p.UseQuiescence,
		DisableFutilityPruning:   !p.UseFutilityPruning,
		DisableKillerMoves:       !p.UseKillerMoves,
		DisableHistoryHeuristic:  !p.UseHistoryHeuristic,
	}
}

// Config is the top-level YAML document listing named difficulty profiles.
type Config struct {
	Profiles map[string]DifficultyProfile `yaml:"profiles"`
}

// LoadConfig decodes a Config from r.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("engine: decode config: %w", err)
	}
	return cfg, nil
}

// DefaultProfiles are used when no configuration file is loaded: progressively
// stronger play from a noisy, shallow "easy" up to a full-strength "max".
var DefaultProfiles = map[string]DifficultyProfile{
	"easy": {
		Name: "easy", Depth: 3, Hash: 8, Noise: 600, TopN: 3,
		UseNullMove: false, UseLMR: false, UseAspirationWindows: false,
		UseQuiescence: true, UseFutilityPruning: false,
		UseKillerMoves: false, UseHistoryHeuristic: false,
	},
	"medium": {
		Name: "medium", Depth: 5, Hash: 16, Noise: 150, TopN: 2,
		UseNullMove: true, UseLMR: false, UseAspirationWindows: true,
		UseQuiescence: true, UseFutilityPruning: true,
		UseKillerMoves: true, UseHistoryHeuristic: false,
	},
	"hard": {
		Name: "hard", Depth: 8, Hash: 64, Noise: 0, TopN: 1,
		UseNullMove: true, UseLMR: true, UseAspirationWindows: true,
		UseQuiescence: true, UseFutilityPruning: true,
		UseKillerMoves: true, UseHistoryHeuristic: true,
	},
	"max": {
		Name: "max", Depth: 0, Hash: 256, Noise: 0, TopN: 1,
		UseNullMove: true, UseLMR: true, UseAspirationWindows: true,
		UseQuiescence: true, UseFutilityPruning: true,
		UseKillerMoves: true, UseHistoryHeuristic: true,
	},
}
