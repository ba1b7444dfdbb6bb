package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// MaxTableWidth bounds every table-size exponent and the history width so
// that 1 << width and the index arithmetic stay well inside index range.
const MaxTableWidth = 30

// Config holds the immutable parameters of a predictor. It is fixed at
// construction; the predictor never changes scheme or table sizes mid-run.
type Config struct {
	// Scheme selects bimodal, gshare, or hybrid.
	Scheme Scheme `json:"scheme"`

	// M1 is the gshare table-size exponent (table holds 2^M1 counters).
	// Used by gshare and hybrid.
	M1 uint32 `json:"m1"`

	// M2 is the bimodal table-size exponent (table holds 2^M2 counters).
	// Used by bimodal and hybrid.
	M2 uint32 `json:"m2"`

	// N is the global history register width in bits. Must satisfy N <= M1.
	// Used by gshare and hybrid.
	N uint32 `json:"n"`

	// K is the chooser table-size exponent (table holds 2^K counters).
	// Used by hybrid only.
	K uint32 `json:"k"`
}

// DefaultConfig returns a hybrid configuration with commonly used sizes.
func DefaultConfig() Config {
	return Config{
		Scheme: SchemeHybrid,
		K:      8,
		M1:     14,
		N:      10,
		M2:     10,
	}
}

// LoadConfig reads a Config from a JSON file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read predictor config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse predictor config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize predictor config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write predictor config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can be realized. It rejects, before
// any table is allocated, every width that would break the index arithmetic.
func (c Config) Validate() error {
	switch c.Scheme {
	case SchemeBimodal:
		if err := checkWidth("M2", c.M2); err != nil {
			return err
		}
	case SchemeGshare:
		if err := checkWidth("M1", c.M1); err != nil {
			return err
		}
		if err := checkWidth("N", c.N); err != nil {
			return err
		}
		if c.N > c.M1 {
			return fmt.Errorf("history width N (%d) must not exceed gshare table width M1 (%d)", c.N, c.M1)
		}
	case SchemeHybrid:
		for _, w := range []struct {
			name  string
			value uint32
		}{{"K", c.K}, {"M1", c.M1}, {"N", c.N}, {"M2", c.M2}} {
			if err := checkWidth(w.name, w.value); err != nil {
				return err
			}
		}
		if c.N > c.M1 {
			return fmt.Errorf("history width N (%d) must not exceed gshare table width M1 (%d)", c.N, c.M1)
		}
	default:
		return fmt.Errorf("unknown branch predictor scheme %q", c.Scheme)
	}
	return nil
}

func checkWidth(name string, value uint32) error {
	if value > MaxTableWidth {
		return fmt.Errorf("%s (%d) exceeds maximum table width %d", name, value, MaxTableWidth)
	}
	return nil
}
