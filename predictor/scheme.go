package predictor

import "fmt"

// Scheme identifies a prediction scheme. Scheme dispatch happens once, at
// construction; the per-event hot path never re-examines the scheme.
type Scheme int

const (
	// SchemeBimodal is a single counter table indexed by PC bits.
	SchemeBimodal Scheme = iota
	// SchemeGshare folds global branch history into the table index.
	SchemeGshare
	// SchemeHybrid arbitrates between a bimodal and a gshare table
	// with a chooser table.
	SchemeHybrid
)

// String returns the scheme name as used on the command line and in configs.
func (s Scheme) String() string {
	switch s {
	case SchemeBimodal:
		return "bimodal"
	case SchemeGshare:
		return "gshare"
	case SchemeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme converts a scheme name to a Scheme value.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "bimodal":
		return SchemeBimodal, nil
	case "gshare":
		return SchemeGshare, nil
	case "hybrid":
		return SchemeHybrid, nil
	default:
		return 0, fmt.Errorf("unknown branch predictor scheme %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so Scheme round-trips
// through JSON configs as its name.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
