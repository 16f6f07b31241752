package manifest

import "fmt"

// Decision is the non-fatal outcome of the version gate.
type Decision int

const (
	// DecisionProceed: same major and minor version.
	DecisionProceed Decision = iota
	// DecisionWarn: the store has an older minor version; serving continues.
	DecisionWarn
	// DecisionConfirm: the store has a newer minor version; the operator must
	// confirm before serving continues.
	DecisionConfirm
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionWarn:
		return "warn"
	case DecisionConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Gate compares a store version with the engine version. Major mismatches are
// fatal and returned as *VersionError. Patch levels never matter.
func Gate(store, engine Version) (Decision, error) {
	switch {
	case store.Major < engine.Major:
		return DecisionProceed, &VersionError{Store: store, Engine: engine, Kind: ErrStoreTooOld}
	case store.Major > engine.Major:
		return DecisionProceed, &VersionError{Store: store, Engine: engine, Kind: ErrEngineTooOld}
	case store.Minor < engine.Minor:
		return DecisionWarn, nil
	case store.Minor > engine.Minor:
		return DecisionConfirm, nil
	default:
		return DecisionProceed, nil
	}
}

// CheckServable rejects store types that only exist for retention and
// restore workflows.
func CheckServable(kind StoreType) error {
	if !kind.Servable() {
		return fmt.Errorf("%w: %s stores are only used for retention and restore", ErrNotServable, kind)
	}
	return nil
}
