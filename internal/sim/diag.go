package sim

// FaultKind classifies why the solver skipped a constraint.
type FaultKind int

const (
	// FaultData marks a constraint referencing a particle id outside the
	// store. The constraint is skipped for the whole tick.
	FaultData FaultKind = iota
	// FaultDegenerate marks coincident endpoints. The constraint is
	// skipped for the pass in which it was observed only.
	FaultDegenerate
)

func (k FaultKind) String() string {
	switch k {
	case FaultData:
		return "data"
	case FaultDegenerate:
		return "degenerate"
	}
	return "unknown"
}

// Fault records one skipped constraint.
type Fault struct {
	Constraint ConstraintID
	Kind       FaultKind
}

// Diagnostics reports what a single [World.Step] skipped. Faults appear in
// first-occurrence order and each constraint contributes at most one fault
// per kind per tick.
type Diagnostics struct {
	Tick   int
	Faults []Fault
}

// Clean reports whether the tick completed without skipping anything.
func (d Diagnostics) Clean() bool { return len(d.Faults) == 0 }
