package sim

// solve runs the requested number of relaxation passes over the
// constraints in creation order. Corrections are applied in place, so a
// constraint late in a pass sees the moves of earlier ones.
//
// The correction target follows the integration mode: verlet worlds move
// positions, euler worlds nudge velocities unless CorrectPositions is set.
// Both targets share the same geometry; only the gain differs.
func (w *World) solve(iterations int, diag *Diagnostics) {
	if iterations == 0 || len(w.constraints) == 0 {
		return
	}

	positions := w.opts.Mode == ModeVerlet || w.opts.CorrectPositions
	gain := w.opts.VelocityGain
	if positions {
		gain = w.opts.PositionGain
	}

	w.resetScratch()

	for it := 0; it < iterations; it++ {
		for i := range w.constraints {
			if w.skip[i] {
				continue
			}
			c := &w.constraints[i]

			if !w.validParticle(c.A) || !w.validParticle(c.B) {
				// Dangling reference: drop the constraint for the whole
				// tick and keep going.
				w.skip[i] = true
				diag.Faults = append(diag.Faults, Fault{Constraint: ConstraintID(i), Kind: FaultData})
				continue
			}

			pa, pb := w.pair(c.A, c.B)
			delta := pb.Pos.Sub(pa.Pos)
			dist := delta.Len()
			if dist == 0 {
				// Coincident endpoints leave no direction to push along.
				// Skip this pass only; the pair may separate later.
				if !w.reported[i] {
					w.reported[i] = true
					diag.Faults = append(diag.Faults, Fault{Constraint: ConstraintID(i), Kind: FaultDegenerate})
				}
				continue
			}

			diff := (c.Rest - dist) / dist * c.Strength * gain
			offset := delta.Scale(diff * 0.5)

			wa := pa.invMass / (pa.invMass + pb.invMass)
			wb := 1 - wa

			if positions {
				pa.Pos = pa.Pos.Sub(offset.Scale(wa))
				pb.Pos = pb.Pos.Add(offset.Scale(wb))
			} else {
				pa.Vel = pa.Vel.Sub(offset.Scale(wa))
				pb.Vel = pb.Vel.Add(offset.Scale(wb))
			}
		}
	}
}

// resetScratch sizes and clears the per-tick skip and fault-reported
// flags. The slices are reused between steps to keep the hot path free of
// allocation.
func (w *World) resetScratch() {
	n := len(w.constraints)
	if cap(w.skip) < n {
		w.skip = make([]bool, n)
		w.reported = make([]bool, n)
		return
	}
	w.skip = w.skip[:n]
	w.reported = w.reported[:n]
	for i := range w.skip {
		w.skip[i] = false
		w.reported[i] = false
	}
}
