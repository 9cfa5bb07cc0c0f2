package decode

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/lattice"
)

// PointJSON is a bare oxygen placement in the exported JSON (spec.md §6:
// "each {x, y}").
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatticePointJSON is a previous-layer attachment point in the exported
// JSON (spec.md §6: "each {x, y, ghost: bool}").
type LatticePointJSON struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Ghost bool    `json:"ghost"`
}

// Envelope is the four-array solution document spec.md §6 describes,
// tagged with a run identifier so a batch of exports from one invocation
// can be correlated downstream — grounded in google/uuid's run/session
// tagging usage (seen id-stamping emitted records in the retrieval pack's
// CRDT site-identity code).
type Envelope struct {
	RunID         string             `json:"run_id"`
	LatticePoints []LatticePointJSON `json:"lattice_points"`
	Tripoints     []PointJSON        `json:"tripoints"`
	Midpoints     []PointJSON        `json:"midpoints"`
	Singles       []PointJSON        `json:"singles"`
}

// ToEnvelope builds the exportable Envelope from a lattice.Set and a
// Decoded solution.
func ToEnvelope(set *lattice.Set, d Decoded) Envelope {
	env := Envelope{RunID: uuid.NewString()}
	for _, p := range set.Points() {
		env.LatticePoints = append(env.LatticePoints, LatticePointJSON{X: p.X, Y: p.Y, Ghost: p.Ghost})
	}
	for _, s := range d.Tris {
		env.Tripoints = append(env.Tripoints, PointJSON{X: s.X, Y: s.Y})
	}
	for _, s := range d.Mids {
		env.Midpoints = append(env.Midpoints, PointJSON{X: s.X, Y: s.Y})
	}
	for _, s := range d.Singles {
		env.Singles = append(env.Singles, PointJSON{X: s.X, Y: s.Y})
	}
	return env
}

// MarshalJSON renders env as UTF-8 JSON with 4-space indentation, per
// spec.md §6's external-interface contract.
func MarshalJSON(env Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "    ")
}

// UnmarshalJSON reloads an Envelope previously produced by MarshalJSON.
func UnmarshalJSON(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// RecomputeBoundMask re-derives the bound_mask a reloaded Envelope implies,
// by matching each exported Mid/Tri/Single coordinate back to bl's site
// list and unioning their attach masks — spec.md §8's round-trip property:
// "solver output -> JSON -> reload -> recompute bound_mask = full_mask".
//
// Matching is by coordinate rather than by index since the JSON envelope
// is index-free by design (spec.md §6); tolerance guards against floating
// point round-trip noise through json.Marshal/Unmarshal.
func RecomputeBoundMask(bl *bitlattice.BitLattice, env Envelope) bitlattice.Mask {
	bound := bitlattice.NewMask(bl.N)
	match := func(x, y float64) {
		for i, s := range bl.Sites {
			if approxEqual(s.X, x) && approxEqual(s.Y, y) {
				bound = bound.Union(bl.Attach[i])
				return
			}
		}
	}
	for _, p := range env.Tripoints {
		match(p.X, p.Y)
	}
	for _, p := range env.Midpoints {
		match(p.X, p.Y)
	}
	for _, p := range env.Singles {
		match(p.X, p.Y)
	}
	return bound
}

const coordTolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= coordTolerance
}
