package physics

// Tuning groups every physical constant and collision threshold into one
// immutable value threaded through construction. Tests vary single fields
// without touching package state.
type Tuning struct {
	// Gravity
	G         float64 `toml:"g"`         // gravitational constant
	Softening float64 `toml:"softening"` // force divergence guard at small separations
	Theta     float64 `toml:"theta"`     // Barnes-Hut opening angle

	// Tree limits
	MaxDepth       int     `toml:"max_depth"`        // quadtree depth bound; deeper mass is absorbed
	MinGravityMass float64 `toml:"min_gravity_mass"` // bodies below this do not exert force via the tree

	// Density law: mass = DensityK * radius²
	DensityK float64 `toml:"density_k"`

	// Collision classification
	MergeAlpha       float64 `toml:"merge_alpha"`        // below: merge
	CraterMassRatio  float64 `toml:"crater_mass_ratio"`  // above: crater (heavy survives, light shatters)
	ExtremeMassRatio float64 `toml:"extreme_mass_ratio"` // above: unconditional merge
	VaporizeAlpha    float64 `toml:"vaporize_alpha"`     // above: total destruction, no cores, no debris

	// Mass loss model
	CraterLossBase  float64 `toml:"crater_loss_base"`  // heavy-body loss fraction per unit alpha
	CraterMaxLoss   float64 `toml:"crater_max_loss"`   // cap on heavy-body loss fraction
	CraterSpread    float64 `toml:"crater_spread"`     // debris cone half-angle, radians
	FragLossBase    float64 `toml:"frag_loss_base"`    // combined loss fraction per unit alpha
	FragMaxLoss     float64 `toml:"frag_max_loss"`     // cap on combined loss fraction
	MinCoreFraction float64 `toml:"min_core_fraction"` // surviving mass below this destroys the body
	DebrisMassShare float64 `toml:"debris_mass_share"` // share of lost mass realized as debris, rest vanishes

	// Debris
	MaxFragments      int     `toml:"max_fragments"`
	MinFragmentRadius float64 `toml:"min_fragment_radius"`
	MinBodyMass       float64 `toml:"min_body_mass"`   // viability floor, callers discard below this
	DebrisCooldown    float64 `toml:"debris_cooldown"` // sim seconds of collision immunity

	// Trails
	TrailMaxLen    int     `toml:"trail_max_len"`
	TrailMinDistSq float64 `toml:"trail_min_dist_sq"`
}

// DefaultTuning returns the reference parameter set. Only the qualitative
// ordering (merge < fragment < vaporize, crater for unequal masses) is
// load-bearing; the constants are chosen for visual plausibility.
func DefaultTuning() Tuning {
	return Tuning{
		G:         60.0,
		Softening: 2.0,
		Theta:     0.7,

		MaxDepth:       12,
		MinGravityMass: 1.0,

		DensityK: 1.0,

		MergeAlpha:       0.8,
		CraterMassRatio:  15.0,
		ExtremeMassRatio: 1000.0,
		VaporizeAlpha:    6.0,

		CraterLossBase:  0.05,
		CraterMaxLoss:   0.3,
		CraterSpread:    0.9,
		FragLossBase:    0.2,
		FragMaxLoss:     0.9,
		MinCoreFraction: 0.15,
		DebrisMassShare: 0.5,

		MaxFragments:      12,
		MinFragmentRadius: 0.5,
		MinBodyMass:       0.05,
		DebrisCooldown:    0.5,

		TrailMaxLen:    24,
		TrailMinDistSq: 1.0,
	}
}
