package gait

const (
	numLegs = 6
)

// Params are the fixed dimensions of the gait. Every distance is in mm, in
// the leg coordinate space.
type Params struct {

	// Number of progress units in a full cycle.
	CycleLength float64 `yaml:"cycle_length"`

	// Where the feet rest: DistanceFromCenter outwards from the coxa, at height
	// DistanceFromGround (which is negative, since the ground is below).
	DistanceFromCenter float64 `yaml:"distance_from_center"`
	DistanceFromGround float64 `yaml:"distance_from_ground"`

	LiftHeight      float64 `yaml:"lift_height"`
	LandHeight      float64 `yaml:"land_height"`
	StrideOvershoot float64 `yaml:"stride_overshoot"`

	// The straight path of each leg is rotated by PlacementAngle times the leg's
	// rotation sign, so the front and back legs push along the body.
	PlacementAngle float64          `yaml:"placement_angle"`
	StrideSigns    [numLegs]float64 `yaml:"stride_signs"`
	RotationSigns  [numLegs]float64 `yaml:"rotation_signs"`

	// When false, strides are a fixed length regardless of how far the stick is
	// pushed, and the stick only changes the speed.
	DynamicStride bool    `yaml:"dynamic_stride"`
	FixedStride   float64 `yaml:"fixed_stride"`

	// Convert the normalized (-1 to 1) translation and rotation into mm.
	StrideScale   float64 `yaml:"stride_scale"`
	RotationScale float64 `yaml:"rotation_scale"`

	// Progress (per tick) at full deflection, before multipliers.
	ProgressScale float64 `yaml:"progress_scale"`
}

func DefaultParams() Params {
	return Params{
		CycleLength:        1000,
		DistanceFromCenter: 173,
		DistanceFromGround: -60,
		LiftHeight:         130,
		LandHeight:         70,
		StrideOvershoot:    10,
		PlacementAngle:     56,
		StrideSigns:        [numLegs]float64{1, 1, 1, -1, -1, -1},
		RotationSigns:      [numLegs]float64{-1, 0, 1, -1, 0, 1},
		DynamicStride:      true,
		FixedStride:        70,
		StrideScale:        100,
		RotationScale:      100,
		ProgressScale:      20,
	}
}
