package track

// Incline presets in degrees.
const (
	InclineFlat    = 2
	InclineGradual = 5
	InclineMedium  = 10
	InclineSteep   = 15
	InclineCliff   = 25
	InclineBump    = 35
)

// DefineTrack returns the fixed course.
func DefineTrack() Spec {
	return Spec{
		// initial straight
		{Incline: InclineFlat, Direction: 0, Tilt: 0, Length: 24},

		// curve and straight
		{Incline: InclineFlat, Direction: 45, Tilt: -10, Length: 16},
		{Incline: InclineFlat, Direction: 45, Tilt: 0, Length: 8},
		{Incline: InclineFlat, Direction: 45, Tilt: 0, Length: 16},
		{Incline: InclineFlat, Direction: 0, Tilt: 20, Length: 16},
		{Incline: InclineFlat, Direction: 0, Tilt: 0, Length: 16},
		{Incline: InclineMedium, Direction: 0, Tilt: 0, Length: 24},

		// valley
		{Incline: InclineSteep, Direction: 45, Tilt: 10, Length: 24},
		{Incline: InclineCliff, Direction: 80, Tilt: 5, Length: 20},
		{Incline: InclineMedium, Direction: 80, Tilt: 0, Length: 12},
		{Incline: -InclineSteep, Direction: 80, Tilt: 0, Length: 8},
		{Incline: InclineFlat, Direction: 80, Tilt: 0, Length: 8},

		// grand turn
		{Incline: InclineSteep, Direction: 0, Tilt: 10, Length: 32},
		{Incline: InclineSteep, Direction: -45, Tilt: 10, Length: 32},
		{Incline: InclineSteep, Direction: -45, Tilt: 0, Length: 16},
		{Incline: InclineFlat, Direction: -45, Tilt: 0, Length: 16},

		// twister
		{Incline: InclineFlat, Direction: -120, Tilt: 5, Length: 24},
		{Incline: InclineGradual, Direction: -120, Tilt: 0, Length: 16},
		{Incline: InclineGradual, Direction: -45, Tilt: -5, Length: 24},
		{Incline: InclineGradual, Direction: -45, Tilt: 0, Length: 16},
		{Incline: InclineSteep, Direction: -120, Tilt: 5, Length: 24},
		{Incline: -InclineSteep, Direction: -120, Tilt: 0, Length: 8},

		// second valley
		{Incline: InclineBump, Direction: -120, Tilt: 0, Length: 32},
		{Incline: InclineGradual, Direction: -120, Tilt: 0, Length: 16},
		{Incline: InclineGradual, Direction: 0, Tilt: 5, Length: 24},

		// saw
		{Incline: InclineGradual, Direction: 0, Tilt: 10, Length: 16},
		{Incline: InclineGradual, Direction: 0, Tilt: -10, Length: 16},
		{Incline: InclineGradual, Direction: 0, Tilt: 10, Length: 16},
		{Incline: InclineGradual, Direction: 0, Tilt: -10, Length: 16},

		// final turn
		{Incline: InclineMedium, Direction: 90, Tilt: -10, Length: 32},
		{Incline: InclineMedium, Direction: 0, Tilt: 10, Length: 32},
		{Incline: InclineMedium, Direction: -90, Tilt: 10, Length: 32},
		{Incline: InclineFlat, Direction: -90, Tilt: 0, Length: 32},
		{Incline: InclineSteep, Direction: -180, Tilt: 10, Length: 32},

		// final stretch and drop
		{Incline: InclineGradual, Direction: -180, Tilt: 0, Length: 8},
		{Incline: InclineFlat, Direction: -180, Tilt: 0, Length: 32},
		{Incline: -InclineFlat, Direction: -180, Tilt: 0, Length: 32},
		{Incline: 0, Direction: -180, Tilt: 0, Length: 32},
		{Incline: -85, Direction: -180, Tilt: 0, Length: 4},
		{Incline: -85, Direction: -180, Tilt: 0, Length: 16},
	}
}

// TotalLength returns the declared length of all sections.
func (s Spec) TotalLength() float32 {
	var total float32
	for _, sec := range s {
		total += sec.Length
	}
	return total
}
