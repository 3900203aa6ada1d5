package parameter

// Statistics Engine
const (
	// MSDDetuningGain is the detuning multiplier of the diffusion-law exponent
	// Deliberately distinct from LatticeDetuningGain
	MSDDetuningGain = 4.0

	// MSDHistoryLen is the default bound of the MSD sample window
	MSDHistoryLen = 120

	// MSDMeasurementNoise is the relative half-width of measured sample noise
	MSDMeasurementNoise = 0.05

	// LevelSpacingBins is the histogram length
	LevelSpacingBins = 20

	// LevelSpacingNoise is the upper bound of per-bin uniform noise
	LevelSpacingNoise = 0.04
)
