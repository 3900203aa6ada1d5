package parameter

// Phi is the golden-ratio drive resonance used at runtime, (1 + sqrt(5)) / 2
const Phi = 1.618033988749895

// StrictPhi is the fixed golden-ratio constant of the static landscape
// Numerically equal to Phi, kept separate so the landscape never follows driveOmega
const StrictPhi = 1.6180339887

// Lattice Geometry
const (
	// GridSize is the side of the square lattice
	GridSize = 24

	// SiteCount is the fixed number of lattice sites
	SiteCount = GridSize * GridSize

	// RandomPotentialSpread scales the uniform draw of the incoherent baseline
	RandomPotentialSpread = 2.5
)

// Site Seeding
const (
	AmplitudeSeedMin   = 0.15
	AmplitudeSeedRange = 0.1

	ParticipationSeed = 1.0
	LocalizationSeed  = 0.1
)

// Localization Physics
const (
	// JitterThreshold separates the localized regime from heating (ps)
	JitterThreshold = 50.0

	// DetuningThreshold is the drive detuning beyond which the lattice heats
	DetuningThreshold = 0.08

	// DetuningEpsilon absorbs the rounding of |omega - Phi| so a drive exactly
	// DetuningThreshold away resolves the same on both sides of Phi
	DetuningEpsilon = 1e-9

	// ScalingAlpha0 and ScalingDelta shape alpha0*(1 - tanh(U/delta))
	ScalingAlpha0 = 1.0
	ScalingDelta  = 2.5

	// LatticeDetuningGain is the detuning multiplier of the amplitude scaling law
	LatticeDetuningGain = 2.0

	// AmplitudeMin and AmplitudeMax bound every site oscillation
	AmplitudeMin = 0.02
	AmplitudeMax = 2.0

	// LocalizationMin is the floor of the localized xi branch
	LocalizationMin = 0.3

	// RandomSiteParticipation is the participation ratio of incoherent sites
	RandomSiteParticipation = 0.05
	ParticipationMin        = 0.01

	// Noise magnitudes per regime
	NoiseHeating   = 0.25
	NoiseLocalized = 0.01
	NoiseBurst     = 0.4
)
