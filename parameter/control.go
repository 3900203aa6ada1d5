package parameter

// Control Domains (command boundary clamps)
const (
	InteractionMin = 0.0
	InteractionMax = 10.0

	PotentialMin = 0.0
	PotentialMax = 12.0

	JitterMin = 0.0
	JitterMax = 100.0

	OmegaMin = 1.45
	OmegaMax = 1.75
)

// Initial Control State
const (
	InitialInteraction = 1.5
	InitialPotential   = 2.5
	InitialJitter      = 10.0
)

// Status Assessment Bands
const (
	WarnJitter   = 30.0
	WarnDetuning = 0.02
	SnapDetuning = 0.002
)
