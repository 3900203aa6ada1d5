package parameter

// Shard Population
const (
	// ShardsPerSite is the fixed number of shards bound to each lattice site
	ShardsPerSite = 4

	// ShardCount is the fixed shard population
	ShardCount = SiteCount * ShardsPerSite

	// ShardOffsetHalfWidth is the half-width of the initial offset cube
	ShardOffsetHalfWidth = 80.0
)

// Shard Target Geometry
const (
	SieveBaseZ         = -250.0
	SieveRiseZ         = 240.0
	SieveSafetyBuffer  = 20.0
	SiteHeightGain     = 2.2
	ExtrusionAmplitude = 35.0
	ExtrusionBaseFreq  = 6.0
	ExtrusionFreqStep  = 1.2
	ForgeWidth         = 35.0
	ForgeCompleteAt    = 0.99
	ShardScaleGain     = 3.8
)

// Shard Forces
const (
	// FlareAgitationGain scales flare excitation into agitation
	FlareAgitationGain = 45.0

	// AvalancheRadius and AvalancheAgitation describe the sweep front
	AvalancheRadius    = 75.0
	AvalancheAgitation = 40.0

	// JitterAgitationGain scales jitter beyond threshold into agitation
	JitterAgitationGain = 0.85

	// AgitationThreshold selects the agitated regime over the snap regime
	AgitationThreshold = 0.1

	NoiseResilienceBias = 0.15
	RestoringGain       = 0.5
	VelocityDamping     = 0.48

	SnapSpeedBase      = 0.05
	SnapSpeedProgress  = 0.9
	SnapResilienceGain = 0.98
	SnapResilienceBias = 0.02

	// LockProgress and LockResilience gate the exact snap to target
	LockProgress   = 0.999
	LockResilience = 0.99
)
