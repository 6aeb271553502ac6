package constellation

// Params are the simulation constants of one variant. They are fixed for the
// lifetime of an Engine.
type Params struct {
	MinRadius float64
	MaxRadius float64
	BaseSpeed float64
	HueMin    float64
	HueMax    float64

	ConnectDistance float64
	MaxConnections  int
	MaxAlpha        float64

	Density    float64
	MinCount   int
	MaxCount   int
	SpawnBatch int

	AttractionRadius   float64
	AttractionStrength float64
	ClickSpawnCount    int
	BurstJitterMin     float64
	BurstJitterMax     float64
	BurstSpeedMin      float64
	BurstSpeedMax      float64
}

// Speed range factors applied to BaseSpeed when spawning.
const (
	SpeedMinFactor = 0.55
	SpeedMaxFactor = 1.35
)
