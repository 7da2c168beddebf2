package game

import (
	"log"
	"os"
	"strconv"

	"islandbrawl/island"
)

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the play-area width in pixels
	ScreenWidth int

	// ScreenHeight is the play-area height in pixels
	ScreenHeight int

	// MaxDeltaTime caps a single frame step in seconds
	MaxDeltaTime float64

	// Island controls shoreline generation
	Island island.Params

	// ClampBuffer keeps sprites from visually crossing the shoreline
	ClampBuffer float64

	// SpawnPadding is the minimum distance from the shoreline for new actors
	SpawnPadding float64

	// CellSize is the size of each spatial partition cell in pixels
	CellSize float64

	// MaxEnergy is the energy a run starts with
	MaxEnergy float64

	// EnergyDecay is the energy lost per second while playing
	EnergyDecay float64

	// ShakeDecay is the screen shake lost per second
	ShakeDecay float64

	// Initial population of a run
	InitialChests  int
	InitialRocks   int
	InitialCrabs   int
	InitialPirates int

	// RespawnFloor is the actor count below which one actor is respawned per frame
	RespawnFloor int

	// BarrageInterval is the time between automatic cannon barrages
	BarrageInterval float64

	// BarrageStagger is the delay between balls of one barrage
	BarrageStagger float64

	// BarrageSpread is the maximum offset of a ball target from the player
	BarrageSpread float64

	// CoinAnchorX, CoinAnchorY is where coins fly to, normally the HUD gold readout
	CoinAnchorX float64
	CoinAnchorY float64

	// Seed seeds the simulation random source
	Seed int64

	// Logger receives run-level diagnostics
	Logger *log.Logger

	// Verbose subscribes a LogListener to the event queue
	Verbose bool
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     1280,
		ScreenHeight:    800,
		MaxDeltaTime:    0.1,
		Island:          island.DefaultParams(),
		ClampBuffer:     40,
		SpawnPadding:    60,
		CellSize:        128,
		MaxEnergy:       100,
		EnergyDecay:     4,
		ShakeDecay:      30,
		InitialChests:   15,
		InitialRocks:    15,
		InitialCrabs:    10,
		InitialPirates:  3,
		RespawnFloor:    20,
		BarrageInterval: 5,
		BarrageStagger:  0.2,
		BarrageSpread:   300,
		CoinAnchorX:     60,
		CoinAnchorY:     40,
		Seed:            1,
		Logger:          log.New(os.Stderr, "[islandbrawl] ", log.LstdFlags),
	}
}

// CellCountX returns the number of cells in the X direction
func (c Config) CellCountX() int {
	return max(1, int(float64(c.ScreenWidth)/c.CellSize)+1)
}

// CellCountY returns the number of cells in the Y direction
func (c Config) CellCountY() int {
	return max(1, int(float64(c.ScreenHeight)/c.CellSize)+1)
}

// Stats is the upgradeable player record. The core only reads it; the shop
// flow outside the simulation increments it between runs.
type Stats struct {
	Speed         float64
	Damage        float64
	SwingCooldown float64

	// Range is added to the base melee reach
	Range float64

	// Arc is added to the base swing arc, in degrees
	Arc float64

	CannonLevel int
	PetLevel    int

	Knockback      float64
	CritChance     float64
	GoldMultiplier float64
	Thorns         float64
}

// DefaultStats returns the stats of a fresh save
func DefaultStats() Stats {
	return Stats{
		Speed:         250,
		Damage:        50,
		SwingCooldown: 0.1,
		Range:         80,
	}
}

// EnvInt64 reads an integer environment variable, falling back to def when it
// is unset or malformed
func EnvInt64(name string, def int64) int64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", name, v, err)
		return def
	}
	return n
}
