package game

import (
	"image/color"

	"islandbrawl/fx"
)

// ActorKind defines the closed set of actor variants
type ActorKind int

const (
	ActorChest ActorKind = iota
	ActorRock
	ActorCrab
	ActorPirate
	ActorCannonBall
	ActorKindCount
)

func (k ActorKind) String() string {
	return GetActorKindConfig(k).Name
}

// Behavior selects how an actor moves each frame
type Behavior int

const (
	BehaviorStatic Behavior = iota
	BehaviorPatrol
	BehaviorChase
	BehaviorProjectile
)

// ActorKindConfig holds configuration for each actor kind
type ActorKindConfig struct {
	Kind     ActorKind
	Name     string
	Behavior Behavior
	Sprite   SpriteKind

	Width, Height float64

	// MaxHealth of zero means the actor cannot be damaged
	MaxHealth float64

	Speed float64

	// AggroRadius is the chase trigger distance for BehaviorChase
	AggroRadius float64

	// ContactRadius and ContactDrain describe the energy lost per second
	// while the player stands this close
	ContactRadius float64
	ContactDrain  float64

	// Reward is the gold dropped on death. With RewardCoins > 0 it is split
	// across that many coins, otherwise it is granted directly.
	Reward      float64
	RewardCoins int

	// Feedback applied on every damaging hit
	HitStop       float64
	Shake         float64
	HitParticles  fx.Kind
	HitCount      int
	HitColor      color.RGBA
	FlashColor    color.RGBA
	DeathBursts   int
	DeathSplinter int

	// BoundaryConstrained actors are clamped into the island every frame
	BoundaryConstrained bool
}

// Colors shared by actors and the player
var (
	colorWood    = color.RGBA{139, 69, 19, 255}
	colorGold    = color.RGBA{255, 215, 0, 255}
	colorWhite   = color.RGBA{255, 255, 255, 255}
	colorRed     = color.RGBA{255, 77, 77, 255}
	colorFire    = color.RGBA{255, 68, 0, 255}
	colorSmoke   = color.RGBA{85, 85, 85, 255}
	colorShell   = color.RGBA{230, 90, 60, 255}
	colorOrange  = color.RGBA{255, 165, 0, 255}
	colorSky     = color.RGBA{0, 204, 255, 255}
	colorBlood   = color.RGBA{255, 0, 0, 255}
	colorPetGlow = color.RGBA{0, 255, 204, 255}
)

// GetActorKindConfig returns configuration for an actor kind
func GetActorKindConfig(kind ActorKind) ActorKindConfig {
	switch kind {
	case ActorChest:
		return ActorKindConfig{
			Kind:          ActorChest,
			Name:          "chest",
			Behavior:      BehaviorStatic,
			Sprite:        SpriteChest,
			Width:         40,
			Height:        40,
			MaxHealth:     150,
			Reward:        50,
			RewardCoins:   10,
			HitStop:       0.05,
			Shake:         5,
			HitParticles:  fx.KindSplinter,
			HitCount:      5,
			HitColor:      colorWood,
			FlashColor:    colorWhite,
			DeathBursts:   20,
			DeathSplinter: 10,
		}
	case ActorRock:
		return ActorKindConfig{
			Kind:     ActorRock,
			Name:     "rock",
			Behavior: BehaviorStatic,
			Sprite:   SpriteRock,
			Width:    40,
			Height:   40,
		}
	case ActorCrab:
		return ActorKindConfig{
			Kind:                ActorCrab,
			Name:                "crab",
			Behavior:            BehaviorPatrol,
			Sprite:              SpriteCrab,
			Width:               40,
			Height:              40,
			MaxHealth:           100,
			Speed:               50,
			ContactRadius:       30,
			ContactDrain:        20,
			Reward:              20,
			RewardCoins:         4,
			HitParticles:        fx.KindSpark,
			HitCount:            4,
			HitColor:            colorShell,
			FlashColor:          colorWhite,
			DeathBursts:         10,
			BoundaryConstrained: true,
		}
	case ActorPirate:
		return ActorKindConfig{
			Kind:                ActorPirate,
			Name:                "pirate",
			Behavior:            BehaviorChase,
			Sprite:              SpritePirate,
			Width:               50,
			Height:              50,
			MaxHealth:           250,
			Speed:               80,
			AggroRadius:         400,
			ContactRadius:       40,
			ContactDrain:        15,
			Reward:              50,
			HitStop:             0.03,
			Shake:               4,
			HitParticles:        fx.KindSpark,
			HitCount:            6,
			HitColor:            colorBlood,
			FlashColor:          colorBlood,
			DeathBursts:         15,
			BoundaryConstrained: true,
		}
	case ActorCannonBall:
		return ActorKindConfig{
			Kind:     ActorCannonBall,
			Name:     "cannonball",
			Behavior: BehaviorProjectile,
			Sprite:   SpriteCannonBall,
			Width:    40,
			Height:   40,
			Speed:    400,
		}
	default:
		return GetActorKindConfig(ActorChest)
	}
}

// Cannon ball tuning
const (
	CannonDropHeight = 600.0
	CannonRadius     = 100.0
	CannonDamage     = 100.0
	CannonShake      = 15.0
)
