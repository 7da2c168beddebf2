package game

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"slices"

	"islandbrawl/fx"
	"islandbrawl/island"
)

// ErrNotPlaying is returned by actions that need an active run
var ErrNotPlaying = errors.New("game: not playing")

// State is the top-level game mode
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateShop
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateShop:
		return "shop"
	default:
		return "unknown"
	}
}

// Game represents the main game state
type Game struct {
	config Config
	logger *log.Logger

	rng     *rand.Rand
	drawRng *rand.Rand

	state   State
	session uint64

	island    *island.Polygon
	world     *World
	contacts  *ContactSystem
	effects   *fx.Engine
	scheduler *Scheduler
	events    *EventQueue
	input     InputProvider

	player *Player
	pet    *Pet
	actors []*Actor

	stats  Stats
	gold   float64
	energy float64

	hitStop      float64
	shake        float64
	barrageTimer float64
	elapsed      float64
}

// NewGame creates a game sitting in the menu with a freshly generated island
func NewGame(config Config) (*Game, error) {
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		config:    config,
		logger:    logger,
		rng:       rand.New(rand.NewSource(config.Seed)),
		drawRng:   rand.New(rand.NewSource(config.Seed + 1)),
		state:     StateMenu,
		world:     NewWorld(config),
		scheduler: NewScheduler(),
		events:    NewEventQueue(),
		input:     &FixedInput{},
		actors:    make([]*Actor, 0, 64),
		stats:     DefaultStats(),
		energy:    config.MaxEnergy,
	}
	g.contacts = NewContactSystem(g.world)
	g.effects = fx.NewEngine(g.rng, g)
	g.effects.SetCoinAnchor(config.CoinAnchorX, config.CoinAnchorY)

	poly, err := island.Generate(float64(config.ScreenWidth), float64(config.ScreenHeight), config.Island, g.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate island: %w", err)
	}
	g.island = poly
	g.player = NewPlayer(poly.CenterX, poly.CenterY)

	if config.Verbose {
		g.events.SubscribeAll(&LogListener{Logger: logger})
	}

	return g, nil
}

// StartRun resets the island population and begins a new run. Anything
// scheduled by a previous run is discarded when it comes due.
func (g *Game) StartRun() {
	g.session++
	g.state = StatePlaying
	g.energy = g.config.MaxEnergy
	g.shake = 0
	g.hitStop = 0
	g.barrageTimer = 0
	g.elapsed = 0

	g.effects.Reset()
	g.world.Clear()
	clear(g.actors)
	g.actors = g.actors[:0]

	g.player = NewPlayer(g.island.CenterX, g.island.CenterY)
	g.pet = nil
	if kind, ok := PetKindForLevel(g.stats.PetLevel); ok {
		g.pet = NewPet(kind, g.player.X, g.player.Y)
	}

	spawns := []struct {
		kind  ActorKind
		count int
	}{
		{ActorChest, g.config.InitialChests},
		{ActorRock, g.config.InitialRocks},
		{ActorCrab, g.config.InitialCrabs},
		{ActorPirate, g.config.InitialPirates},
	}
	for _, s := range spawns {
		for i := 0; i < s.count; i++ {
			g.Spawn(s.kind)
		}
	}

	g.logger.Printf("run %d started with %d actors", g.session, len(g.actors))
	g.Emit(Event{Type: EventRunStarted, Amount: float64(len(g.actors))})
}

// endRun stops the simulation and hands over to the shop
func (g *Game) endRun() {
	g.energy = 0
	g.state = StateShop
	g.logger.Printf("run %d ended after %.1fs with %.0f gold", g.session, g.elapsed, g.gold)
	g.Emit(Event{Type: EventRunEnded, Amount: g.gold})
}

// Tick advances the simulation by deltaTime seconds and then dispatches the
// events the frame produced.
func (g *Game) Tick(deltaTime float64) {
	if deltaTime > g.config.MaxDeltaTime && g.config.MaxDeltaTime > 0 {
		deltaTime = g.config.MaxDeltaTime
	}
	if deltaTime > 0 {
		g.step(deltaTime)
	}
	g.events.Drain()
}

func (g *Game) step(deltaTime float64) {
	if g.state != StatePlaying {
		return
	}

	// Hit-stop freezes everything, including timers
	if g.hitStop > 0 {
		g.hitStop = math.Max(0, g.hitStop-deltaTime)
		return
	}

	g.energy -= g.config.EnergyDecay * deltaTime
	if g.energy <= 0 {
		g.endRun()
		return
	}

	if g.shake > 0 {
		g.shake = math.Max(0, g.shake-g.config.ShakeDecay*deltaTime)
	}

	g.elapsed += deltaTime
	buffer := g.config.ClampBuffer

	in := g.input.Poll(g.view())
	g.player.Update(g, in, deltaTime)
	g.player.X, g.player.Y = g.island.ClampInside(g.player.X, g.player.Y, buffer)

	if g.pet != nil {
		g.pet.Update(g, g.actors, deltaTime)
	}

	for _, actor := range g.actors {
		actor.Update(g, deltaTime)
	}
	g.contacts.Resolve(g.actors)
	for _, actor := range g.actors {
		if actor.config.BoundaryConstrained {
			actor.X, actor.Y = g.island.ClampInside(actor.X, actor.Y, buffer)
		}
		g.world.Move(actor)
	}

	g.effects.UpdateParticles(deltaTime)
	g.effects.UpdateTexts(deltaTime)

	g.compact()

	if ran, dropped := g.scheduler.Advance(deltaTime, g.session, g.state == StatePlaying); dropped > 0 {
		g.logger.Printf("dropped %d stale deferred actions (%d ran)", dropped, ran)
	}

	if g.stats.CannonLevel > 0 {
		g.barrageTimer += deltaTime
		if g.barrageTimer >= g.config.BarrageInterval {
			g.barrageTimer = 0
			g.fireBarrage(g.stats.CannonLevel)
		}
	}

	if len(g.actors) < g.config.RespawnFloor {
		if g.rng.Float64() > 0.5 {
			g.Spawn(ActorChest)
		} else {
			g.Spawn(ActorCrab)
		}
	}
}

// compact drops every actor and effect marked for deletion
func (g *Game) compact() {
	live := g.actors[:0]
	for _, actor := range g.actors {
		if actor.MarkedForDeletion {
			g.world.Unregister(actor)
			continue
		}
		live = append(live, actor)
	}
	clear(g.actors[len(live):])
	g.actors = live

	g.effects.Compact()
}

// Spawn places a new actor of kind at a random point on the island
func (g *Game) Spawn(kind ActorKind) *Actor {
	x, y := g.island.RandomPointInside(g.rng, g.config.SpawnPadding)
	return g.SpawnAt(kind, x, y)
}

// SpawnAt places a new actor of kind at (x, y)
func (g *Game) SpawnAt(kind ActorKind, x, y float64) *Actor {
	actor := NewActor(kind, x, y)
	if actor.Mobile() {
		randomHeading(g, actor)
	}
	g.addActor(actor)
	return actor
}

func (g *Game) addActor(actor *Actor) {
	g.actors = append(g.actors, actor)
	g.world.Register(actor)
}

// FireBarrage launches a cannon barrage around the player right away
func (g *Game) FireBarrage() error {
	if g.state != StatePlaying {
		return ErrNotPlaying
	}
	g.fireBarrage(max(1, g.stats.CannonLevel))
	return nil
}

// fireBarrage schedules count balls around the player, staggered in time
func (g *Game) fireBarrage(count int) {
	spread := g.config.BarrageSpread
	for i := 0; i < count; i++ {
		tx := g.player.X + (g.rng.Float64()*2-1)*spread
		ty := g.player.Y + (g.rng.Float64()*2-1)*spread
		tx, ty = g.island.ClampInside(tx, ty, g.config.ClampBuffer)

		g.scheduler.After(float64(i)*g.config.BarrageStagger, g.session, func() {
			g.addActor(NewCannonBall(tx, ty))
		})
	}

	g.effects.SpawnText(g.player.X, g.player.Y-100, "CANNON BARRAGE!", colorFire, fx.TextLarge)
	g.Emit(Event{Type: EventBarrage, X: g.player.X, Y: g.player.Y, Amount: float64(count)})
}

// Resize regenerates the island for a new play-area size and pulls every
// constrained entity back inside it.
func (g *Game) Resize(width, height int) error {
	if width == g.config.ScreenWidth && height == g.config.ScreenHeight {
		return nil
	}

	poly, err := island.Generate(float64(width), float64(height), g.config.Island, g.rng)
	if err != nil {
		return fmt.Errorf("failed to regenerate island for %dx%d: %w", width, height, err)
	}

	g.config.ScreenWidth = width
	g.config.ScreenHeight = height
	g.island = poly

	g.world = NewWorld(g.config)
	g.contacts = NewContactSystem(g.world)
	buffer := g.config.ClampBuffer
	for _, actor := range g.actors {
		if actor.config.BoundaryConstrained || actor.config.Behavior == BehaviorStatic {
			actor.X, actor.Y = poly.ClampInside(actor.X, actor.Y, buffer)
		}
		g.world.Register(actor)
	}
	g.player.X, g.player.Y = poly.ClampInside(g.player.X, g.player.Y, buffer)

	g.logger.Printf("island regenerated for %dx%d", width, height)
	g.Emit(Event{Type: EventIslandReset, X: poly.CenterX, Y: poly.CenterY})
	return nil
}

// view snapshots what input providers may read
func (g *Game) view() View {
	return View{
		PlayerX: g.player.X,
		PlayerY: g.player.Y,
		Width:   float64(g.config.ScreenWidth),
		Height:  float64(g.config.ScreenHeight),
		Energy:  g.energy,
		Gold:    g.gold,
		Elapsed: g.elapsed,
		Actors:  g.actors,
	}
}

// playerRenderable adapts the player into the Y-sorted draw pass
type playerRenderable struct {
	player *Player
	stats  Stats
}

func (p playerRenderable) SortY() float64 { return p.player.Y }

func (p playerRenderable) Draw(s Surface, _ float64) { p.player.Draw(s, p.stats) }

// Draw composes the frame: island, Y-sorted renderables, particles, texts
func (g *Game) Draw(s Surface) {
	var dx, dy float64
	if g.shake > 0 {
		dx = (g.drawRng.Float64() - 0.5) * g.shake
		dy = (g.drawRng.Float64() - 0.5) * g.shake
	}
	s.SetOffset(dx, dy)
	defer s.SetOffset(0, 0)

	s.DrawIsland(g.island)
	g.drawDebug(s)

	if g.state != StatePlaying {
		return
	}

	items := make([]Renderable, 0, len(g.actors)+2)
	for _, actor := range g.actors {
		items = append(items, actor)
	}
	items = append(items, playerRenderable{player: g.player, stats: g.stats})
	if g.pet != nil {
		items = append(items, g.pet)
	}
	slices.SortStableFunc(items, func(a, b Renderable) int {
		return cmp.Compare(a.SortY(), b.SortY())
	})
	for _, item := range items {
		item.Draw(s, g.elapsed)
	}

	for _, p := range g.effects.Particles {
		s.DrawParticle(p)
	}
	for _, t := range g.effects.Texts {
		s.DrawText(t)
	}
}

var (
	debugBoundaryColor = color.RGBA{255, 0, 255, 255}
	debugGridColor     = color.RGBA{0, 255, 255, 120}
)

func (g *Game) drawDebug(s Surface) {
	debug := GetDebugState()

	if debug.ShowBoundary {
		poly := g.island
		for _, v := range poly.Vertices {
			s.DrawDebugLine(poly.CenterX, poly.CenterY, v.X, v.Y, debugBoundaryColor)
		}
	}

	if debug.ShowGrid {
		size := g.world.CellSize
		countX, countY := g.world.CellCounts()
		for x := 0; x < countX; x++ {
			for y := 0; y < countY; y++ {
				if g.world.Cells[x][y].Len() == 0 {
					continue
				}
				x0, y0 := float64(x)*size, float64(y)*size
				s.DrawDebugLine(x0, y0, x0+size, y0, debugGridColor)
				s.DrawDebugLine(x0+size, y0, x0+size, y0+size, debugGridColor)
				s.DrawDebugLine(x0+size, y0+size, x0, y0+size, debugGridColor)
				s.DrawDebugLine(x0, y0+size, x0, y0, debugGridColor)
			}
		}
	}
}

// Context implementation and accessors

func (g *Game) Effects() *fx.Engine          { return g.effects }
func (g *Game) Rand() *rand.Rand             { return g.rng }
func (g *Game) Stats() Stats                 { return g.stats }
func (g *Game) Island() *island.Polygon      { return g.island }
func (g *Game) Events() *EventQueue          { return g.events }
func (g *Game) Player() *Player              { return g.player }
func (g *Game) Pet() *Pet                    { return g.pet }
func (g *Game) Actors() []*Actor             { return g.actors }
func (g *Game) State() State                 { return g.state }
func (g *Game) Session() uint64              { return g.session }
func (g *Game) Config() Config               { return g.config }
func (g *Game) Gold() float64                { return g.gold }
func (g *Game) Energy() float64              { return g.energy }
func (g *Game) ShakeAmount() float64         { return g.shake }
func (g *Game) HitStopRemaining() float64    { return g.hitStop }
func (g *Game) Elapsed() float64             { return g.elapsed }
func (g *Game) Scheduler() *Scheduler        { return g.scheduler }
func (g *Game) SetInput(input InputProvider) { g.input = input }

// Bounds returns the play-area size
func (g *Game) Bounds() (float64, float64) {
	return float64(g.config.ScreenWidth), float64(g.config.ScreenHeight)
}

// PlayerPosition returns the player's position
func (g *Game) PlayerPosition() (float64, float64) {
	return g.player.X, g.player.Y
}

// ActorsInRadius returns live actors near (x, y)
func (g *Game) ActorsInRadius(x, y, radius float64) []*Actor {
	return g.world.ActorsInRadius(x, y, radius)
}

// EnergyFraction returns remaining energy in [0, 1] for the HUD
func (g *Game) EnergyFraction() float64 {
	if g.config.MaxEnergy <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, g.energy/g.config.MaxEnergy))
}

// SetStats replaces the upgrade record, normally between runs. A carrot
// evolves on the spot once the level calls for a parrot.
func (g *Game) SetStats(stats Stats) {
	g.stats = stats
	if g.pet == nil {
		return
	}
	if kind, ok := PetKindForLevel(stats.PetLevel); ok && kind != g.pet.Kind {
		g.pet.Upgrade(g)
	}
}

// SpendGold deducts amount if the balance covers it
func (g *Game) SpendGold(amount float64) bool {
	if amount < 0 || amount > g.gold {
		return false
	}
	g.gold -= amount
	return true
}

// Credit adds gold, scaled by the gold multiplier upgrade
func (g *Game) Credit(amount float64) {
	amount *= 1 + g.stats.GoldMultiplier
	g.gold += amount
	g.Emit(Event{Type: EventCoinCredited, Amount: amount})
}

// DrainEnergy removes energy; the run ends on the next frame it hits zero
func (g *Game) DrainEnergy(amount float64) {
	g.energy = math.Max(0, g.energy-amount)
}

// HitStop freezes the simulation for at least duration seconds
func (g *Game) HitStop(duration float64) {
	g.hitStop = math.Max(g.hitStop, duration)
}

// Shake raises the screen shake to at least amount
func (g *Game) Shake(amount float64) {
	g.shake = math.Max(g.shake, amount)
}

// Emit queues an event for the end of the frame
func (g *Game) Emit(event Event) {
	g.events.Push(event)
}
