package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSkill  = errors.New("skill: unknown node")
	ErrSkillOwned    = errors.New("skill: already purchased")
	ErrSkillLocked   = errors.New("skill: parent not purchased")
	ErrNotEnoughGold = errors.New("skill: not enough gold")
	ErrShopClosed    = errors.New("skill: shop closed during a run")
)

// SkillEffect is added onto Stats when a node is bought
type SkillEffect struct {
	Speed          float64
	Damage         float64
	SwingCooldown  float64
	Range          float64
	Arc            float64
	CannonLevel    int
	PetLevel       int
	Knockback      float64
	CritChance     float64
	GoldMultiplier float64
	Thorns         float64
}

// Apply returns stats with the effect added
func (e SkillEffect) Apply(stats Stats) Stats {
	stats.Speed += e.Speed
	stats.Damage += e.Damage
	stats.SwingCooldown += e.SwingCooldown
	stats.Range += e.Range
	stats.Arc += e.Arc
	stats.CannonLevel += e.CannonLevel
	stats.PetLevel += e.PetLevel
	stats.Knockback += e.Knockback
	stats.CritChance += e.CritChance
	stats.GoldMultiplier += e.GoldMultiplier
	stats.Thorns += e.Thorns
	return stats
}

// SkillNode is one purchasable upgrade
type SkillNode struct {
	ID          string
	Name        string
	Description string
	Cost        float64

	// Parent must be owned first; empty for the root
	Parent string

	Effect SkillEffect
}

// DefaultSkillNodes returns the upgrade tree, root first
func DefaultSkillNodes() []SkillNode {
	return []SkillNode{
		{ID: "root", Name: "Pirate Basics", Description: "The start of your journey."},

		// Offense
		{ID: "damage_1", Name: "Sharp Blade", Description: "+25 Damage", Cost: 100, Parent: "root", Effect: SkillEffect{Damage: 25}},
		{ID: "speed_attack_1", Name: "Berserker", Description: "+20% Atk Speed", Cost: 250, Parent: "damage_1", Effect: SkillEffect{SwingCooldown: -0.2}},
		{ID: "crit_1", Name: "Lucky Strike", Description: "10% Crit Chance", Cost: 300, Parent: "speed_attack_1", Effect: SkillEffect{CritChance: 0.1}},
		{ID: "crit_2", Name: "Gambler", Description: "+15% Crit Chance", Cost: 600, Parent: "crit_1", Effect: SkillEffect{CritChance: 0.15}},
		{ID: "arc_1", Name: "Wild Swing", Description: "Wider Swing Arc", Cost: 300, Parent: "damage_1", Effect: SkillEffect{Arc: 30}},
		{ID: "knockback_1", Name: "Heavy Hand", Description: "Add Knockback", Cost: 400, Parent: "arc_1", Effect: SkillEffect{Knockback: 200}},
		{ID: "knockback_2", Name: "Titan Force", Description: "Massive Knockback", Cost: 800, Parent: "knockback_1", Effect: SkillEffect{Knockback: 300}},

		// Defense and utility
		{ID: "speed_1", Name: "Peg Leg Polish", Description: "+10% Movement Speed", Cost: 50, Parent: "root", Effect: SkillEffect{Speed: 25}},
		{ID: "cooldown_1", Name: "Quick Hands", Description: "-10% Swing Cooldown", Cost: 150, Parent: "speed_1", Effect: SkillEffect{SwingCooldown: -0.1}},
		{ID: "range_1", Name: "Long Reach", Description: "+20% Sword Range", Cost: 200, Parent: "speed_1", Effect: SkillEffect{Range: 10}},
		{ID: "thorns_1", Name: "Spiked Vest", Description: "Reflect 5 Damage", Cost: 350, Parent: "root", Effect: SkillEffect{Thorns: 5}},
		{ID: "thorns_2", Name: "Cactus Hug", Description: "Reflect 10 Damage", Cost: 700, Parent: "thorns_1", Effect: SkillEffect{Thorns: 10}},

		// Pets
		{ID: "pet_1", Name: "New Friend", Description: "Unlock Carrot Pet", Cost: 400, Parent: "cooldown_1", Effect: SkillEffect{PetLevel: 1}},
		{ID: "pet_2", Name: "Best Friend", Description: "Evolve to Parrot", Cost: 1000, Parent: "pet_1", Effect: SkillEffect{PetLevel: 1}},

		// Economy
		{ID: "cannon_1", Name: "Ship Support", Description: "Auto-fire Cannons", Cost: 500, Parent: "speed_1", Effect: SkillEffect{CannonLevel: 1}},
		{ID: "gold_1", Name: "Gold Rush", Description: "+20% Gold Drops", Cost: 400, Parent: "cannon_1", Effect: SkillEffect{GoldMultiplier: 0.2}},
		{ID: "gold_2", Name: "Treasure Hunter", Description: "+30% Gold Drops", Cost: 800, Parent: "gold_1", Effect: SkillEffect{GoldMultiplier: 0.3}},
	}
}

// SkillTree tracks which upgrades have been bought this session
type SkillTree struct {
	nodes     []SkillNode
	index     map[string]int
	purchased map[string]bool
}

// NewSkillTree creates a tree with only the root owned
func NewSkillTree(nodes []SkillNode) *SkillTree {
	t := &SkillTree{
		nodes:     nodes,
		index:     make(map[string]int, len(nodes)),
		purchased: make(map[string]bool, len(nodes)),
	}
	for i, n := range nodes {
		t.index[n.ID] = i
		if n.Parent == "" {
			t.purchased[n.ID] = true
		}
	}
	return t
}

// Nodes returns every node in tree order
func (t *SkillTree) Nodes() []SkillNode {
	return t.nodes
}

// Owned reports whether a node has been bought
func (t *SkillTree) Owned(id string) bool {
	return t.purchased[id]
}

// Available reports whether a node can be bought once gold allows
func (t *SkillTree) Available(id string) bool {
	i, ok := t.index[id]
	if !ok || t.purchased[id] {
		return false
	}
	return t.purchased[t.nodes[i].Parent]
}

// Buy spends gold on a node and applies its effect to the game's stats.
// Only allowed between runs.
func (t *SkillTree) Buy(g *Game, id string) error {
	if g.State() == StatePlaying {
		return ErrShopClosed
	}
	i, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	node := t.nodes[i]
	if t.purchased[id] {
		return ErrSkillOwned
	}
	if !t.purchased[node.Parent] {
		return ErrSkillLocked
	}
	if !g.SpendGold(node.Cost) {
		return fmt.Errorf("%w: need %.0f, have %.0f", ErrNotEnoughGold, node.Cost, g.Gold())
	}

	t.purchased[id] = true
	g.SetStats(node.Effect.Apply(g.Stats()))
	g.logger.Printf("bought %s for %.0f gold", node.Name, node.Cost)
	return nil
}
