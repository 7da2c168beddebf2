package game

import (
	"errors"
	"testing"
)

func TestSkillTreeBuy(t *testing.T) {
	g := newTestGame(t, nil)
	tree := NewSkillTree(DefaultSkillNodes())

	if !tree.Owned("root") {
		t.Fatal("Expected root owned from the start")
	}
	if !tree.Available("speed_1") || tree.Available("cooldown_1") {
		t.Fatal("Expected only root children available")
	}

	if err := tree.Buy(g, "speed_1"); !errors.Is(err, ErrNotEnoughGold) {
		t.Errorf("Expected ErrNotEnoughGold, got %v", err)
	}

	g.Credit(1000)
	if err := tree.Buy(g, "cooldown_1"); !errors.Is(err, ErrSkillLocked) {
		t.Errorf("Expected ErrSkillLocked, got %v", err)
	}
	if err := tree.Buy(g, "speed_1"); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if g.Gold() != 950 {
		t.Errorf("Expected 950 gold left, got %f", g.Gold())
	}
	if g.Stats().Speed != DefaultStats().Speed+25 {
		t.Errorf("Expected speed upgrade applied, got %f", g.Stats().Speed)
	}
	if err := tree.Buy(g, "speed_1"); !errors.Is(err, ErrSkillOwned) {
		t.Errorf("Expected ErrSkillOwned, got %v", err)
	}
	if err := tree.Buy(g, "nope"); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("Expected ErrUnknownSkill, got %v", err)
	}
}

func TestSkillTreeClosedDuringRun(t *testing.T) {
	g := newTestGame(t, nil)
	g.Credit(1000)
	g.StartRun()
	tree := NewSkillTree(DefaultSkillNodes())
	if err := tree.Buy(g, "speed_1"); !errors.Is(err, ErrShopClosed) {
		t.Errorf("Expected ErrShopClosed, got %v", err)
	}
}

func TestPetUpgradesStack(t *testing.T) {
	g := newTestGame(t, nil)
	g.Credit(10000)
	tree := NewSkillTree(DefaultSkillNodes())
	for _, id := range []string{"speed_1", "cooldown_1", "pet_1", "pet_2"} {
		if err := tree.Buy(g, id); err != nil {
			t.Fatalf("Buy %s failed: %v", id, err)
		}
	}

	g.StartRun()
	if g.Pet() == nil || g.Pet().Kind != PetParrot {
		t.Errorf("Expected a parrot after both pet upgrades")
	}
	if g.Stats().SwingCooldown >= 0.1 {
		t.Errorf("Expected faster swings, cooldown %f", g.Stats().SwingCooldown)
	}
}

func TestPetEvolvesInPlace(t *testing.T) {
	g := newTestGame(t, nil)
	stats := DefaultStats()
	stats.PetLevel = 1
	g.SetStats(stats)
	g.StartRun()

	pet := g.Pet()
	if pet == nil || pet.Kind != PetCarrot {
		t.Fatal("Expected a carrot at pet level 1")
	}

	stats.PetLevel = 2
	g.SetStats(stats)
	if g.Pet() != pet {
		t.Error("Expected the same pet to evolve")
	}
	if pet.Kind != PetParrot {
		t.Errorf("Expected parrot, got %v", pet.Kind)
	}
	if len(g.Effects().Particles) == 0 {
		t.Error("Expected an evolution burst")
	}
}
