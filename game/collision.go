package game

// ContactSystem keeps mobile actors from walking through each other or
// through static obstacles, using the spatial grid for candidate pairs.
type ContactSystem struct {
	world *World
}

// NewContactSystem creates a contact system over world
func NewContactSystem(world *World) *ContactSystem {
	return &ContactSystem{world: world}
}

// contactRadius is the circle used for overlap tests
func contactRadius(a *Actor) float64 {
	return (a.Width + a.Height) / 4 * 0.8
}

// Resolve pushes overlapping pairs apart. Only mobile actors move; a static
// actor behaves as an immovable obstacle.
func (c *ContactSystem) Resolve(actors []*Actor) {
	for _, actor := range actors {
		if actor.MarkedForDeletion || !actor.Mobile() {
			continue
		}

		radius := contactRadius(actor)
		for _, other := range c.world.ActorsInRadius(actor.X, actor.Y, radius*2.5) {
			if other == actor || other.Kind == ActorCannonBall {
				continue
			}
			c.PushApart(actor, other)
		}
	}
}

// PushApart pushes two actors apart to resolve an overlap
func (c *ContactSystem) PushApart(a1, a2 *Actor) {
	dx := a2.X - a1.X
	dy := a2.Y - a1.Y
	distance := a1.DistanceTo(a2.X, a2.Y)

	if distance == 0 {
		// Exactly on top of each other, separate diagonally
		dx = 1.0
		dy = 1.0
		distance = sqrt2
	}

	dx /= distance
	dy /= distance

	overlap := contactRadius(a1) + contactRadius(a2) - distance
	if overlap <= 0 {
		return
	}

	switch {
	case a1.Mobile() && a2.Mobile():
		separation := overlap * 0.5
		a1.X -= dx * separation
		a1.Y -= dy * separation
		a2.X += dx * separation
		a2.Y += dy * separation
	case a1.Mobile():
		a1.X -= dx * overlap
		a1.Y -= dy * overlap
	case a2.Mobile():
		a2.X += dx * overlap
		a2.Y += dy * overlap
	default:
		return
	}

	c.world.Move(a1)
	c.world.Move(a2)
}
