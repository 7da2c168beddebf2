package game

// Cell is one square of the spatial grid. Actor order inside a cell is not
// kept; removal swaps the last actor into the hole.
type Cell struct {
	actors []*Actor
}

// NewCell creates an empty cell with room for capacity actors
func NewCell(capacity int) *Cell {
	return &Cell{actors: make([]*Actor, 0, capacity)}
}

// Len returns the number of registered actors, including ones marked for
// deletion that have not been swept yet
func (c *Cell) Len() int {
	return len(c.actors)
}

// Add registers actor unless it is already present
func (c *Cell) Add(actor *Actor) {
	if c.Contains(actor) {
		return
	}
	c.actors = append(c.actors, actor)
}

// Remove unregisters actor and reports whether it was present
func (c *Cell) Remove(actor *Actor) bool {
	last := len(c.actors) - 1
	for i, a := range c.actors {
		if a != actor {
			continue
		}
		c.actors[i] = c.actors[last]
		c.actors[last] = nil
		c.actors = c.actors[:last]
		return true
	}
	return false
}

// Contains reports whether actor is registered here
func (c *Cell) Contains(actor *Actor) bool {
	for _, a := range c.actors {
		if a == actor {
			return true
		}
	}
	return false
}

// AppendWithin appends the live actors whose center lies within
// sqrt(radiusSq) of (x, y)
func (c *Cell) AppendWithin(dst []*Actor, x, y, radiusSq float64) []*Actor {
	for _, a := range c.actors {
		if a.MarkedForDeletion {
			continue
		}
		dx := a.X - x
		dy := a.Y - y
		if dx*dx+dy*dy <= radiusSq {
			dst = append(dst, a)
		}
	}
	return dst
}

// Clear drops every actor but keeps the storage
func (c *Cell) Clear() {
	clear(c.actors)
	c.actors = c.actors[:0]
}
