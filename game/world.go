package game

// World manages the spatial partitioning grid over the play area. Positions
// outside the area are clamped into the border cells.
type World struct {
	// Preallocated 2D grid of cells
	Cells [][]*Cell

	CellSize   float64
	cellCountX int
	cellCountY int
}

// NewWorld creates a new world with preallocated cells
func NewWorld(config Config) *World {
	cellCountX := config.CellCountX()
	cellCountY := config.CellCountY()

	cells := make([][]*Cell, cellCountX)
	for x := 0; x < cellCountX; x++ {
		cells[x] = make([]*Cell, cellCountY)
		for y := 0; y < cellCountY; y++ {
			cells[x][y] = NewCell(8)
		}
	}

	return &World{
		Cells:      cells,
		CellSize:   config.CellSize,
		cellCountX: cellCountX,
		cellCountY: cellCountY,
	}
}

// CellCounts returns the grid dimensions
func (w *World) CellCounts() (int, int) {
	return w.cellCountX, w.cellCountY
}

// WorldToCell converts world coordinates to cell coordinates
func (w *World) WorldToCell(x, y float64) (int, int) {
	cellX := int(x / w.CellSize)
	cellY := int(y / w.CellSize)

	// Clamp to valid cell range
	cellX = max(0, min(cellX, w.cellCountX-1))
	cellY = max(0, min(cellY, w.cellCountY-1))
	return cellX, cellY
}

// GetCell returns the cell at the given cell coordinates
func (w *World) GetCell(cellX, cellY int) *Cell {
	if cellX < 0 || cellX >= w.cellCountX || cellY < 0 || cellY >= w.cellCountY {
		return nil
	}
	return w.Cells[cellX][cellY]
}

// Register adds an actor to the cell under its position
func (w *World) Register(actor *Actor) {
	cellX, cellY := w.WorldToCell(actor.X, actor.Y)
	actor.CellX = cellX
	actor.CellY = cellY
	if cell := w.GetCell(cellX, cellY); cell != nil {
		cell.Add(actor)
	}
}

// Unregister removes an actor from its cell
func (w *World) Unregister(actor *Actor) {
	if cell := w.GetCell(actor.CellX, actor.CellY); cell != nil {
		cell.Remove(actor)
	}
}

// Move updates an actor's cell membership if it moved
func (w *World) Move(actor *Actor) {
	newCellX, newCellY := w.WorldToCell(actor.X, actor.Y)
	if newCellX == actor.CellX && newCellY == actor.CellY {
		return
	}

	if oldCell := w.GetCell(actor.CellX, actor.CellY); oldCell != nil {
		oldCell.Remove(actor)
	}
	actor.CellX = newCellX
	actor.CellY = newCellY
	if newCell := w.GetCell(newCellX, newCellY); newCell != nil {
		newCell.Add(actor)
	}
}

// Clear empties every cell
func (w *World) Clear() {
	for x := range w.Cells {
		for _, cell := range w.Cells[x] {
			cell.Clear()
		}
	}
}

// ActorsInRadius returns all live actors whose center lies within radius of
// (x, y). The cell range is padded by one cell so actors that moved since
// their last Move are still found.
func (w *World) ActorsInRadius(x, y, radius float64) []*Actor {
	actors := make([]*Actor, 0, 16)

	minCellX, minCellY := w.WorldToCell(x-radius, y-radius)
	maxCellX, maxCellY := w.WorldToCell(x+radius, y+radius)
	minCellX, minCellY = max(0, minCellX-1), max(0, minCellY-1)
	maxCellX, maxCellY = min(w.cellCountX-1, maxCellX+1), min(w.cellCountY-1, maxCellY+1)

	radiusSq := radius * radius
	for cellX := minCellX; cellX <= maxCellX; cellX++ {
		for cellY := minCellY; cellY <= maxCellY; cellY++ {
			actors = w.Cells[cellX][cellY].AppendWithin(actors, x, y, radiusSq)
		}
	}

	return actors
}
