package game

// DebugState holds global debug flags that persist across runs
type DebugState struct {
	ShowBoundary bool // Show island vertices and spokes
	ShowGrid     bool // Show spatial grid cells with actors in them
}

// Global debug state instance (persists across runs)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// ToggleBoundary flips the boundary overlay (F1 in the front-ends)
func (d *DebugState) ToggleBoundary() {
	d.ShowBoundary = !d.ShowBoundary
}

// ToggleGrid flips the grid overlay (F2 in the front-ends)
func (d *DebugState) ToggleGrid() {
	d.ShowGrid = !d.ShowGrid
}
