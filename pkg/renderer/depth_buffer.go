package renderer

import "math"

// DepthBuffer stores the nearest hit distance seen so far for every pixel.
// Rows may be updated concurrently as long as no two goroutines share a row.
type DepthBuffer struct {
	width, height int
	depth         []float64
}

// NewDepthBuffer creates a buffer with every slot set to +Inf
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{
		width:  width,
		height: height,
		depth:  make([]float64, width*height),
	}
	db.Reset()
	return db
}

// Reset sets every slot back to +Inf
func (db *DepthBuffer) Reset() {
	inf := math.Inf(1)
	for i := range db.depth {
		db.depth[i] = inf
	}
}

// At returns the stored distance for pixel (x, y)
func (db *DepthBuffer) At(x, y int) float64 {
	return db.depth[y*db.width+x]
}

// TestAndSet stores distance for pixel (x, y) if it is strictly nearer than
// the stored value. Ties keep the earlier hit.
func (db *DepthBuffer) TestAndSet(x, y int, distance float64) bool {
	i := y*db.width + x
	if distance < db.depth[i] {
		db.depth[i] = distance
		return true
	}
	return false
}

// Width returns the buffer width in pixels
func (db *DepthBuffer) Width() int { return db.width }

// Height returns the buffer height in pixels
func (db *DepthBuffer) Height() int { return db.height }
