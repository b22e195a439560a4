package replay

// Cursor is the navigable position over a timeline: a single ply index in
// [-1, length-1], where -1 is the starting position. It is the only
// mutable cell in the core; everything else is derived from it.
//
// Out-of-range GoTo calls are rejected no-ops, and Next/Previous clamp at
// the bounds. A disabled cursor rejects everything.
type Cursor struct {
	enabled bool
	index   int
	length  int
}

func NewCursor() *Cursor {
	return &Cursor{index: -1}
}

// Reset rebinds the cursor to a timeline of the given move count and
// rewinds to the starting position. Enablement is managed separately.
func (c *Cursor) Reset(length int) {
	c.index = -1
	c.length = length
}

func (c *Cursor) Enable()  { c.enabled = true }
func (c *Cursor) Disable() { c.enabled = false }

func (c *Cursor) Enabled() bool { return c.enabled }

// Index returns the current ply index; -1 is the starting position.
func (c *Cursor) Index() int { return c.index }

// GoTo moves to an absolute ply index. Returns false, leaving the cursor
// unchanged, when disabled or out of bounds.
func (c *Cursor) GoTo(index int) bool {
	if !c.enabled || index < -1 || index >= c.length {
		return false
	}
	c.index = index
	return true
}

func (c *Cursor) GoToStart() bool { return c.GoTo(-1) }

func (c *Cursor) GoToEnd() bool { return c.GoTo(c.length - 1) }

// GoToNext advances one ply, clamping at the last index.
func (c *Cursor) GoToNext() bool {
	if !c.enabled || c.index >= c.length-1 {
		return false
	}
	c.index++
	return true
}

// GoToPrevious steps back one ply, clamping at the starting position.
func (c *Cursor) GoToPrevious() bool {
	if !c.enabled || c.index <= -1 {
		return false
	}
	c.index--
	return true
}
