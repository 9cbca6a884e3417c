package layout

import "fmt"

// Tree owns a layout description and the current root direction.
type Tree struct {
	describe Describe
	dir      Direction
	root     Node
}

// New validates the description for both directions against the number of
// widget slots and returns a tree in direction dir.
func New(describe Describe, dir Direction, slots int) (*Tree, error) {
	if describe == nil {
		return nil, fmt.Errorf("layout: nil description")
	}
	for _, d := range []Direction{Horizontal, Vertical} {
		if err := describe(d).Validate(slots); err != nil {
			return nil, fmt.Errorf("layout (%s): %w", d, err)
		}
	}
	return &Tree{describe: describe, dir: dir, root: describe(dir)}, nil
}

// MustNew is New for layouts fixed at compile time. It panics on error.
func MustNew(describe Describe, dir Direction, slots int) *Tree {
	t, err := New(describe, dir, slots)
	if err != nil {
		panic(err)
	}
	return t
}

// Direction returns the current root direction.
func (t *Tree) Direction() Direction {
	return t.dir
}

// Root returns the layout for the current direction.
func (t *Tree) Root() Node {
	return t.root
}

// SetDirection rebuilds the layout for dir.
func (t *Tree) SetDirection(dir Direction) {
	t.dir = dir
	t.root = t.describe(dir)
}

// ToggleDirection flips the root direction and rebuilds the layout.
func (t *Tree) ToggleDirection() {
	t.SetDirection(t.dir.Toggle())
}

// Split divides area among the root's children. A leaf root yields area.
func (t *Tree) Split(area Rect) []Rect {
	if t.root.IsLeaf() {
		return []Rect{area}
	}
	return splitArea(area, t.root.Direction, weights(t.root.Children))
}

// AssignFunc receives the area computed for a widget slot.
type AssignFunc func(slot int, area Rect)

// Assign walks the tree and reports the area of every leaf.
func (t *Tree) Assign(area Rect, assign AssignFunc) {
	assignNode(t.root, area, assign)
}

// Areas returns the area of every slot, indexed by slot. Slots not
// referenced by the layout get an empty Rect.
func (t *Tree) Areas(area Rect, slots int) []Rect {
	out := make([]Rect, slots)
	t.Assign(area, func(slot int, r Rect) {
		if slot < slots {
			out[slot] = r
		}
	})
	return out
}

// Assignable is anything that can be placed in an area.
type Assignable interface {
	SetArea(Rect)
}

// AssignAll sets the area of every widget referenced by the tree.
func AssignAll[W Assignable](t *Tree, area Rect, widgets []W) {
	t.Assign(area, func(slot int, r Rect) {
		if slot < len(widgets) {
			widgets[slot].SetArea(r)
		}
	})
}

// ToggleAll flips the tree's direction and reassigns widget areas.
func ToggleAll[W Assignable](t *Tree, area Rect, widgets []W) {
	t.ToggleDirection()
	AssignAll(t, area, widgets)
}

func assignNode(n Node, area Rect, assign AssignFunc) {
	if n.IsLeaf() {
		assign(*n.Slot, area)
		return
	}
	for i, r := range splitArea(area, n.Direction, weights(n.Children)) {
		assignNode(n.Children[i].Node, r, assign)
	}
}

func weights(children []Child) []int {
	w := make([]int, len(children))
	for i, c := range children {
		w[i] = c.Weight
	}
	return w
}

// splitArea divides area along dir proportionally to ws. Rounding
// remainders go to the earliest children with a non-zero weight; when all
// weights are zero the area is split equally.
func splitArea(area Rect, dir Direction, ws []int) []Rect {
	if len(ws) == 0 {
		return nil
	}
	total := area.Width
	if dir == Vertical {
		total = area.Height
	}
	total = max(total, 0)

	sum := 0
	for _, w := range ws {
		sum += w
	}
	if sum == 0 {
		ws = make([]int, len(ws))
		for i := range ws {
			ws[i] = 1
		}
		sum = len(ws)
	}

	sizes := make([]int, len(ws))
	used := 0
	for i, w := range ws {
		sizes[i] = total * w / sum
		used += sizes[i]
	}
	for i := 0; used < total; i = (i + 1) % len(ws) {
		if ws[i] > 0 {
			sizes[i]++
			used++
		}
	}

	out := make([]Rect, len(ws))
	offset := 0
	for i, size := range sizes {
		if dir == Vertical {
			out[i] = Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: size}
		} else {
			out[i] = Rect{X: area.X + offset, Y: area.Y, Width: size, Height: area.Height}
		}
		offset += size
	}
	return out
}
