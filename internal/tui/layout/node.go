package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the axis along which a split lays out its children.
type Direction int

const (
	// Horizontal places children side by side, splitting the width.
	Horizontal Direction = iota
	// Vertical stacks children, splitting the height.
	Vertical
)

// String makes Direction satisfy the fmt.Stringer interface.
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses "horizontal"/"h" or "vertical"/"v".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown split direction %q", s)
}

// Node describes a partition of an area. A node with a Slot is a leaf bound
// to the widget at that index; otherwise it splits its area among Children
// along Direction in proportion to their weights.
type Node struct {
	Slot      *int      `yaml:"slot,omitempty"`
	Direction Direction `yaml:"direction,omitempty"`
	Children  []Child   `yaml:"children,omitempty"`
}

// Child is a weighted entry of a split.
type Child struct {
	Weight int  `yaml:"weight"`
	Node   Node `yaml:",inline"`
}

// Leaf returns a node bound to a widget slot.
func Leaf(slot int) Node {
	return Node{Slot: &slot}
}

// Split returns a node dividing its area among children.
func Split(dir Direction, children ...Child) Node {
	return Node{Direction: dir, Children: children}
}

// Weighted pairs a node with its relative weight.
func Weighted(weight int, n Node) Child {
	return Child{Weight: weight, Node: n}
}

// IsLeaf reports whether n is bound to a widget slot.
func (n Node) IsLeaf() bool {
	return n.Slot != nil
}

var (
	// ErrSlotOutOfRange is returned when a leaf references a missing widget.
	ErrSlotOutOfRange = errors.New("layout leaf references a missing widget slot")
	// ErrEmptySplit is returned for a split without children.
	ErrEmptySplit = errors.New("layout split has no children")
	// ErrNegativeWeight is returned for a child with a negative weight.
	ErrNegativeWeight = errors.New("layout weight is negative")
)

// Validate checks that every leaf references one of slots widgets.
func (n Node) Validate(slots int) error {
	return n.validate(slots, "root")
}

func (n Node) validate(slots int, path string) error {
	if n.IsLeaf() {
		if *n.Slot < 0 || *n.Slot >= slots {
			return fmt.Errorf("%s: slot %d of %d: %w", path, *n.Slot, slots, ErrSlotOutOfRange)
		}
		return nil
	}
	if len(n.Children) == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptySplit)
	}
	for i, c := range n.Children {
		if c.Weight < 0 {
			return fmt.Errorf("%s[%d]: %w", path, i, ErrNegativeWeight)
		}
		if err := c.Node.validate(slots, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Flipped returns a copy of n with the direction of every split toggled.
func (n Node) Flipped() Node {
	if n.IsLeaf() {
		return n
	}
	out := Node{Direction: n.Direction.Toggle(), Children: make([]Child, len(n.Children))}
	for i, c := range n.Children {
		out.Children[i] = Child{Weight: c.Weight, Node: c.Node.Flipped()}
	}
	return out
}

// Describe is a pure function producing the layout for a root direction.
type Describe func(Direction) Node

// Static describes a layout that ignores the direction.
func Static(n Node) Describe {
	return func(Direction) Node { return n }
}

// Flip describes n for its own root direction and n.Flipped() for the
// other one.
func Flip(n Node) Describe {
	return func(d Direction) Node {
		if n.IsLeaf() || d == n.Direction {
			return n
		}
		return n.Flipped()
	}
}
