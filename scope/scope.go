// Package scope implements the fork table compilers use to resolve names to
// positions in the Seax VM's environment stack.
//
// Frames live in an Arena and refer to their parent by slot number. A Table
// is a handle onto one frame. Forking a table creates a child frame whose
// bindings shadow the parent's; nothing a child does is visible through the
// parent, and discarding the child releases its frame without touching any
// other.
//
// Levels are relative. The environment register keeps the innermost frame at
// its head and LD counts it as level 1, so an Index is always expressed from
// the scope doing the lookup: one Fork adds one to the level of everything
// bound above it. The same function body therefore compiles to the same
// code however deeply it is nested.
//
// Lookup is a linear walk from the current frame toward the root.
package scope

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

var (
	// ErrAlreadyBound is returned when a name is bound twice in one frame.
	ErrAlreadyBound = errors.New("name already bound in this scope")

	// ErrDiscarded is the panic value for using a discarded Table.
	ErrDiscarded = errors.New("scope has been discarded")

	// ErrHasChildren is returned by Discard when live children remain.
	ErrHasChildren = errors.New("scope has live children")

	// ErrRootScope is returned by Discard on the root table.
	ErrRootScope = errors.New("cannot discard the root scope")
)

// Index locates a bound name in the environment stack: Level selects the
// environment frame and Position the slot within it.
type Index struct {
	Level    uint64
	Position uint64
}

// String renders the index as a cons pair, "(level . position)".
func (i Index) String() string {
	return fmt.Sprintf("(%d . %d)", i.Level, i.Position)
}

const noParent = -1

type frame struct {
	parent   int
	depth    int
	gen      uint32
	live     bool
	children int
	names    map[string]Index
	claimed  map[uint64]uint64 // slots claimed per level
}

// Arena owns the frames of one compilation.
type Arena struct {
	frames []frame
	free   []int
	log    zerolog.Logger
}

// Option configures a new root table.
type Option func(*Arena)

// WithLogger sets the logger used for debug output about scope changes.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Arena) {
		a.log = logger
	}
}

// Table is a handle onto one frame of an Arena.
type Table struct {
	arena *Arena
	slot  int
	gen   uint32
}

// New creates an arena holding a single root frame and returns its table.
func New(opts ...Option) *Table {
	a := &Arena{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	slot := a.alloc(noParent, 0)
	a.log.Debug().Int("slot", slot).Msg("created root scope")
	return &Table{arena: a, slot: slot, gen: a.frames[slot].gen}
}

func (a *Arena) alloc(parent, depth int) int {
	f := frame{
		parent:  parent,
		depth:   depth,
		live:    true,
		names:   map[string]Index{},
		claimed: map[uint64]uint64{},
	}
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		f.gen = a.frames[slot].gen + 1
		a.frames[slot] = f
		return slot
	}
	a.frames = append(a.frames, f)
	return len(a.frames) - 1
}

// Live returns the number of frames currently in use.
func (a *Arena) Live() int {
	return len(a.frames) - len(a.free)
}

func (t *Table) frame() *frame {
	f := &t.arena.frames[t.slot]
	if !f.live || f.gen != t.gen {
		panic(fmt.Errorf("%w (slot %d)", ErrDiscarded, t.slot))
	}
	return f
}

// Arena returns the arena the table belongs to.
func (t *Table) Arena() *Arena {
	return t.arena
}

// Fork creates a child scope of t. Bindings made in the child shadow those
// of t and its ancestors and are never visible through t.
func (t *Table) Fork() *Table {
	f := t.frame()
	f.children++
	depth := f.depth + 1
	slot := t.arena.alloc(t.slot, depth)
	t.arena.log.Debug().
		Int("slot", slot).
		Int("parent", t.slot).
		Int("depth", depth).
		Msg("forked scope")
	return &Table{arena: t.arena, slot: slot, gen: t.arena.frames[slot].gen}
}

// Discard releases the frame of a forked table. The table must not be used
// afterwards. The root table cannot be discarded, and neither can a table
// whose own children are still live.
func (t *Table) Discard() error {
	f := t.frame()
	if f.parent == noParent {
		return ErrRootScope
	}
	if f.children > 0 {
		return fmt.Errorf("%w (%d remaining)", ErrHasChildren, f.children)
	}
	t.arena.frames[f.parent].children--
	f.live = false
	f.names = nil
	f.claimed = nil
	t.arena.free = append(t.arena.free, t.slot)
	t.arena.log.Debug().Int("slot", t.slot).Msg("discarded scope")
	return nil
}

// Bind adds name to this scope at the given environment level and returns
// the index assigned to it. Levels are relative to this scope: each Fork
// enters one more environment frame, so level 1 here is level 2 in the
// parent. The position is the next slot of that frame not yet claimed by
// this scope or any ancestor. Binding a name that already
// exists in this scope fails with ErrAlreadyBound; a name bound only in an
// ancestor is shadowed.
func (t *Table) Bind(name string, level uint64) (Index, error) {
	f := t.frame()
	if existing, ok := f.names[name]; ok {
		return Index{}, fmt.Errorf("%w: %q at %s", ErrAlreadyBound, name, existing)
	}
	idx := Index{Level: level, Position: t.claimedAt(level)}
	f.names[name] = idx
	f.claimed[level]++
	t.arena.log.Debug().
		Str("name", name).
		Uint64("level", idx.Level).
		Uint64("position", idx.Position).
		Int("slot", t.slot).
		Msg("bound name")
	return idx, nil
}

// claimedAt counts the slots of the environment frame at level, as seen from
// this scope, already claimed here or by an ancestor. An ancestor k forks up
// knows that frame as level-k.
func (t *Table) claimedAt(level uint64) uint64 {
	var total uint64
	depth := t.frame().depth
	frames := t.arena.frames
	for slot := t.slot; slot != noParent; slot = frames[slot].parent {
		dist := uint64(depth - frames[slot].depth)
		if level < dist {
			break
		}
		total += frames[slot].claimed[level-dist]
	}
	return total
}

// Lookup resolves name against this scope and then each ancestor in turn.
// The innermost binding wins. Its level is rebased onto this scope: a name
// bound at level L in a frame k forks above this one resolves to level L+k.
func (t *Table) Lookup(name string) (Index, bool) {
	depth := t.frame().depth
	frames := t.arena.frames
	for slot := t.slot; slot != noParent; slot = frames[slot].parent {
		if idx, ok := frames[slot].names[name]; ok {
			idx.Level += uint64(depth - frames[slot].depth)
			return idx, true
		}
	}
	return Index{}, false
}

// Contains returns true if name is bound in this scope itself.
func (t *Table) Contains(name string) bool {
	_, ok := t.frame().names[name]
	return ok
}

// ChainContains returns true if name is bound in this scope or any ancestor.
func (t *Table) ChainContains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Names returns the names bound in this scope, sorted.
func (t *Table) Names() []string {
	f := t.frame()
	names := make([]string, 0, len(f.names))
	for name := range f.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Visible returns every name resolvable from this scope, sorted. Shadowed
// names appear once.
func (t *Table) Visible() []string {
	t.frame()
	frames := t.arena.frames
	seen := map[string]bool{}
	var names []string
	for slot := t.slot; slot != noParent; slot = frames[slot].parent {
		for name := range frames[slot].names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of names bound in this scope.
func (t *Table) Len() int {
	return len(t.frame().names)
}

// Depth returns the number of forks between this scope and the root.
func (t *Table) Depth() int {
	return t.frame().depth
}

// IsRoot returns true if this table has no parent.
func (t *Table) IsRoot() bool {
	return t.frame().parent == noParent
}

// Parent returns a handle onto the parent scope, or nil for the root.
func (t *Table) Parent() *Table {
	f := t.frame()
	if f.parent == noParent {
		return nil
	}
	return &Table{arena: t.arena, slot: f.parent, gen: t.arena.frames[f.parent].gen}
}
