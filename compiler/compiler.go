// Package compiler drives the compilation of syntax trees into a single
// Seax program.
//
// Each top-level node is compiled against its own root scope, so bindings
// made by one node are never visible to another. The resulting instruction
// sequences are concatenated in order. Compilation does not stop at the
// first failing node: every node is compiled and all errors are reported
// together.
package compiler

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/seax-vm/seaxtools/ast"
	"github.com/seax-vm/seaxtools/cell"
	"github.com/seax-vm/seaxtools/errz"
	"github.com/seax-vm/seaxtools/list"
	"github.com/seax-vm/seaxtools/op"
	"github.com/seax-vm/seaxtools/scope"
)

// Config holds compiler configuration options.
type Config struct {
	// Logger receives debug events from the compiler and its scopes.
	// The zero value discards them.
	Logger zerolog.Logger

	// GlobalNames are bound at level 1 of every root scope, in sorted order,
	// before any node is compiled. Top-level code sees them as the innermost
	// environment frame.
	GlobalNames []string

	// Terminate appends a STOP instruction to the program.
	Terminate bool
}

// Compiler turns syntax trees into a Program.
type Compiler struct {
	log         zerolog.Logger
	globalNames []string
	terminate   bool
}

// New creates and returns a new Compiler. Pass nil for cfg to use defaults.
func New(cfg *Config) *Compiler {
	c := &Compiler{log: zerolog.Nop()}
	if cfg != nil {
		c.log = cfg.Logger
		c.terminate = cfg.Terminate
		c.globalNames = make([]string, len(cfg.GlobalNames))
		copy(c.globalNames, cfg.GlobalNames) // isolate from caller
	}
	sort.Strings(c.globalNames)
	return c
}

// Compile compiles nodes with a default Compiler.
func Compile(nodes ...ast.Node) (Program, error) {
	return New(nil).Compile(nodes...)
}

// Compile compiles each node in order and returns the concatenated program.
// If any node fails, the returned error describes every failure.
func (c *Compiler) Compile(nodes ...ast.Node) (Program, error) {
	var errs errz.Errors
	var buf list.List[cell.Cell]
	for i, node := range nodes {
		root, err := c.rootScope()
		if err != nil {
			return Program{}, err
		}
		code, err := node.Compile(root)
		if err != nil {
			c.log.Debug().Int("node", i).Err(err).Msg("node failed to compile")
			errs.Add(err)
			continue
		}
		for _, x := range code {
			buf = buf.Push(x)
		}
		c.log.Debug().Int("node", i).Int("cells", len(code)).Msg("compiled node")
	}
	if err := errs.ErrorOrNil(); err != nil {
		return Program{}, err
	}
	if c.terminate {
		buf = buf.Push(cell.InstCell(op.Stop))
	}
	return Program{cells: buf.Reverse()}, nil
}

func (c *Compiler) rootScope() (*scope.Table, error) {
	root := scope.New(scope.WithLogger(c.log))
	for _, name := range c.globalNames {
		if root.Contains(name) {
			continue
		}
		if _, err := root.Bind(name, 1); err != nil {
			return nil, err
		}
	}
	return root, nil
}
