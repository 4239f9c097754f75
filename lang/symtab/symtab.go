// Package symtab implements the lexically-scoped symbol table the
// resolver populates and the generator later consults for stack offsets.
// Grounded on mna-nenuphar/lang/resolver/resolver.go's block push/pop
// scope-stack discipline, repurposed from name-scope binding resolution
// to type storage, and on original_source/symbol_table/symbol_table.hpp's
// parent-chain lookup semantics.
package symtab

import (
	"fmt"

	"github.com/mna/jplc/lang/types"
	"golang.org/x/exp/slices"
)

// Kind identifies what a Symbol denotes.
type Kind uint8

const (
	VariableSymbol Kind = iota
	FunctionSymbol
	TypeAliasSymbol
)

// Symbol is an entry bound in some scope: a variable of a given type, a
// function with a parameter/return signature, or a type alias.
type Symbol struct {
	Name string
	Kind Kind

	// VariableSymbol
	Type *types.ResolvedType

	// FunctionSymbol
	Params []*types.ResolvedType
	Return *types.ResolvedType

	// TypeAliasSymbol
	Aliased *types.ResolvedType
}

// Scope is one level of lexical nesting: a function body, an array/sum
// loop's bound variables, or the global (top-level command) scope.
type Scope struct {
	parent *Scope
	table  map[string]*Symbol
	order  []string
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, table: make(map[string]*Symbol)}
}

// Table is the full symbol table: a stack of Scopes plus the two
// predeclared globals from spec.md §3 (argnum: int, args: array<int,1>).
type Table struct {
	global  *Scope
	current *Scope
}

// unaryMathFns and binaryMathFns are the runtime's predeclared float
// intrinsics, per original_source/generator/generator.cpp's
// main_generator constructor (which seeds call_signatures for exactly
// this set, since they have no `fn` declaration of their own).
var (
	unaryMathFns  = []string{"sqrt", "exp", "sin", "cos", "tan", "asin", "acos", "atan", "log"}
	binaryMathFns = []string{"pow", "atan2"}
)

// New creates a Table with its predeclared globals and intrinsic math
// functions bound in the outermost scope.
func New() *Table {
	g := newScope(nil)
	t := &Table{global: g, current: g}
	t.mustDefine(&Symbol{Name: "argnum", Kind: VariableSymbol, Type: types.NewInt()})
	t.mustDefine(&Symbol{Name: "args", Kind: VariableSymbol, Type: types.NewArray(types.NewInt(), 1)})

	floatT := types.NewFloat()
	for _, name := range unaryMathFns {
		t.mustDefine(&Symbol{Name: name, Kind: FunctionSymbol, Params: []*types.ResolvedType{floatT}, Return: floatT})
	}
	for _, name := range binaryMathFns {
		t.mustDefine(&Symbol{Name: name, Kind: FunctionSymbol, Params: []*types.ResolvedType{floatT, floatT}, Return: floatT})
	}
	t.mustDefine(&Symbol{Name: "to_float", Kind: FunctionSymbol, Params: []*types.ResolvedType{types.NewInt()}, Return: floatT})
	t.mustDefine(&Symbol{Name: "to_int", Kind: FunctionSymbol, Params: []*types.ResolvedType{floatT}, Return: types.NewInt()})
	return t
}

func (t *Table) mustDefine(s *Symbol) {
	t.current.table[s.Name] = s
	t.current.order = append(t.current.order, s.Name)
}

// Push enters a new nested scope.
func (t *Table) Push() {
	t.current = newScope(t.current)
}

// Pop exits the current scope, returning to its parent. It is a no-op
// (and never leaves the global scope) if called with no enclosing scope.
func (t *Table) Pop() {
	if t.current.parent != nil {
		t.current = t.current.parent
	}
}

// Scope returns the currently active scope, for callers (the generator)
// that need to enumerate just the locals bound in it.
func (t *Table) Scope() *Scope { return t.current }

// Names returns the symbol names bound directly in s, in declaration
// order.
func (s *Scope) Names() []string { return slices.Clone(s.order) }

// Define binds name in the current scope. It returns false (and does not
// bind) if name is already bound in this scope — duplicate-name-in-scope
// is rejected, per spec.md §3; shadowing an outer scope's binding is
// allowed.
func (t *Table) Define(sym *Symbol) bool {
	if _, ok := t.current.table[sym.Name]; ok {
		return false
	}
	t.mustDefine(sym)
	return true
}

// Lookup searches the current scope and its ancestors for name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.parent {
		if sym, ok := s.table[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupVariable is a typed convenience wrapper over Lookup for the
// common case of resolving an identifier expression.
func (t *Table) LookupVariable(name string) (*types.ResolvedType, bool) {
	sym, ok := t.Lookup(name)
	if !ok || sym.Kind != VariableSymbol {
		return nil, false
	}
	return sym.Type, true
}

// LookupFunction resolves a function's call signature by name.
func (t *Table) LookupFunction(name string) (params []*types.ResolvedType, ret *types.ResolvedType, ok bool) {
	sym, found := t.Lookup(name)
	if !found || sym.Kind != FunctionSymbol {
		return nil, nil, false
	}
	return sym.Params, sym.Return, true
}

// LookupTypeAlias resolves a `type` declaration by name.
func (t *Table) LookupTypeAlias(name string) (*types.ResolvedType, bool) {
	sym, found := t.Lookup(name)
	if !found || sym.Kind != TypeAliasSymbol {
		return nil, false
	}
	return sym.Aliased, true
}

// ErrDuplicate is returned by callers that want a Go error rather than a
// bool when Define fails; symtab itself never constructs it, it's a
// convenience for the resolver to build diagnostics with.
type ErrDuplicate struct{ Name string }

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("symbol %q already declared in this scope", e.Name)
}
