package codegen

// varTable records, for each binding visible in a frame, the pair
// (base_register, offset_from_rbp), per spec.md §4.4's "Variable
// addressing". Grounded on original_source/variable_table/variable_table's
// parent-chain lookup: a frame that fails to find a name locally asks its
// parent, and the parent answers with `r12` as base instead of `rbp` only
// when it itself has no parent (i.e. it is the top-level main frame) and
// the lookup arrived from a nested function. Locals of the frame doing
// the asking always use `rbp`.
type varTable struct {
	parent *varTable
	vars   map[string]int
}

func newVarTable(parent *varTable) *varTable {
	return &varTable{parent: parent, vars: make(map[string]int)}
}

// set binds name to offset (a signed displacement from the frame's base
// register: negative for pushed locals, positive for stack-passed
// arguments) in this table.
func (t *varTable) set(name string, offset int) {
	t.vars[name] = offset
}

// lookup resolves name to its (base register, offset) pair, per the
// parent-chain/r12 rule above.
func (t *varTable) lookup(name string) (reg string, offset int, ok bool) {
	return t.lookupFrom(name, false)
}

func (t *varTable) lookupFrom(name string, fromChild bool) (string, int, bool) {
	if off, ok := t.vars[name]; ok {
		if t.parent == nil && fromChild {
			return "r12", off, true
		}
		return "rbp", off, true
	}
	if t.parent != nil {
		return t.parent.lookupFrom(name, true)
	}
	return "", 0, false
}
