package codegen

// failWith emits a call to the runtime's `_fail_assertion(const char*)`
// with a pooled message, used by every bounds/zero-divisor/assert check
// in the generator (spec.md §4.4, throughout). The caller is responsible
// for having already arranged the branch so this only runs on failure.
func (fr *frame) failWith(msg string) {
	name := fr.gen.consts.String(msg)
	pad := fr.alignForCall()
	fr.emit("lea rdi, [rel %s]", name)
	fr.emit("call _fail_assertion")
	fr.dropBytes(pad)
}
