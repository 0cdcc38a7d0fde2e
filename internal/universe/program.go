package universe

import (
	"github.com/google/uuid"

	"github.com/smpl-lang/smplc/internal/ids"
)

// Metadata is the supplementary bookkeeping table spec §6 asks the analysis
// output to carry alongside the universe itself: field ordering per record,
// parameter var-IDs per function, opaque/builtin flags, and main's location.
// Grounded on original_source's metadata/mod.rs, which keeps exactly this
// information out of Universe proper so read-mostly consumers (a backend)
// don't need write access to the universe to ask "what are Foo's fields,
// in order?".
type Metadata struct {
	// FieldOrder records each record TypeID's fields in declaration order,
	// duplicating TypeConstructor.FieldOrd for consumers that only have a
	// Metadata handle.
	FieldOrder map[ids.TypeID][]ids.FieldID

	// ParamVars records each function's parameter VarIDs in declaration
	// order.
	ParamVars map[ids.FnID][]ids.VarID

	// Opaque marks struct TypeIDs declared with the "opaque" annotation, or
	// via a bare OpaqueDecl (spec §6, §9).
	Opaque map[ids.TypeID]bool

	// Builtin marks FnIDs backed by a BuiltinFunctionDecl rather than SMPL
	// source.
	Builtin map[ids.FnID]bool

	// Variadic marks Builtin FnIDs whose UncheckedFunction skips
	// argument-shape checking (spec §3).
	Variadic map[ids.FnID]bool

	// Main holds the FnID of the program's `main` function, if any module
	// declared one.
	Main *ids.FnID
}

func NewMetadata() *Metadata {
	return &Metadata{
		FieldOrder: make(map[ids.TypeID][]ids.FieldID),
		ParamVars:  make(map[ids.FnID][]ids.VarID),
		Opaque:     make(map[ids.TypeID]bool),
		Builtin:    make(map[ids.FnID]bool),
		Variadic:   make(map[ids.FnID]bool),
	}
}

// Program is the analysis output (spec §6): the fully populated universe,
// its metadata, observed feature flags, and a per-run correlation id for
// the driver's logs.
type Program struct {
	Universe *Universe
	Metadata *Metadata

	// Features records which optional behaviors this analysis run observed
	// or enabled, e.g. "builtin_fn", "unchecked_builtin_fn_params",
	// "function_value" (spec §6, §9 open question (c)).
	Features map[string]bool

	// RunID correlates one analysis run's log lines and diagnostics.
	RunID uuid.UUID
}

// NewProgram returns an empty Program with a fresh run id and the given
// feature flags (nil means none enabled).
func NewProgram(features map[string]bool) *Program {
	if features == nil {
		features = make(map[string]bool)
	}
	return &Program{
		Universe: New(),
		Metadata: NewMetadata(),
		Features: features,
		RunID:    uuid.New(),
	}
}
