package errs

// Code identifies one leaf of the error taxonomy in spec §7. Codes are
// dot-separated "Kind.SubKind" strings rather than terse alphanumeric
// mnemonics (ailang's PAR001-style scheme) because the taxonomy in spec §7
// is itself a two-level tree and the dotted form keeps that structure
// legible in logs and test assertions without a lookup table.
type Code string

const (
	// ControlFlow — missing return, misplaced break/continue.
	ControlFlowMissingReturn Code = "ControlFlow.MissingReturn"
	ControlFlowBadBreak      Code = "ControlFlow.BadBreak"
	ControlFlowBadContinue   Code = "ControlFlow.BadContinue"

	// Type — all type-checking failures.
	TypeLhsRhsMismatch             Code = "Type.LhsRhsMismatch"
	TypeUnexpectedType             Code = "Type.UnexpectedType"
	TypeArity                      Code = "Type.Arity"
	TypeBinOp                      Code = "Type.BinOp"
	TypeUniOp                      Code = "Type.UniOp"
	TypeArgMismatch                Code = "Type.ArgMismatch"
	TypeFieldAccessOnNonStruct     Code = "Type.FieldAccessOnNonStruct"
	TypeNotAStruct                 Code = "Type.NotAStruct"
	TypeStructNotFullyInitialized  Code = "Type.StructNotFullyInitialized"
	TypeInvalidInitialization      Code = "Type.InvalidInitialization"
	TypeUnknownField               Code = "Type.UnknownField"
	TypeHeterogenousArray          Code = "Type.HeterogenousArray"
	TypeNotAnArray                 Code = "Type.NotAnArray"
	TypeInvalidIndex               Code = "Type.InvalidIndex"
	TypeInitOpaqueType             Code = "Type.InitOpaqueType"
	TypeParameterNamingConflict    Code = "Type.TypeParameterNamingConflict"
	TypeUnknownTypeParameter       Code = "Type.UnknownTypeParameter"
	TypeParameterizedParameter     Code = "Type.ParameterizedParameter"
	TypeConflictingConstraints     Code = "Type.ConflictingConstraints"
	TypeFieldNamingConflict        Code = "Type.FieldNamingConflict"
	TypeCyclicType                 Code = "Type.CyclicType"
	TypeApplicationArity           Code = "Type.Application.Arity"
	TypeApplicationExpectedType    Code = "Type.Application.ExpectedType"
	TypeApplicationExpectedNumber  Code = "Type.Application.ExpectedNumber"

	// Top-level kinds outside the Type/ControlFlow trees.
	UnknownType     Code = "UnknownType"
	UnknownBinding  Code = "UnknownBinding"
	UnknownFn       Code = "UnknownFn"
	UnresolvedUses  Code = "UnresolvedUses"
	DuplicateTypes  Code = "DuplicateTypes"
	DuplicateFns    Code = "DuplicateFns"
	MultipleMainFns Code = "MultipleMainFns"
	MissingModName  Code = "MissingModName"
)

// Phase groups codes by the pipeline stage that raises them, following
// ailang's Report.Phase field.
type Phase string

const (
	PhaseModuleResolve Phase = "module-resolve"
	PhaseScopeResolve  Phase = "scope-resolve"
	PhaseTypeCheck     Phase = "type-check"
	PhaseReturnTrace   Phase = "return-trace"
	PhaseElaborate     Phase = "anon-elaborate"
)
