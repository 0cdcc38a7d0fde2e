package types

import (
	"testing"

	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
)

// fakeRegistry is a minimal in-memory Registry for tests: no concurrency,
// no module lifecycle, just a map and a counter.
type fakeRegistry struct {
	byID map[ids.TypeID]*TypeConstructor
	next int64
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{byID: make(map[ids.TypeID]*TypeConstructor)}
}

func (r *fakeRegistry) Lookup(id ids.TypeID) (*TypeConstructor, bool) {
	tc, ok := r.byID[id]
	return tc, ok
}

func (r *fakeRegistry) Register(tc *TypeConstructor) ids.TypeID {
	id := ids.TypeID(r.next)
	r.next++
	r.byID[id] = tc
	return id
}

func (r *fakeRegistry) put(id ids.TypeID, tc *TypeConstructor) {
	r.byID[id] = tc
	if int64(id) >= r.next {
		r.next = int64(id) + 1
	}
}

// pairConstructor registers `struct Pair<A,B>{x: A, y: B}`, mirroring S5.
func pairConstructor(reg *fakeRegistry) (ids.TypeID, ids.TypeVarID, ids.TypeVarID, ids.FieldID, ids.FieldID) {
	pairID := ids.TypeID(100)
	varA := ids.TypeVarID(0)
	varB := ids.TypeVarID(1)
	fieldX := ids.FieldID(0)
	fieldY := ids.FieldID(1)
	reg.put(pairID, &TypeConstructor{
		Kind:     ConsRecord,
		RecordID: pairID,
		Params: TypeParams{
			{ID: ids.TypeParamID(0), Var: varA},
			{ID: ids.TypeParamID(1), Var: varB},
		},
		Fields: map[ids.FieldID]AbstractType{
			fieldX: TypeVar(varA),
			fieldY: TypeVar(varB),
		},
		FieldMap: map[string]ids.FieldID{"x": fieldX, "y": fieldY},
		FieldOrd: []ids.FieldID{fieldX, fieldY},
	})
	return pairID, varA, varB, fieldX, fieldY
}

func TestSubstituteAppliesPairGeneric(t *testing.T) {
	reg := newFakeRegistry()
	pairID, _, _, fieldX, fieldY := pairConstructor(reg)

	applied, err := Substitute(reg, App(pairID, []AbstractType{Int, Bool}), errs.Dummy())
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	resolved, err := Resolve(reg, applied, errs.Dummy())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Kind != AbsRecord {
		t.Fatalf("resolved.Kind = %v, want AbsRecord", resolved.Kind)
	}
	if resolved.Fields[fieldX].Kind != AbsInt {
		t.Errorf("field x = %v, want Int", resolved.Fields[fieldX].Kind)
	}
	if resolved.Fields[fieldY].Kind != AbsBool {
		t.Errorf("field y = %v, want Bool", resolved.Fields[fieldY].Kind)
	}
}

func TestSubstituteArityMismatch(t *testing.T) {
	reg := newFakeRegistry()
	pairID, _, _, _, _ := pairConstructor(reg)

	_, err := Substitute(reg, App(pairID, []AbstractType{Int}), errs.Dummy())
	if err == nil {
		t.Fatal("expected an arity error, got nil")
	}
	report, ok := errs.As(err)
	if !ok {
		t.Fatalf("error is not an *errs.Report: %v", err)
	}
	if report.Code != errs.TypeApplicationArity {
		t.Errorf("report.Code = %v, want %v", report.Code, errs.TypeApplicationArity)
	}
}

// TestSubstituteIdempotentOnGroundTypes is U2: applying substitution twice
// to a ground (already fully applied) type equals applying it once.
func TestSubstituteIdempotentOnGroundTypes(t *testing.T) {
	reg := newFakeRegistry()
	pairID, _, _, fieldX, fieldY := pairConstructor(reg)

	once, err := FullyResolve(reg, App(pairID, []AbstractType{Int, Bool}), errs.Dummy())
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	twice, err := Resolve(reg, once, errs.Dummy())
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	// once is already AbsRecord (not AbsApp), so Resolve is a no-op and
	// `twice` must be byte-identical in shape.
	if twice.Kind != once.Kind || twice.Fields[fieldX].Kind != once.Fields[fieldX].Kind ||
		twice.Fields[fieldY].Kind != once.Fields[fieldY].Kind {
		t.Errorf("substitution not idempotent on ground type: once=%+v twice=%+v", once, twice)
	}
}

func TestResolveTypesWidthSubsumption(t *testing.T) {
	reg := newFakeRegistry()
	pairID, _, _, _, _ := pairConstructor(reg)

	synth, err := Resolve(reg, App(pairID, []AbstractType{Int, Bool}), errs.Dummy())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	constraint := WidthConstraint(map[string]AbstractType{"x": Int})
	if err := ResolveTypes(reg, synth, constraint, errs.Dummy()); err != nil {
		t.Errorf("ResolveTypes() = %v, want nil (record satisfies width constraint)", err)
	}

	badConstraint := WidthConstraint(map[string]AbstractType{"z": Int})
	if err := ResolveTypes(reg, synth, badConstraint, errs.Dummy()); err == nil {
		t.Error("ResolveTypes() = nil, want error (missing field z)")
	}
}

// TestResolveTypesStrictNumericEquality verifies there is no implicit
// promotion between Int and Float (spec §4.5).
func TestResolveTypesStrictNumericEquality(t *testing.T) {
	reg := newFakeRegistry()
	if err := ResolveTypes(reg, Int, Float, errs.Dummy()); err == nil {
		t.Error("ResolveTypes(Int, Float) = nil, want a mismatch error")
	}
}

func TestWidthSubsumptionReflexiveAndTransitive(t *testing.T) {
	reg := newFakeRegistry()
	a := WidthConstraint(map[string]AbstractType{"x": Int, "y": Bool})
	b := WidthConstraint(map[string]AbstractType{"x": Int})
	c := WidthConstraint(map[string]AbstractType{})

	// Reflexive: a satisfies a.
	if err := ResolveTypes(reg, a, a, errs.Dummy()); err != nil {
		t.Errorf("reflexivity failed: %v", err)
	}
	// Transitive: a satisfies b, b satisfies c => a satisfies c.
	if err := ResolveTypes(reg, a, b, errs.Dummy()); err != nil {
		t.Fatalf("a should satisfy b: %v", err)
	}
	if err := ResolveTypes(reg, b, c, errs.Dummy()); err != nil {
		t.Fatalf("b should satisfy c: %v", err)
	}
	if err := ResolveTypes(reg, a, c, errs.Dummy()); err != nil {
		t.Errorf("transitivity failed: a should satisfy c: %v", err)
	}
}
