package resolve

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/check"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/types"
)

// buildStruct builds decl's record TypeConstructor under its pass-1
// reserved TypeID (spec §4.3 step 5) and records its field order and
// opacity in Metadata.
func buildStruct(st *state, mc *moduleCtx, decl *ast.StructDecl) error {
	reservedID := mc.ownTypeIDs[decl.Name]

	generic, params, err := buildTypeParams(st.u.Counters, mc.scope, decl.TypeParams)
	if err != nil {
		return err
	}
	typeParamNames := make(map[string]bool, len(decl.TypeParams))
	for _, tp := range decl.TypeParams {
		typeParamNames[tp.Name] = true
	}

	seen := make(map[string]bool, len(decl.Fields))
	fields := make(map[ids.FieldID]types.AbstractType, len(decl.Fields))
	fieldMap := make(map[string]ids.FieldID, len(decl.Fields))
	fieldOrd := make([]ids.FieldID, 0, len(decl.Fields))

	for _, f := range decl.Fields {
		if seen[f.Name] {
			return errs.New(errs.TypeFieldNamingConflict, errs.PhaseModuleResolve, f.SpanV,
				fmt.Sprintf("field %q declared more than once", f.Name), map[string]any{"field": f.Name})
		}
		seen[f.Name] = true
		if err := checkTypeParamNameConflicts(typeParamNames, f.Name, f.SpanV, "field"); err != nil {
			return err
		}

		ft, err := check.ResolveAnnotation(generic, f.Type)
		if err != nil {
			return err
		}

		id := st.u.Counters.NewFieldID()
		fields[id] = ft
		fieldMap[f.Name] = id
		fieldOrd = append(fieldOrd, id)
	}

	tc := &types.TypeConstructor{
		Kind:     types.ConsRecord,
		RecordID: reservedID,
		Params:   params,
		Fields:   fields,
		FieldMap: fieldMap,
		FieldOrd: fieldOrd,
	}
	st.u.DefineType(reservedID, tc)
	st.setFieldOrder(reservedID, fieldOrd)
	if decl.IsOpaque() {
		st.setOpaque(reservedID)
	}
	return nil
}

// buildOpaque builds decl's bare opaque TypeConstructor: no fields are ever
// visible to user code, only its name and arity (spec §6, §9).
func buildOpaque(st *state, mc *moduleCtx, decl *ast.OpaqueDecl) error {
	reservedID := mc.ownTypeIDs[decl.Name]

	_, params, err := buildTypeParams(st.u.Counters, mc.scope, decl.TypeParams)
	if err != nil {
		return err
	}

	tc := &types.TypeConstructor{
		Kind:     types.ConsRecord,
		RecordID: reservedID,
		Params:   params,
		Fields:   map[ids.FieldID]types.AbstractType{},
		FieldMap: map[string]ids.FieldID{},
	}
	st.u.DefineType(reservedID, tc)
	st.setOpaque(reservedID)
	return nil
}
