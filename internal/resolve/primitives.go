package resolve

import (
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/universe"
	"github.com/smpl-lang/smplc/internal/types"
)

// primitiveKinds names the zero-arity ground types every module sees
// without a `use` or declaration of its own — annotation resolution
// (internal/check.ResolveAnnotation) reaches them the same way it reaches
// any other named type, through a LookupTypeCons hit in scope, so they need
// a registered TypeID before any module's fields or parameters can
// reference "Int", "Float", "String", "Bool", or "Unit" (spec §4.5).
var primitiveKinds = map[string]types.ConstructorKind{
	"Int":    types.ConsInt,
	"Float":  types.ConsFloat,
	"String": types.ConsString,
	"Bool":   types.ConsBool,
	"Unit":   types.ConsUnit,
}

// registerPrimitives mints one TypeID per primitive name, once per Run.
func registerPrimitives(u *universe.Universe) map[string]ids.TypeID {
	out := make(map[string]ids.TypeID, len(primitiveKinds))
	for name, kind := range primitiveKinds {
		out[name] = u.Register(&types.TypeConstructor{Kind: kind})
	}
	return out
}
