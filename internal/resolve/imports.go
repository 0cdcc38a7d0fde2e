package resolve

import (
	"fmt"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/universe"
)

// preludeModules names the builtin modules (internal/stdlib) every other
// module sees without an explicit `use` (spec §4.3 step 3). Access still
// goes through the qualified name ("math.max"), matching how every other
// `use` is stitched — this only saves writing the `use` line itself.
var preludeModules = map[string]bool{"math": true, "string": true, "conversion": true}

// stitchImports resolves mc's own `use` declarations, then auto-stitches
// any prelude module mc didn't already import by name, into root.
func stitchImports(st *state, mc *moduleCtx, root *scope.ScopedData) error {
	imported := make(map[string]bool, len(mc.uses))
	for _, use := range mc.uses {
		if err := stitchOne(st, mc, root, use, imported); err != nil {
			return err
		}
	}
	if !preludeModules[mc.name] {
		for name, other := range st.byName {
			if !preludeModules[name] || imported[name] {
				continue
			}
			stitchModule(st.u, root, other.id, name)
		}
	}
	return nil
}

func stitchOne(st *state, mc *moduleCtx, root *scope.ScopedData, use *ast.UseDecl, imported map[string]bool) error {
	path := dottedPath(use.Path)
	target, ok := st.byName[path]
	if !ok {
		return errs.New(errs.UnresolvedUses, errs.PhaseModuleResolve, use.SpanV,
			fmt.Sprintf("module %q not found", path), map[string]any{"path": path})
	}

	alias := use.Alias
	if alias == "" {
		alias = lastSegment(use.Path)
	}
	// "Duplicates under identical paths are a hard error" (spec §4.3 step
	// 4): the closest taxonomy leaf for a `use`-specific defect is
	// UnresolvedUses, since the taxonomy has no dedicated duplicate-import
	// code (DESIGN.md entry J).
	if imported[alias] {
		return errs.New(errs.UnresolvedUses, errs.PhaseModuleResolve, use.SpanV,
			fmt.Sprintf("module alias %q already imported", alias), map[string]any{"alias": alias})
	}
	imported[alias] = true
	stitchModule(st.u, root, target.id, alias)
	return nil
}

// stitchModule copies a module's own name->ID bindings into root under a
// dotted prefix, matching modAccessName's convention
// (internal/check/resolve.go) so the checker's qualified-lookup code needs
// no special case for an imported name.
func stitchModule(u *universe.Universe, root *scope.ScopedData, mod ids.ModuleID, prefix string) {
	for name, id := range u.TypeNames(mod) {
		root.DeclareTypeCons(prefix+"."+name, id)
	}
	for name, id := range u.FnNames(mod) {
		root.DeclareFn(prefix+"."+name, id)
	}
}
