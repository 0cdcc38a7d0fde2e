// Package resolve implements module resolution (spec §4.3): reserving every
// top-level identifier across the whole module set before any function body
// is analyzed, stitching `use` imports into each module's scope, building
// every type and function constructor, and finally running the per-function
// analysis pipeline (internal/check) over every user function.
//
// Grounded on original_source/smpl/src/analysis/mod_resolver.rs's
// header/body split: reservation happens in one sweep over all modules
// (pass 1) so that forward references — a function calling one declared
// later in its own module, or in a module that `use`s it back — are legal,
// then constructors and CFGs are built (pass 2), then bodies are checked
// (pass 3). Each pass is a hard barrier: nothing in pass 2 runs until every
// module has finished pass 1, and nothing in pass 3 runs until every module
// has finished pass 2 (spec §5 ordering items 1-2).
package resolve

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smpl-lang/smplc/internal/ast"
	"github.com/smpl-lang/smplc/internal/config"
	"github.com/smpl-lang/smplc/internal/errs"
	"github.com/smpl-lang/smplc/internal/ids"
	"github.com/smpl-lang/smplc/internal/scope"
	"github.com/smpl-lang/smplc/internal/universe"
)

// moduleCtx carries one module's pass-1 output into passes 2 and 3.
type moduleCtx struct {
	ast  *ast.Module
	id   ids.ModuleID
	name string

	ownTypeIDs map[string]ids.TypeID
	ownFnIDs   map[string]ids.FnID

	mainFn   ids.FnID
	hasMain  bool
	uses     []*ast.UseDecl

	scope *scope.ScopedData // populated by buildModule, read by analyzeModule
}

// state bundles everything pass 2/3 goroutines need to share, plus the
// mutex guarding the two maps the universe itself doesn't already guard
// (Metadata and Features), mirroring universe.Universe's own
// mutex-per-registrar pattern.
type state struct {
	mu         sync.Mutex
	u          *universe.Universe
	meta       *universe.Metadata
	features   map[string]bool
	byName     map[string]*moduleCtx
	primitives map[string]ids.TypeID
}

func (s *state) setFieldOrder(id ids.TypeID, order []ids.FieldID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.FieldOrder[id] = order
}

func (s *state) setOpaque(id ids.TypeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.Opaque[id] = true
}

func (s *state) setParamVars(fn ids.FnID, vars []ids.VarID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.ParamVars[fn] = vars
}

func (s *state) setBuiltin(fn ids.FnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.Builtin[fn] = true
}

func (s *state) setVariadic(fn ids.FnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.Variadic[fn] = true
}

func (s *state) setMain(fn ids.FnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta.Main = &fn
}

func (s *state) setFeature(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features[name] = true
}

// ResolveError aggregates every module- or function-level failure observed
// during one Run, so a hard blocker in one module never hides a report an
// independent module also produced (DESIGN.md entry J).
type ResolveError struct {
	set *errs.Set
}

func (e *ResolveError) Error() string {
	reports := e.set.Reports()
	if len(reports) == 1 {
		return reports[0].Error()
	}
	return fmt.Sprintf("%d analysis error(s), first: %s", len(reports), reports[0].Error())
}

// Reports returns every collected report, sorted by source position then code.
func (e *ResolveError) Reports() []*errs.Report { return e.set.Reports() }

// addErr records err into set. Every error this package produces is already
// a *errs.Report (spec §7); this only unwraps it.
func addErr(set *errs.Set, err error) {
	if err == nil {
		return
	}
	r, ok := errs.As(err)
	if !ok {
		panic(fmt.Sprintf("resolve: non-Report error: %v", err))
	}
	set.Add(r)
}

// Run resolves and analyzes every module in modules, producing one Program.
// modules may include builtin module sources the driver has prepended
// (internal/stdlib) ahead of user source modules, spec §6 — resolve treats
// all of them as ordinary parsed modules.
func Run(modules []*ast.Module, features map[string]bool) (*universe.Program, error) {
	prog := universe.NewProgram(features)
	st := &state{u: prog.Universe, meta: prog.Metadata, features: prog.Features, byName: make(map[string]*moduleCtx)}
	st.primitives = registerPrimitives(st.u)

	logger := log.New(log.Writer(), fmt.Sprintf("[smplc %s] ", prog.RunID), log.LstdFlags)
	if !config.IsTestMode {
		logger.Printf("resolving %d module(s)", len(modules))
	}

	errset := errs.NewSet()

	// Pass 1: sequential, since NewModuleID/NewTypeID/NewFnID order across
	// modules has no observable effect beyond ID numbering (spec's U8
	// "modulo ID numbering" property), but BindType/BindFn populate the
	// shared namespace every later module's `use` may need — simplest to
	// finish this before any goroutine starts.
	mods := make([]*moduleCtx, len(modules))
	for i, m := range modules {
		mc, err := reserveHeaders(st.u, m)
		if err != nil {
			addErr(errset, err)
			continue
		}
		mods[i] = mc
		st.byName[mc.name] = mc
	}

	if err := checkSingleMain(st, mods); err != nil {
		addErr(errset, err)
	}

	if !errset.Empty() {
		if !config.IsTestMode {
			logger.Printf("module resolution failed in pass 1: %d error(s)", len(errset.Reports()))
		}
		return prog, &ResolveError{errset}
	}

	// Pass 2: stitch imports, build every struct/opaque/function constructor
	// and CFG. A module only ever needs another module's reserved (pass-1)
	// name->ID bindings here, never its finished constructor, so every
	// module runs this pass independently and concurrently — no `use`-graph
	// layering is needed (SPEC_FULL.md §2).
	var eg2 errgroup.Group
	for _, mc := range mods {
		mc := mc
		if mc == nil {
			continue
		}
		eg2.Go(func() error {
			if err := buildModule(st, mc); err != nil {
				st.mu.Lock()
				addErr(errset, err)
				st.mu.Unlock()
			}
			return nil
		})
	}
	eg2.Wait()

	if !errset.Empty() {
		if !config.IsTestMode {
			logger.Printf("module resolution failed in pass 2: %d error(s)", len(errset.Reports()))
		}
		return prog, &ResolveError{errset}
	}

	if err := checkCycles(st, mods); err != nil {
		addErr(errset, err)
		return prog, &ResolveError{errset}
	}

	// Pass 3: analyze every user function's body. Independent once every
	// constructor is registered (spec §5 ordering item 2); same
	// errgroup-parallel, per-module error isolation as pass 2.
	var eg3 errgroup.Group
	for _, mc := range mods {
		mc := mc
		eg3.Go(func() error {
			if err := analyzeModule(st, mc); err != nil {
				st.mu.Lock()
				addErr(errset, err)
				st.mu.Unlock()
			}
			return nil
		})
	}
	eg3.Wait()

	if !errset.Empty() {
		if !config.IsTestMode {
			logger.Printf("module resolution failed in pass 3: %d error(s)", len(errset.Reports()))
		}
		return prog, &ResolveError{errset}
	}

	if !config.IsTestMode {
		logger.Printf("resolved %d module(s) cleanly", len(modules))
	}
	return prog, nil
}

// dottedPath joins a parsed Path's segment names, matching the convention
// resolveExpr's modAccessName already uses for qualified bindings
// (internal/check/resolve.go): "a.b.c".
func dottedPath(p ast.Path) string {
	out := ""
	for i, seg := range p.Segments {
		if i > 0 {
			out += "."
		}
		out += seg.Name
	}
	return out
}

func lastSegment(p ast.Path) string {
	return p.Segments[len(p.Segments)-1].Name
}
