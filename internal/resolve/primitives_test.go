package resolve

import (
	"testing"

	"github.com/smpl-lang/smplc/internal/types"
	"github.com/smpl-lang/smplc/internal/universe"
)

func TestRegisterPrimitives(t *testing.T) {
	u := universe.New()
	ids := registerPrimitives(u)

	if len(ids) != len(primitiveKinds) {
		t.Fatalf("len(ids) = %d, want %d", len(ids), len(primitiveKinds))
	}
	for name, wantKind := range primitiveKinds {
		id, ok := ids[name]
		if !ok {
			t.Fatalf("missing primitive %q", name)
		}
		tc, ok := u.Lookup(id)
		if !ok {
			t.Fatalf("primitive %q not registered in universe", name)
		}
		if tc.Kind != wantKind {
			t.Fatalf("primitive %q kind = %v, want %v", name, tc.Kind, wantKind)
		}
	}
}

func TestRegisterPrimitives_DistinctIDs(t *testing.T) {
	u := universe.New()
	ids := registerPrimitives(u)

	seen := make(map[uint64]string)
	for name, id := range ids {
		key := uint64(id)
		if other, ok := seen[key]; ok {
			t.Fatalf("primitives %q and %q share TypeID %v", name, other, id)
		}
		seen[key] = name
	}
}

func TestRegisterPrimitives_IntIsConsInt(t *testing.T) {
	u := universe.New()
	ids := registerPrimitives(u)
	tc, ok := u.Lookup(ids["Int"])
	if !ok || tc.Kind != types.ConsInt {
		t.Fatalf("Int primitive = %+v, ok=%v", tc, ok)
	}
}
