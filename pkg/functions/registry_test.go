package functions

import "testing"

func TestCalleeDefIdentifier(t *testing.T) {
	if got := (CalleeDef{Name: "concat"}).Identifier(); got != "concat" {
		t.Errorf("expected source name, got %q", got)
	}
	if got := (CalleeDef{Name: "concat", Target: "strcat"}).Identifier(); got != "strcat" {
		t.Errorf("expected target name, got %q", got)
	}
}

func TestCalleeDefCheckArity(t *testing.T) {
	tests := []struct {
		def     CalleeDef
		n       int
		wantErr bool
	}{
		{CalleeDef{Name: "f", MinArgs: 0, MaxArgs: 0}, 0, false},
		{CalleeDef{Name: "f", MinArgs: 0, MaxArgs: 0}, 1, true},
		{CalleeDef{Name: "f", MinArgs: 2, MaxArgs: 2}, 1, true},
		{CalleeDef{Name: "f", MinArgs: 2, MaxArgs: 3}, 3, false},
		{CalleeDef{Name: "f", MinArgs: 1, MaxArgs: Variadic}, 100, false},
		{CalleeDef{Name: "f", MinArgs: 1, MaxArgs: Variadic}, 0, true},
	}
	for _, tt := range tests {
		err := tt.def.CheckArity(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.CheckArity(%d) error = %v, wantErr %v", tt.def, tt.n, err, tt.wantErr)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(CalleeDef{Name: "add", MaxArgs: Variadic})
	if r.Len() != 1 {
		t.Fatalf("expected 1 definition, got %d", r.Len())
	}
	if _, ok := r.Lookup("add"); !ok {
		t.Fatal("expected add to be registered")
	}
	if _, ok := r.Lookup("sub"); ok {
		t.Fatal("expected sub to be missing")
	}

	r.Register(CalleeDef{Name: "add", Target: "sum", MaxArgs: Variadic})
	if d, _ := r.Lookup("add"); d.Identifier() != "sum" {
		t.Errorf("expected replaced definition, got %+v", d)
	}
	if r.Len() != 1 {
		t.Errorf("replace must not grow the registry, got %d", r.Len())
	}

	if r.Strict() {
		t.Error("new registries are not strict")
	}
	r.SetStrict(true)
	if !r.Strict() {
		t.Error("expected strict registry")
	}
}

func TestRegistryGeneration(t *testing.T) {
	r := NewRegistry()
	g0 := r.Generation()

	r.Register(CalleeDef{Name: "add", MaxArgs: Variadic})
	g1 := r.Generation()
	if g1 == g0 {
		t.Fatal("expected Register to change the generation")
	}

	r.SetStrict(true)
	if r.Generation() == g1 {
		t.Fatal("expected SetStrict to change the generation")
	}

	r.Lookup("add")
	r.Strict()
	if g := r.Generation(); g != g1+1 {
		t.Fatalf("expected reads to keep generation %d, got %d", g1+1, g)
	}
}
