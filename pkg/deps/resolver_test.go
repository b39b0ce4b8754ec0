package deps

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	errs "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
)

type mockSource struct {
	packages map[string][]string
	failing  map[string]error
	queries  []string
}

func (m *mockSource) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	m.queries = append(m.queries, name)
	if err, ok := m.failing[name]; ok {
		return nil, err
	}
	if deps, ok := m.packages[name]; ok {
		return deps, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func resolve(t *testing.T, src Source, start string, opts Options) *graph.Graph {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, err := NewResolver(src).Resolve(ctx, start, opts)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g == nil {
		t.Fatal("Resolve() returned nil graph")
	}
	return g
}

func build(entries map[string][]string) *graph.Graph {
	g := graph.New()
	for k, v := range entries {
		g.Set(k, v)
	}
	return g
}

func TestResolveScenario(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"app":    {"libfoo", "libbar"},
		"libfoo": {},
		"libbar": {"libfoo"},
	}}

	g := resolve(t, src, "app", Options{MaxDepth: 2})

	want := build(map[string][]string{
		"app":    {"libfoo", "libbar"},
		"libfoo": nil,
		"libbar": {"libfoo"},
	})
	if !g.Equal(want) {
		t.Errorf("graph = %v, want %v", g.Edges(), want.Edges())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestResolveCycle(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}}

	g := resolve(t, src, "A", Options{MaxDepth: 5})

	want := build(map[string][]string{"A": {"B"}, "B": {"A"}})
	if !g.Equal(want) {
		t.Errorf("graph = %v, want %v", g.Edges(), want.Edges())
	}
	if len(src.queries) != 2 {
		t.Errorf("queries = %v, want exactly 2", src.queries)
	}
}

func TestResolveSelfLoop(t *testing.T) {
	src := &mockSource{packages: map[string][]string{"A": {"A"}}}

	g := resolve(t, src, "A", Options{MaxDepth: 10})

	if g.Len() != 1 || g.EdgeCount() != 1 {
		t.Errorf("Len() = %d, EdgeCount() = %d, want 1, 1", g.Len(), g.EdgeCount())
	}
}

func TestResolveDepthOne(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"root":  {"dep-a", "dep-b"},
		"dep-a": {"dep-c"},
		"dep-b": {},
	}}

	g := resolve(t, src, "root", Options{MaxDepth: 1})

	if keys := g.Keys(); !slices.Equal(keys, []string{"root"}) {
		t.Errorf("Keys() = %v, want [root]", keys)
	}
	if deps := g.Dependencies("root"); !slices.Equal(deps, []string{"dep-a", "dep-b"}) {
		t.Errorf("Dependencies(root) = %v, want [dep-a dep-b]", deps)
	}
	if !slices.Equal(src.queries, []string{"root"}) {
		t.Errorf("queries = %v, want [root]", src.queries)
	}
}

func TestResolveDepthBound(t *testing.T) {
	// chain: p1 -> p2 -> ... -> p6
	pkgs := map[string][]string{}
	for i := 1; i < 6; i++ {
		pkgs[fmt.Sprintf("p%d", i)] = []string{fmt.Sprintf("p%d", i+1)}
	}
	pkgs["p6"] = nil

	tests := []struct {
		maxDepth int
		wantKeys int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{6, 6},
		{100, 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("depth=%d", tt.maxDepth), func(t *testing.T) {
			g := resolve(t, &mockSource{packages: pkgs}, "p1", Options{MaxDepth: tt.maxDepth})
			if g.Len() != tt.wantKeys {
				t.Errorf("Len() = %d, want %d", g.Len(), tt.wantKeys)
			}
		})
	}
}

func TestResolveNonPositiveDepth(t *testing.T) {
	for _, depth := range []int{0, -1} {
		t.Run(fmt.Sprintf("depth=%d", depth), func(t *testing.T) {
			src := &mockSource{packages: map[string][]string{"root": {"a"}}}
			g := resolve(t, src, "root", Options{MaxDepth: depth})
			if !g.IsEmpty() {
				t.Errorf("Len() = %d, want 0", g.Len())
			}
			if len(src.queries) != 0 {
				t.Errorf("queries = %v, want none", src.queries)
			}
		})
	}
}

func TestResolveEmptyDependencySetPreserved(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"root": {"leaf"},
		"leaf": {},
	}}

	g := resolve(t, src, "root", Options{MaxDepth: 3})

	if !g.Has("leaf") {
		t.Fatal("Has(leaf) = false, want true")
	}
	if deps := g.Dependencies("leaf"); len(deps) != 0 {
		t.Errorf("Dependencies(leaf) = %v, want empty", deps)
	}
}

func TestResolveDuplicateDependencies(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"root": {"a", "a", "b"},
		"a":    nil,
		"b":    nil,
	}}

	g := resolve(t, src, "root", Options{MaxDepth: 2})

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if len(src.queries) != 3 {
		t.Errorf("queries = %v, want 3", src.queries)
	}
}

func TestResolveDepthFirstOrder(t *testing.T) {
	src := &mockSource{packages: map[string][]string{
		"root": {"a", "b"},
		"a":    {"c"},
		"b":    {"c"},
		"c":    {"d"},
		"d":    nil,
	}}

	resolve(t, src, "root", Options{MaxDepth: 10})

	want := []string{"root", "a", "c", "d", "b"}
	if !slices.Equal(src.queries, want) {
		t.Errorf("queries = %v, want %v", src.queries, want)
	}
}

func TestResolveVisitedAtDeeperLevelStaysUnexpanded(t *testing.T) {
	// "shared" is reached first through a at depth 3 (the bound), so it is
	// expanded there; reaching it again from root at depth 2 is a no-op.
	src := &mockSource{packages: map[string][]string{
		"root":   {"a", "shared"},
		"a":      {"shared"},
		"shared": {"deep"},
		"deep":   nil,
	}}

	g := resolve(t, src, "root", Options{MaxDepth: 3})

	if !g.Has("shared") {
		t.Fatal("Has(shared) = false, want true")
	}
	if g.Has("deep") {
		t.Error("Has(deep) = true, want false")
	}
}

func TestResolveFailedDependencyDegrades(t *testing.T) {
	src := &mockSource{
		packages: map[string][]string{
			"root": {"broken", "ok"},
			"ok":   {"leaf"},
			"leaf": nil,
		},
		failing: map[string]error{"broken": fmt.Errorf("%w: exit status 100", ErrQuery)},
	}

	var warnings []string
	g := resolve(t, src, "root", Options{
		MaxDepth: 5,
		Logger:   func(f string, args ...any) { warnings = append(warnings, fmt.Sprintf(f, args...)) },
	})

	if !g.Has("broken") {
		t.Error("Has(broken) = false, want true")
	}
	if deps := g.Dependencies("broken"); len(deps) != 0 {
		t.Errorf("Dependencies(broken) = %v, want empty", deps)
	}
	if !g.Has("leaf") {
		t.Error("traversal stopped after failure, leaf missing")
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1", warnings)
	}
}

func TestResolveUnknownDependencyDegrades(t *testing.T) {
	src := &mockSource{packages: map[string][]string{"root": {"ghost"}}}

	g := resolve(t, src, "root", Options{MaxDepth: 2})

	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestResolveRootFailure(t *testing.T) {
	src := &mockSource{failing: map[string]error{"root": fmt.Errorf("%w: boom", ErrQuery)}}

	g, err := NewResolver(src).Resolve(context.Background(), "root", Options{MaxDepth: 3})
	if err == nil {
		t.Fatal("Resolve() error = nil, want error")
	}
	if g != nil {
		t.Error("Resolve() returned graph alongside error")
	}
	if !errs.Is(err, errs.ErrCodeQueryFailed) {
		t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeQueryFailed)
	}
	if !errors.Is(err, ErrQuery) {
		t.Error("errors.Is(err, ErrQuery) = false, want true")
	}
}

func TestResolveRootNotFound(t *testing.T) {
	_, err := NewResolver(&mockSource{}).Resolve(context.Background(), "nope", Options{MaxDepth: 3})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, err = %v", err)
	}
}

func TestResolveEmptyStart(t *testing.T) {
	_, err := NewResolver(&mockSource{}).Resolve(context.Background(), "", Options{MaxDepth: 3})
	if !errs.Is(err, errs.ErrCodeInvalidPackage) {
		t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidPackage)
	}
}

func TestResolveQueryTimeout(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, name string) ([]string, error) {
		switch name {
		case "root":
			return []string{"slow", "fast"}, nil
		case "slow":
			<-ctx.Done()
			return nil, fmt.Errorf("%w: %v", ErrQuery, ctx.Err())
		default:
			return nil, nil
		}
	})

	g := resolve(t, src, "root", Options{MaxDepth: 2, QueryTimeout: 20 * time.Millisecond})

	if !g.Has("slow") || !g.Has("fast") {
		t.Errorf("Keys() = %v, want root, slow and fast", g.Keys())
	}
	if deps := g.Dependencies("slow"); len(deps) != 0 {
		t.Errorf("Dependencies(slow) = %v, want empty", deps)
	}
}

// loadingSource needs a slow one-time load before it can answer.
type loadingSource struct {
	mockSource
	delay   time.Duration
	loadErr error
	loads   int
	loaded  bool
}

func (l *loadingSource) Load(ctx context.Context) error {
	l.loads++
	if l.loadErr != nil {
		return l.loadErr
	}
	select {
	case <-time.After(l.delay):
		l.loaded = true
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *loadingSource) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	if !l.loaded {
		return nil, fmt.Errorf("%w: not loaded", ErrQuery)
	}
	return l.mockSource.DirectDependencies(ctx, name)
}

func TestResolveLoadOutsideQueryTimeout(t *testing.T) {
	src := &loadingSource{
		mockSource: mockSource{packages: map[string][]string{"root": {"a"}, "a": nil}},
		delay:      50 * time.Millisecond,
	}

	g := resolve(t, src, "root", Options{MaxDepth: 3, QueryTimeout: 5 * time.Millisecond})

	if want := build(map[string][]string{"root": {"a"}, "a": nil}); !g.Equal(want) {
		t.Errorf("Edges() = %v, want %v", g.Edges(), want.Edges())
	}
	if src.loads != 1 {
		t.Errorf("loads = %d, want 1", src.loads)
	}
}

func TestResolveLoadFailure(t *testing.T) {
	tests := []struct {
		name    string
		loadErr error
		code    errs.Code
	}{
		{
			name:    "coded",
			loadErr: errs.New(errs.ErrCodeNetwork, "status 502"),
			code:    errs.ErrCodeNetwork,
		},
		{
			name:    "plain",
			loadErr: errors.New("boom"),
			code:    errs.ErrCodeQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &loadingSource{loadErr: tt.loadErr}
			_, err := NewResolver(src).Resolve(context.Background(), "root", Options{MaxDepth: 1})
			if !errs.Is(err, tt.code) {
				t.Errorf("Resolve() error = %v, want code %s", err, tt.code)
			}
			if len(src.queries) != 0 {
				t.Errorf("queries = %v, want none after failed load", src.queries)
			}
		})
	}
}

func TestResolveNoLoadForZeroDepth(t *testing.T) {
	src := &loadingSource{loadErr: errors.New("should not load")}
	g := resolve(t, src, "root", Options{MaxDepth: 0})
	if !g.IsEmpty() || src.loads != 0 {
		t.Errorf("Len() = %d, loads = %d, want empty graph and no load", g.Len(), src.loads)
	}
}

func TestResolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := SourceFunc(func(_ context.Context, name string) ([]string, error) {
		if name == "root" {
			cancel()
			return []string{"a"}, nil
		}
		return nil, nil
	})

	_, err := NewResolver(src).Resolve(ctx, "root", Options{MaxDepth: 3})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestResolveOnQuery(t *testing.T) {
	src := &mockSource{
		packages: map[string][]string{"root": {"a", "b"}, "a": nil},
		failing:  map[string]error{"b": ErrQuery},
	}

	var events []QueryEvent
	resolve(t, src, "root", Options{
		MaxDepth: 2,
		OnQuery:  func(e QueryEvent) { events = append(events, e) },
	})

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Name != "root" || events[0].Depth != 1 {
		t.Errorf("events[0] = %+v, want root at depth 1", events[0])
	}
	if events[2].Name != "b" || events[2].Err == nil || events[2].Depth != 2 {
		t.Errorf("events[2] = %+v, want failed b at depth 2", events[2])
	}
}

func TestResolverReuse(t *testing.T) {
	src := &mockSource{packages: map[string][]string{"root": {"a"}, "a": nil}}
	r := NewResolver(src)

	for i := range 2 {
		g, err := r.Resolve(context.Background(), "root", Options{MaxDepth: 2})
		if err != nil {
			t.Fatalf("run %d: Resolve() error: %v", i, err)
		}
		if g.Len() != 2 {
			t.Errorf("run %d: Len() = %d, want 2", i, g.Len())
		}
	}
}

func TestWithDefaults(t *testing.T) {
	opts := Options{QueryTimeout: -time.Second}.WithDefaults()

	if opts.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", opts.MaxDepth)
	}
	if opts.QueryTimeout != 0 {
		t.Errorf("QueryTimeout = %v, want 0", opts.QueryTimeout)
	}
	if opts.Logger == nil || opts.OnQuery == nil {
		t.Error("WithDefaults() left nil callbacks")
	}
}
