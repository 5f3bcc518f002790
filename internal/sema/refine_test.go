package sema

import (
	"slices"
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/symbols"
	"refcheck/internal/testkit"
	"refcheck/internal/trace"
)

func runRefine(m *testkit.Model, roots []symbols.DeclID, tracer trace.Tracer) (*diag.Bag, Result) {
	bag := diag.NewBag(0)
	res := CheckRefinement(roots, Options{
		Reporter:  diag.BagReporter{Bag: bag},
		Table:     m.Table,
		Types:     m.Types,
		Hierarchy: m.Hierarchy,
		Tracer:    tracer,
	})
	return bag, res
}

// refine builds src, requires a clean model and runs the pass over it.
func refine(t *testing.T, src string) (*testkit.Model, *diag.Bag) {
	t.Helper()
	m := testkit.BuildOne(src)
	if m.Bag.Len() != 0 {
		t.Fatalf("model diagnostics: %s", testkit.Summary(m.Bag))
	}
	bag, _ := runRefine(m, m.Roots, nil)
	return m, bag
}

func expectMessages(t *testing.T, bag *diag.Bag, want ...string) {
	t.Helper()
	got := testkit.Messages(bag)
	if !slices.Equal(got, want) {
		t.Fatalf("diagnostics mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestLanguagePackageRefinesCleanly(t *testing.T) {
	m := testkit.Build()
	bag, res := runRefine(m, m.UnitDecls[0], nil)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(bag))
	}
	if res.Linked == 0 {
		t.Fatalf("expected refined links in the language package")
	}
	basic := m.Table.DirectMember(m.Language, "Basic")
	object := m.Table.DirectMember(m.Language, "Object")
	str := m.Table.Get(m.Table.DirectMember(basic, "string"))
	if str.Refined != m.Table.DirectMember(object, "string") {
		t.Fatalf("Basic.string refines %d", str.Refined)
	}
}

func TestRefinementDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "clean refinement",
			src: `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared actual default Integer size() => 1; }
`,
		},
		{
			name: "shared local",
			src: `
shared class C() {
    shared void m() {
        shared Integer x = 1;
    }
}
`,
			want: []string{"shared declaration is not a member of a class, interface, or package"},
		},
		{
			name: "actual refines nothing",
			src:  `shared class C() { shared actual Integer size() => 1; }`,
			want: []string{"actual member does not refine any inherited member"},
		},
		{
			name: "method refines value",
			src: `
shared interface I { shared formal Integer size; }
shared class C() satisfies I { shared actual String size() => ""; }
`,
			want: []string{"refined declaration is not a method"},
		},
		{
			name: "value refines method",
			src: `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared actual Integer size = 1; }
`,
			want: []string{"refined declaration is not an attribute"},
		},
		{
			name: "class refines method",
			src: `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared actual class size() {} }
`,
			want: []string{"refined declaration is not a class"},
		},
		{
			name: "getter refines value",
			src: `
shared interface I { shared formal Integer size; }
shared class C() satisfies I { shared actual Integer size => 1; }
`,
		},
		{
			name: "narrowed mutability",
			src: `
shared interface I { shared formal variable Integer count; }
shared class C() satisfies I { shared actual Integer count = 0; }
`,
			want: []string{"non-variable attribute refines a variable attribute"},
		},
		{
			name: "variable refines variable",
			src: `
shared interface I { shared formal variable Integer count; }
shared class C() satisfies I { shared actual variable Integer count = 0; }
`,
		},
		{
			name: "missing actual",
			src: `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared Integer size() => 1; }
`,
			want: []string{"non-actual member refines an inherited member"},
		},
		{
			name: "closed member",
			src: `
shared class B() { shared Integer size() => 0; }
shared class C() extends B() { shared actual Integer size() => 1; }
`,
			want: []string{"member refines a non-default, non-formal member"},
		},
		{
			name: "formal in concrete class",
			src:  `shared class C() { shared formal Integer size(); }`,
			want: []string{"formal member belongs to non-abstract, non-formal class"},
		},
		{
			name: "formal in abstract class",
			src:  `shared abstract class C() { shared formal Integer size(); }`,
		},
		{
			name: "formal in formal class",
			src:  `shared abstract class Outer() { shared formal class Inner() { shared formal Integer size(); } }`,
		},
		{
			name: "top-level actual",
			src:  `shared actual Integer x = 1;`,
			want: []string{"actual declaration is not a member of a class or interface"},
		},
		{
			name: "unshared top-level actual",
			src:  `actual Integer x = 1;`,
			want: []string{
				"actual declaration is not a member of a class or interface",
				"actual member is not shared",
			},
		},
		{
			name: "unshared member",
			src: `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { actual Integer size() => 1; }
`,
			want: []string{"actual member is not shared"},
		},
		{
			name: "interface member marked formal",
			src:  `shared interface Outer { formal interface Inner {} }`,
			want: []string{
				"formal declaration is not a getter, simple attribute, method, or class",
				"formal member is not shared",
			},
		},
		{
			name: "parameter with modifiers",
			src:  `shared class C() { shared void m(shared actual Integer n) {} }`,
			want: []string{
				"shared declaration is not a member of a class, interface, or package",
				"shared member is not a method, attribute, class, or interface",
				"actual declaration is not a getter, simple attribute, method, or class",
				"actual declaration is not a member of a class or interface",
			},
		},
		{
			name: "member type covariant",
			src: `
shared interface I { shared formal Object item; }
shared class C() satisfies I { shared actual String item => ""; }
`,
		},
		{
			name: "member type mismatch",
			src: `
shared interface I { shared formal Integer size; }
shared class C() satisfies I { shared actual String size => ""; }
`,
			want: []string{"member type must be assignable to refined member type"},
		},
		{
			name: "parameter count",
			src: `
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I { shared actual void run() {} }
`,
			want: []string{"member does not have the same number of parameters as the member it refines"},
		},
		{
			name: "parameter type not exact",
			src: `
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I { actual shared void run(String n) {} }
`,
			want: []string{"type of parameter n is different to type of corresponding parameter n of refined member"},
		},
		{
			name: "parameter type must not widen",
			src: `
shared interface I { shared formal void run(String s); }
shared class C() satisfies I { shared actual void run(Object o) {} }
`,
			want: []string{"type of parameter o is different to type of corresponding parameter s of refined member"},
		},
		{
			name: "substituted parameter types",
			src: `
shared interface Box<Item> {
    shared formal Item get(Integer index);
    shared formal void put(Item item);
}
shared class StringBox() satisfies Box<String> {
    shared actual String get(Integer index) => "";
    shared actual void put(String item) {}
}
`,
		},
		{
			name: "substituted parameter mismatch",
			src: `
shared interface Box<Item> { shared formal void put(Item item); }
shared class StringBox() satisfies Box<String> { shared actual void put(Integer item) {} }
`,
			want: []string{"type of parameter item is different to type of corresponding parameter item of refined member"},
		},
		{
			name: "generic method",
			src: `
shared interface I { shared formal T first<T>(Iterable<T> items); }
shared class C() satisfies I { shared actual X first<X>(Iterable<X> items) => items.first; }
`,
		},
		{
			name: "type parameter count",
			src: `
shared interface I { shared formal void m<A, B>(A a); }
shared class C() satisfies I { shared actual void m<A>(A a) {} }
`,
			want: []string{"member does not have the same number of type parameters as refined member"},
		},
		{
			name: "stronger constraint",
			src: `
shared interface I { shared formal void sort<T>(T a); }
shared class C() satisfies I { shared actual void sort<T>(T a) given T satisfies Comparable<T> {} }
`,
			want: []string{"member type parameter T has constraint which refined member type parameter T does not satisfy"},
		},
		{
			name: "same constraint",
			src: `
shared interface I { shared formal void sort<T>(T a) given T satisfies Comparable<T>; }
shared class C() satisfies I { shared actual void sort<U>(U a) given U satisfies Comparable<U> {} }
`,
		},
		{
			name: "weaker constraint",
			src: `
shared interface I { shared formal void sort<T>(T a) given T satisfies Comparable<T>; }
shared class C() satisfies I { shared actual void sort<U>(U a) {} }
`,
		},
		{
			name: "constraint through receiver arguments",
			src: `
shared interface I<E> { shared formal void m<T>(T t) given T satisfies Iterable<E>; }
shared class C() satisfies I<String> { shared actual void m<T>(T t) given T satisfies Iterable<String> {} }
`,
		},
		{
			name: "constraint against other receiver arguments",
			src: `
shared interface I<E> { shared formal void m<T>(T t) given T satisfies Iterable<E>; }
shared class C() satisfies I<String> { shared actual void m<T>(T t) given T satisfies Iterable<Integer> {} }
`,
			want: []string{"member type parameter T has constraint which refined member type parameter T does not satisfy"},
		},
		{
			name: "member class must extend refined class",
			src: `
shared abstract class Outer() { shared formal class Node(Integer id) {} }
shared class Impl() extends Outer() { shared actual class Node(Integer id) {} }
`,
			want: []string{"member type must be assignable to refined member type"},
		},
		{
			name: "member class extends refined class",
			src: `
shared abstract class Outer() { shared formal class Node(Integer id) {} }
shared class Impl() extends Outer() { shared actual class Node(Integer id) extends Outer.Node(id) {} }
`,
		},
		{
			name: "member class parameters",
			src: `
shared abstract class Outer() { shared formal class Node(Integer id) {} }
shared class Impl() extends Outer() { shared actual class Node(String id) {} }
`,
			want: []string{
				"member type must be assignable to refined member type",
				"type of parameter id is different to type of corresponding parameter id of refined member",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := refine(t, tt.src)
			expectMessages(t, bag, tt.want...)
		})
	}
}
