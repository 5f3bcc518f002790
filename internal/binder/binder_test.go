package binder_test

import (
	"strings"
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
	"refcheck/internal/testkit"
	"refcheck/internal/types"
)

func TestLanguagePackageBindsCleanly(t *testing.T) {
	m := testkit.Build()
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	if !m.Language.IsValid() {
		t.Fatalf("language package not registered")
	}
	for _, name := range []string{"Anything", "Object", "Basic", "Integer", "String", "Iterable", "Sequence"} {
		if !m.Table.DirectMember(m.Language, name).IsValid() {
			t.Fatalf("language package lacks %s", name)
		}
	}
	if !m.Types.Anything().IsValid() {
		t.Fatalf("Anything not registered with the interner")
	}
}

func TestSpanInvariants(t *testing.T) {
	m := testkit.BuildOne(`
shared class C() {
    shared String name => "c";
}
`)
	for i, u := range m.Units {
		if err := testkit.CheckSpanInvariants(u.AST, u.File, m.Files.Get(source.FileID(i))); err != nil {
			t.Fatalf("unit %d: span invariants: %v", i, err)
		}
	}
}

func TestDeclarationsAndOwnership(t *testing.T) {
	m := testkit.BuildOne(`
package demo;
shared interface Box<Item> {
    shared formal Item get(Integer index);
}
shared class Holder() satisfies Box<String> {
    shared actual String get(Integer index) {
        Integer local = 1;
        return "";
    }
}
`)
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	pkg, ok := m.Table.LookupPackage("demo")
	if !ok {
		t.Fatalf("package demo missing")
	}
	box := m.MustLookup("Box")
	if got := m.Table.Get(box).Container; got != pkg {
		t.Fatalf("Box container = %d, want package %d", got, pkg)
	}
	get := m.Table.Get(m.MustLookup("Box.get"))
	if get.Kind != symbols.KindMethod || !get.IsFormal() || !get.IsShared() {
		t.Fatalf("Box.get = %v %v", get.Kind, get.Flags.Strings())
	}
	if len(get.Params) != 1 || !m.Table.Get(get.Params[0]).HasTypeNode {
		t.Fatalf("Box.get params not modelled")
	}
	local := m.Table.Get(m.MustLookup("Holder.get.local"))
	if local.Kind != symbols.KindValue || m.Table.Get(local.Container).Name != "get" {
		t.Fatalf("local not owned by its method")
	}
	if got := m.Table.QualifiedName(m.MustLookup("Holder.get")); got != "demo.Holder.get" {
		t.Fatalf("qualified name = %q", got)
	}
}

func TestSupertypesAndDeclaredTypes(t *testing.T) {
	m := testkit.BuildOne(`
shared interface Box<Item> {
    shared formal Item get(Integer index);
}
shared class Holder() satisfies Box<String> {
    shared actual String get(Integer index) => "";
}
`)
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	holder := m.MustLookup("Holder")
	supers := m.Types.Supertypes(holder)
	var rendered []string
	for _, s := range supers {
		rendered = append(rendered, m.Types.String(s))
	}
	if got := strings.Join(rendered, ", "); got != "Basic, Box<String>" {
		t.Fatalf("supertypes = %q", got)
	}
	item := m.MustLookup("Box.Item")
	if got := m.Types.Declared(m.MustLookup("Box.get")); got != m.Types.TypeParam(item) {
		t.Fatalf("Box.get declared = %s", m.Types.String(got))
	}
	ref := m.Types.TypedReference(m.Types.DeclType(holder), m.MustLookup("Box.get"), nil)
	if got := m.Types.String(ref.Type); got != "String" {
		t.Fatalf("Box.get through Holder = %s", got)
	}
}

func TestQualifiedMemberType(t *testing.T) {
	m := testkit.BuildOne(`
shared abstract class Outer() { shared formal class Node(Integer id) {} }
shared class Impl() extends Outer() {
    shared actual class Node(Integer id) extends Outer.Node(id) {}
    shared Node own;
    shared Outer.Node inherited;
}
`)
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	outerNode := m.Types.DeclType(m.MustLookup("Outer.Node"))
	implNode := m.Types.DeclType(m.MustLookup("Impl.Node"))
	if supers := m.Types.Supertypes(m.MustLookup("Impl.Node")); len(supers) != 1 || supers[0] != outerNode {
		t.Fatalf("Impl.Node supertypes = %v", supers)
	}
	if got := m.Types.Declared(m.MustLookup("Impl.own")); got != implNode {
		t.Fatalf("unqualified Node should name Impl.Node, got %s", m.Types.String(got))
	}
	if got := m.Types.Declared(m.MustLookup("Impl.inherited")); got != outerNode {
		t.Fatalf("Outer.Node should name the inherited class, got %s", m.Types.String(got))
	}
	if !m.Types.Assignable(implNode, outerNode) {
		t.Fatalf("Impl.Node must be assignable to Outer.Node")
	}
}

func TestVoidMethodHasAnythingType(t *testing.T) {
	m := testkit.BuildOne(`shared interface I { shared formal void run(); }`)
	run := m.MustLookup("I.run")
	if got := m.Types.String(m.Types.Declared(run)); got != "Anything" {
		t.Fatalf("void type = %s", got)
	}
}

func TestConstraintsBecomeBounds(t *testing.T) {
	m := testkit.BuildOne(`
shared interface Sorter {
    shared formal void sort<T>(T first) given T satisfies Comparable<T>;
}
`)
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	tp := m.MustLookup("Sorter.sort.T")
	bounds := m.Types.Bounds(tp)
	if len(bounds) != 1 || m.Types.String(bounds[0]) != "Comparable<T>" {
		t.Fatalf("bounds = %v", bounds)
	}
}

func TestBinderDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{
			name: "unresolved",
			src:  `shared class C() { shared Missing m; }`,
			code: diag.SemaUnresolvedType,
			msg:  "cannot find type 'Missing'",
		},
		{
			name: "arg count",
			src:  `shared class C() { shared Iterable<String, String> m; }`,
			code: diag.SemaTypeArgCount,
			msg:  "type 'Iterable' expects 1 type argument(s), got 2",
		},
		{
			name: "not generic",
			src:  `shared class C() { shared Integer<String> m; }`,
			code: diag.SemaTypeArgCount,
			msg:  "type 'Integer' is not generic",
		},
		{
			name: "duplicate",
			src:  `shared class C() { shared Integer m; shared Integer m; }`,
			code: diag.SemaDuplicateDecl,
			msg:  "duplicate declaration 'm'",
		},
		{
			name: "duplicate parameter",
			src:  `shared class C() { shared void m(Integer a, String a) {} }`,
			code: diag.SemaDuplicateDecl,
			msg:  "duplicate parameter 'a'",
		},
		{
			name: "extends interface",
			src:  `shared interface I {} shared class C() extends I() {}`,
			code: diag.SemaBadSupertype,
			msg:  "'C' must extend a class, 'I' is not one",
		},
		{
			name: "satisfies class",
			src:  `shared class B() {} shared class C() satisfies B {}`,
			code: diag.SemaBadSupertype,
			msg:  "'C' must satisfy an interface, 'B' is not one",
		},
		{
			name: "cycle",
			src:  `shared interface A satisfies B {} shared interface B satisfies A {}`,
			code: diag.SemaInheritanceCycle,
			msg:  "'B' inherits from itself through 'A'",
		},
		{
			name: "no member type",
			src:  `shared class O() { shared void Node() {} } shared class C() { shared O.Node m; }`,
			code: diag.SemaUnresolvedType,
			msg:  "type 'O' has no member type 'Node'",
		},
		{
			name: "type parameter qualifier",
			src:  `shared class C<T>() { shared T.Node m; }`,
			code: diag.SemaUnresolvedType,
			msg:  "type 'T' has no member types",
		},
		{
			name: "given unknown",
			src:  `shared interface I { shared formal void m<T>() given U satisfies String; }`,
			code: diag.SemaUnresolvedType,
			msg:  "'U' is not a type parameter of 'm'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testkit.BuildOne(tt.src)
			items := m.Bag.Items()
			if len(items) != 1 {
				t.Fatalf("want one diagnostic, got %s", testkit.Summary(m.Bag))
			}
			if items[0].Code != tt.code || items[0].Message != tt.msg {
				t.Fatalf("got [%s] %q, want [%s] %q", items[0].Code.ID(), items[0].Message, tt.code.ID(), tt.msg)
			}
		})
	}
}

func TestUnresolvedParameterTypeStaysUnknown(t *testing.T) {
	m := testkit.BuildOne(`shared class C() { shared void m(Missing a) {} }`)
	if got := m.Types.Declared(m.MustLookup("C.m.a")); got != types.NoTypeID {
		t.Fatalf("declared = %s, want unknown", m.Types.String(got))
	}
	if !m.Table.Get(m.MustLookup("C.m.a")).HasTypeNode {
		t.Fatalf("type node should be recorded even when unresolved")
	}
}

func TestFilesShareDefaultPackage(t *testing.T) {
	m := testkit.Build(
		testkit.Source{Path: "a.cy", Text: `shared interface I { shared formal Integer size(); }`},
		testkit.Source{Path: "b.cy", Text: `shared class C() satisfies I { shared actual Integer size() => 1; }`},
	)
	if m.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(m.Bag))
	}
	if len(m.UnitDecls) != 3 {
		t.Fatalf("unit decls = %d, want 3", len(m.UnitDecls))
	}
	c := m.MustLookup("C")
	if got := m.Types.String(m.Types.Supertypes(c)[1]); got != "I" {
		t.Fatalf("C satisfies %s", got)
	}
}
