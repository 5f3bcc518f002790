package source

import "testing"

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cy", []byte("ab\ncd\n\nxyz"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{9, LineCol{4, 3}},
	}
	f := fs.Get(id)
	for _, c := range cases {
		if got := f.Position(c.off); got != c.want {
			t.Fatalf("Position(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 3}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.cy", []byte("first\nsecond\nthird")))
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("GetLine(4) = %q, want empty", got)
	}
}

func TestNormalizeInput(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("removeBOM = %q %v", out, had)
	}
	out, had = normalizeCRLF([]byte("a\r\nb\rc"))
	if !had || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q %v", out, had)
	}
}

func TestLatestShadowsEarlier(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("dir/../a.cy", []byte("x"))
	second := fs.AddVirtual("a.cy", []byte("y"))
	got, ok := fs.GetLatest("a.cy")
	if !ok || got != second || got == first {
		t.Fatalf("GetLatest = %d %v", got, ok)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("shared")
	b := in.Intern("shared")
	if a != b || a == NoStringID {
		t.Fatalf("intern ids %d %d", a, b)
	}
	if s := in.MustLookup(a); s != "shared" {
		t.Fatalf("lookup = %q", s)
	}
	if _, ok := in.Lookup(99); ok {
		t.Fatal("unexpected lookup hit")
	}
}
