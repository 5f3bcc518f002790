package source

import (
	"fmt"

	"fortio.org/safecast"
)

// StringID is a stable handle for an interned identifier.
type StringID uint32

// NoStringID is the reserved empty handle.
const NoStringID StringID = 0

// Interner deduplicates identifier text. ID 0 is always the empty string.
type Interner struct {
	byID []string
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID: []string{""},
		ids:  map[string]StringID{"": NoStringID},
	}
}

func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	in.byID = append(in.byID, s)
	in.ids[s] = id
	return id
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics on unknown ids.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown StringID %d", id))
	}
	return s
}

func (in *Interner) Len() int {
	return len(in.byID)
}
