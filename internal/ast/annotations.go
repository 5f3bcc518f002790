package ast

import (
	"strings"

	"refcheck/internal/source"
)

// Annotations is the set of declaration annotations written in source.
type Annotations uint8

const (
	AnnShared Annotations = 1 << iota
	AnnFormal
	AnnDefault
	AnnActual
	AnnVariable
	AnnAbstract
)

func (a Annotations) Has(flag Annotations) bool {
	return a&flag != 0
}

var annotationNames = []struct {
	flag Annotations
	name string
}{
	{AnnShared, "shared"},
	{AnnFormal, "formal"},
	{AnnDefault, "default"},
	{AnnActual, "actual"},
	{AnnVariable, "variable"},
	{AnnAbstract, "abstract"},
}

func (a Annotations) String() string {
	parts := make([]string, 0, 6)
	for _, an := range annotationNames {
		if a.Has(an.flag) {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, " ")
}

// AnnotationList keeps both the combined set and the span covering all annotations.
type AnnotationList struct {
	Set  Annotations
	Span source.Span
}
