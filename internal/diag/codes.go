package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnclosedDelimiter    Code = 2002
	SynExpectSemicolon      Code = 2003
	SynExpectIdentifier     Code = 2004
	SynExpectType           Code = 2005
	SynDuplicateAnnotation  Code = 2006
	SynDanglingAnnotation   Code = 2007
	SynExpectParameterList  Code = 2008
	SynUnexpectedTopLevel   Code = 2009
	SynMultiplePackageDecls Code = 2010

	// Семантические: построение модели
	SemaInfo             Code = 3000
	SemaError            Code = 3001
	SemaUnresolvedType   Code = 3002
	SemaDuplicateDecl    Code = 3003
	SemaBadSupertype     Code = 3004
	SemaInheritanceCycle Code = 3005
	SemaTypeArgCount     Code = 3006

	// Семантические: уточнение членов
	SemaSharedNotMember       Code = 3200
	SemaSharedBadKind         Code = 3201
	SemaModifierUnrefinable   Code = 3202
	SemaModifierNotMember     Code = 3203
	SemaModifierNotShared     Code = 3204
	SemaActualRefinesNothing  Code = 3205
	SemaFormalInConcreteClass Code = 3206
	SemaRefinedKindMismatch   Code = 3207
	SemaRefinedVariable       Code = 3208
	SemaRefinesWithoutActual  Code = 3209
	SemaRefinesClosedMember   Code = 3210
	SemaTypeParamCount        Code = 3211
	SemaTypeParamConstraint   Code = 3212
	SemaRefinedTypeMismatch   Code = 3213
	SemaParamCount            Code = 3214
	SemaParamTypeMismatch     Code = 3215
	SemaParamTypeUnknown      Code = 3216

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjVersionMismatch Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynDuplicateAnnotation:      "Duplicate annotation",
		SynDanglingAnnotation:       "Annotation without declaration",
		SynExpectParameterList:      "Expected parameter list",
		SynUnexpectedTopLevel:       "Unexpected top-level item",
		SynMultiplePackageDecls:     "Multiple package declarations",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaUnresolvedType:          "Unresolved type",
		SemaDuplicateDecl:           "Duplicate declaration",
		SemaBadSupertype:            "Invalid supertype",
		SemaInheritanceCycle:        "Inheritance cycle",
		SemaTypeArgCount:            "Wrong number of type arguments",
		SemaSharedNotMember:         "Shared declaration outside a member scope",
		SemaSharedBadKind:           "Shared declaration of unshareable kind",
		SemaModifierUnrefinable:     "Refinement annotation on unrefinable declaration",
		SemaModifierNotMember:       "Refinement annotation on non-member",
		SemaModifierNotShared:       "Refinement annotation on unshared member",
		SemaActualRefinesNothing:    "Actual member refines nothing",
		SemaFormalInConcreteClass:   "Formal member in concrete class",
		SemaRefinedKindMismatch:     "Refined declaration kind mismatch",
		SemaRefinedVariable:         "Non-variable attribute refines variable attribute",
		SemaRefinesWithoutActual:    "Refinement without actual",
		SemaRefinesClosedMember:     "Refinement of non-default, non-formal member",
		SemaTypeParamCount:          "Type parameter count mismatch",
		SemaTypeParamConstraint:     "Type parameter constraint mismatch",
		SemaRefinedTypeMismatch:     "Member type not assignable to refined type",
		SemaParamCount:              "Parameter count mismatch",
		SemaParamTypeMismatch:       "Parameter type differs from refined parameter",
		SemaParamTypeUnknown:        "Parameter type could not be determined",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Cache error",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid project manifest",
		ProjVersionMismatch:         "Tool version does not satisfy manifest",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
