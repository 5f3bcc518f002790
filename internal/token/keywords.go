package token

var keywords = map[string]Kind{
	"package":   KwPackage,
	"class":     KwClass,
	"interface": KwInterface,
	"void":      KwVoid,
	"extends":   KwExtends,
	"satisfies": KwSatisfies,
	"given":     KwGiven,
	"return":    KwReturn,
	"shared":    KwShared,
	"formal":    KwFormal,
	"default":   KwDefault,
	"actual":    KwActual,
	"variable":  KwVariable,
	"abstract":  KwAbstract,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
