package table

import (
	"time"

	"golang.org/x/text/collate"
)

// Clases de valor en el orden en que se agrupan al ordenar ascendente.
const (
	rankNumber = iota
	rankString
	rankTime
	rankBool
	rankOther
	rankNil
)

func rankOf(v any) int {
	switch x := v.(type) {
	case nil:
		return rankNil
	case string:
		return rankString
	case time.Time:
		return rankTime
	case bool:
		return rankBool
	default:
		if _, ok := number(x); ok {
			return rankNumber
		}
		return rankOther
	}
}

// compareValues compara dos escalares de una columna.
//
//   - dos strings: comparación según el locale (collator)
//   - dos números (enteros, flotantes, decimal): comparación numérica
//   - dos fechas: cronológica
//   - dos booleanos: false < true
//   - clases distintas: números < strings < fechas < booleanos < otros < nil
//
// Valores de tipo no reconocido son iguales entre sí y conservan el orden relativo.
func compareValues(a, b any, coll *collate.Collator) int {
	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankString:
		return coll.CompareString(a.(string), b.(string))
	case rankNumber:
		na, _ := number(a)
		nb, _ := number(b)
		return na.Cmp(nb)
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	}
	return 0
}
