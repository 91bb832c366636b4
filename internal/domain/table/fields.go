package table

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Fielder permite a un tipo de fila exponer sus campos sin reflexión.
type Fielder interface {
	TableFields() map[string]any
}

type fieldInfo struct {
	name  string
	index []int
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// Fields devuelve los campos escalares de una fila indexados por su nombre JSON.
//
// Los campos exportados de structs (incluidos los promovidos por embedding) se
// leen por reflexión; punteros e interfaces se desreferencian y un nil queda como
// valor nil. Structs anidados, slices y maps se ignoran, salvo time.Time,
// decimal.Decimal y tipos que implementan fmt.Stringer, que cuentan como escalares.
func Fields(row any) map[string]any {
	if f, ok := row.(Fielder); ok {
		return f.TableFields()
	}
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			if s, ok := scalar(iter.Value()); ok {
				out[iter.Key().String()] = s
			}
		}
		return out
	case reflect.Struct:
		infos := structFields(v.Type())
		out := make(map[string]any, len(infos))
		for _, fi := range infos {
			fv, err := v.FieldByIndexErr(fi.index)
			if err != nil {
				continue
			}
			if s, ok := scalar(fv); ok {
				out[fi.name] = s
			}
		}
		return out
	}
	return nil
}

// Value devuelve el campo key de la fila (nil si no existe o es nil).
func Value(row any, key string) any {
	if f, ok := row.(Fielder); ok {
		return f.TableFields()[key]
	}
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		s, _ := scalar(mv)
		return s
	case reflect.Struct:
		for _, fi := range structFields(v.Type()) {
			if fi.name != key {
				continue
			}
			fv, err := v.FieldByIndexErr(fi.index)
			if err != nil {
				return nil
			}
			s, _ := scalar(fv)
			return s
		}
	}
	return nil
}

func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var infos []fieldInfo
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && indirectKind(f.Type) == reflect.Struct {
			continue // sus campos ya aparecen promovidos
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		infos = append(infos, fieldInfo{name: name, index: f.Index})
	}
	fieldCache.Store(t, infos)
	return infos
}

func indirectKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind()
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	stringerT   = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// scalar normaliza un valor reflejado: string, bool, int64, uint64, float64,
// time.Time, decimal.Decimal o fmt.Stringer. ok=false para valores no escalares.
func scalar(v reflect.Value) (any, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, true
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return v.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Struct:
		switch {
		case v.Type() == timeType:
			return v.Interface().(time.Time), true
		case v.Type() == decimalType:
			return v.Interface().(decimal.Decimal), true
		case v.Type().Implements(stringerT):
			return v.Interface(), true
		}
	}
	return nil, false
}

// Stringify representación textual de un valor escalar, usada en búsqueda y celdas.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	case decimal.Decimal:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// number convierte un escalar numérico a decimal; ok=false si no es número.
func number(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case decimal.Decimal:
		return x, true
	}
	return decimal.Zero, false
}
