package table

import (
	"strconv"
	"strings"
)

// Parámetros de query reconocidos.
const (
	QuerySearch  = "q"
	QuerySort    = "sort"
	QueryDir     = "dir"
	QueryPage    = "page"
	QueryPerPage = "per_page"
	QueryToggle  = "toggle"
	maxPerPage   = 100
)

// ParseQuery construye el estado de vista desde parámetros de query.
// get suele ser c.Query de fiber. toggle=<key> aplica un clic de cabecera sobre el estado leído.
func ParseQuery(get func(string) string, perPage int) ViewState {
	vs := NewViewState(perPage)
	vs.Search = get(QuerySearch)
	vs.SortKey = strings.TrimSpace(get(QuerySort))
	if strings.EqualFold(get(QueryDir), string(Desc)) {
		vs.SortDir = Desc
	}
	if n, err := strconv.Atoi(get(QueryPage)); err == nil {
		vs.Page = n
	}
	if n, err := strconv.Atoi(get(QueryPerPage)); err == nil && n > 0 {
		vs.PerPage = min(n, maxPerPage)
	}
	if key := strings.TrimSpace(get(QueryToggle)); key != "" {
		vs = vs.ToggleSort(key)
	}
	return vs.normalized()
}
