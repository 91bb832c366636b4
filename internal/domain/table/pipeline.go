package table

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options configuración del pipeline.
type Options struct {
	Searchable bool
	Pagination bool
	Locale     language.Tag // collation de columnas de texto; language.Und = orden raíz Unicode
}

// DefaultOptions búsqueda y paginación activas.
func DefaultOptions() Options {
	return Options{Searchable: true, Pagination: true, Locale: language.Und}
}

// Result salida del pipeline filtrar → ordenar → paginar.
type Result[T any] struct {
	Rows       []T       // ventana de la página actual (todas si no hay paginación)
	Total      int       // filas tras filtrar
	TotalPages int       // max(1, ceil(Total/PerPage))
	View       ViewState // estado normalizado con la página acotada
}

// From índice 1-based de la primera fila mostrada (0 si no hay filas).
func (r Result[T]) From() int {
	if r.Total == 0 {
		return 0
	}
	return (r.View.Page-1)*r.View.PerPage + 1
}

// To índice 1-based de la última fila mostrada.
func (r Result[T]) To() int {
	return min(r.View.Page*r.View.PerPage, r.Total)
}

// Apply ejecuta las tres etapas en orden fijo sin mutar rows.
func Apply[T any](rows []T, vs ViewState, opts Options) Result[T] {
	vs = vs.normalized()

	filtered := rows
	if opts.Searchable {
		filtered = Filter(rows, vs.Search)
	}
	sorted := filtered
	if vs.SortKey != "" {
		sorted = Sort(filtered, vs.SortKey, vs.SortDir, opts.Locale)
	}

	total := len(sorted)
	pages := TotalPages(total, vs.PerPage)
	vs.Page = clamp(vs.Page, 1, pages)

	page := sorted
	if opts.Pagination {
		page = Paginate(sorted, vs.Page, vs.PerPage)
	}
	return Result[T]{Rows: page, Total: total, TotalPages: pages, View: vs}
}

// Filter conserva las filas donde algún campo contiene term (sin distinguir mayúsculas).
// Un término vacío o solo espacios no filtra. Los campos nil nunca coinciden.
func Filter[T any](rows []T, term string) []T {
	if strings.TrimSpace(term) == "" {
		return rows
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if rowContains(row, needle) {
			out = append(out, row)
		}
	}
	return out
}

func rowContains(row any, needle string) bool {
	for _, v := range Fields(row) {
		if v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), needle) {
			return true
		}
	}
	return false
}

// Sort devuelve una copia ordenada de forma estable por key.
func Sort[T any](rows []T, key string, dir Direction, locale language.Tag) []T {
	type keyed struct {
		v   any
		row T
	}
	items := make([]keyed, len(rows))
	for i, r := range rows {
		items[i] = keyed{v: Value(r, key), row: r}
	}
	coll := collate.New(locale)
	slices.SortStableFunc(items, func(a, b keyed) int {
		c := compareValues(a.v, b.v, coll)
		if dir == Desc {
			return -c
		}
		return c
	})
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}

// Paginate devuelve la ventana [(page-1)*perPage, page*perPage) acotada al largo.
func Paginate[T any](rows []T, page, perPage int) []T {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+perPage, len(rows))
	return rows[start:end:end]
}

// TotalPages max(1, ceil(count/perPage)).
func TotalPages(count, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}
