// Package table implementa una tabla de datos genérica: búsqueda, orden y
// paginación del lado del servidor sobre una colección en memoria.
//
// El núcleo es la función pura Apply (filtrar → ordenar → paginar). Table
// añade los tres estados de presentación (cargando, error, datos), el render
// de celdas y el aviso de rendimiento para colecciones grandes.
package table

import (
	"fmt"
)

// DefaultAdvisoryThreshold filas a partir de las cuales se emite el aviso de rendimiento.
const DefaultAdvisoryThreshold = 1000

// Mensajes de presentación.
const (
	EmptyMessage      = "No data available"
	ErrorTitle        = "Failed to load data"
	skeletonRows      = 5
	performanceSource = "DataTable"
)

// Column describe una columna. Key debe nombrar un campo de T (su nombre JSON)
// o ser puramente de presentación cuando Render está definido.
type Column[T any] struct {
	Key      string
	Title    string
	Render   func(T) string // opcional; por defecto el valor del campo Key
	Sortable bool
	Width    string // sugerencia de ancho para el cliente
}

// Observer recibe avisos no bloqueantes (telemetría).
type Observer interface {
	ReportPerformanceIssue(component, issue string)
}

// Data colección de origen en uno de tres estados: cargando, fallida o disponible.
type Data[T any] struct {
	rows    []T
	err     error
	loading bool
}

// Loading colección todavía no disponible.
func Loading[T any]() Data[T] { return Data[T]{loading: true} }

// Loaded colección disponible (puede estar vacía).
func Loaded[T any](rows []T) Data[T] { return Data[T]{rows: rows} }

// Failed la carga terminó con error.
func Failed[T any](err error) Data[T] { return Data[T]{err: err} }

// Rows filas disponibles (nil si está cargando o falló).
func (d Data[T]) Rows() []T { return d.rows }

// Err error de carga, si lo hubo.
func (d Data[T]) Err() error { return d.err }

// IsLoading informa si la colección aún no está disponible.
func (d Data[T]) IsLoading() bool { return d.loading }

// State estado de presentación de la tabla. Siempre exactamente uno.
type State string

// Estados de presentación.
const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// HeaderCell cabecera de columna con su indicador de orden.
type HeaderCell struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Sortable bool      `json:"sortable"`
	Width    string    `json:"width,omitempty"`
	Sorted   Direction `json:"sorted,omitempty"` // vacío si no es la columna ordenada
}

// Row fila renderizada.
type Row struct {
	Key   string   `json:"key"`
	Cells []string `json:"cells"`
	Href  string   `json:"href,omitempty"`
}

// Skeleton marcador de carga dimensionado a las columnas.
type Skeleton struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// ErrorPanel panel de error.
type ErrorPanel struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Pagination controles de paginación.
type Pagination struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	Summary    string `json:"summary"`
}

// View resultado serializable del render.
type View struct {
	State        State        `json:"state"`
	Title        string       `json:"title,omitempty"`
	Searchable   bool         `json:"searchable"`
	Columns      []HeaderCell `json:"columns"`
	Rows         []Row        `json:"rows,omitempty"`
	Empty        bool         `json:"empty,omitempty"`
	EmptyMessage string       `json:"empty_message,omitempty"`
	Skeleton     *Skeleton    `json:"skeleton,omitempty"`
	Error        *ErrorPanel  `json:"error,omitempty"`
	Pagination   *Pagination  `json:"pagination,omitempty"`
	ViewState    ViewState    `json:"view"`
}

// Table tabla genérica sobre filas de tipo T.
type Table[T any] struct {
	Title             string
	Columns           []Column[T]
	Key               func(T) string // identificador único y estable por fila
	OnRowClick        func(T)        // opcional
	Link              func(T) string // opcional: destino de navegación de la fila
	Options           Options
	Observer          Observer // opcional
	AdvisoryThreshold int
}

// New construye una tabla con búsqueda y paginación activas.
func New[T any](title string, columns []Column[T], key func(T) string) *Table[T] {
	return &Table[T]{
		Title:             title,
		Columns:           columns,
		Key:               key,
		Options:           DefaultOptions(),
		AdvisoryThreshold: DefaultAdvisoryThreshold,
	}
}

// Sanitize descarta una clave de orden que no corresponde a una columna ordenable.
func (t *Table[T]) Sanitize(vs ViewState) ViewState {
	if vs.SortKey != "" && !t.sortable(vs.SortKey) {
		vs.SortKey = ""
		vs.SortDir = Asc
	}
	if !t.Options.Searchable {
		vs.Search = ""
	}
	return vs.normalized()
}

// ToggleSort aplica el clic de cabecera solo si la columna es ordenable.
func (t *Table[T]) ToggleSort(vs ViewState, key string) ViewState {
	if !t.sortable(key) {
		return vs
	}
	return vs.ToggleSort(key)
}

func (t *Table[T]) sortable(key string) bool {
	for _, c := range t.Columns {
		if c.Key == key {
			return c.Sortable
		}
	}
	return false
}

// Render produce exactamente uno de los tres estados de presentación.
func (t *Table[T]) Render(data Data[T], vs ViewState) View {
	vs = t.Sanitize(vs)
	view := View{
		Title:      t.Title,
		Searchable: t.Options.Searchable,
		Columns:    t.headers(vs),
		ViewState:  vs,
	}

	switch {
	case data.err != nil:
		view.State = StateError
		view.Error = &ErrorPanel{Title: ErrorTitle, Message: data.err.Error()}
		return view
	case data.loading:
		view.State = StateLoading
		view.Skeleton = &Skeleton{Columns: len(t.Columns), Rows: skeletonRows}
		return view
	}

	t.advise(data.rows)

	res := Apply(data.rows, vs, t.Options)
	view.State = StateReady
	view.ViewState = res.View
	view.Rows = make([]Row, 0, len(res.Rows))
	for _, item := range res.Rows {
		view.Rows = append(view.Rows, t.renderRow(item))
	}
	if len(view.Rows) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyMessage
	}
	if t.Options.Pagination {
		view.Pagination = &Pagination{
			Page:       res.View.Page,
			TotalPages: res.TotalPages,
			PerPage:    res.View.PerPage,
			Total:      res.Total,
			From:       res.From(),
			To:         res.To(),
			HasPrev:    res.View.Page > 1,
			HasNext:    res.View.Page < res.TotalPages,
			Summary:    fmt.Sprintf("Showing %d to %d of %d entries", res.From(), res.To(), res.Total),
		}
	}
	return view
}

// Click invoca OnRowClick con la fila original cuya clave es key. Devuelve false si no existe.
func (t *Table[T]) Click(rows []T, key string) bool {
	for _, r := range rows {
		if t.Key(r) == key {
			if t.OnRowClick != nil {
				t.OnRowClick(r)
			}
			return true
		}
	}
	return false
}

func (t *Table[T]) headers(vs ViewState) []HeaderCell {
	out := make([]HeaderCell, 0, len(t.Columns))
	for _, c := range t.Columns {
		h := HeaderCell{Key: c.Key, Title: c.Title, Sortable: c.Sortable, Width: c.Width}
		if c.Sortable && vs.SortKey == c.Key {
			h.Sorted = vs.SortDir
		}
		out = append(out, h)
	}
	return out
}

func (t *Table[T]) renderRow(item T) Row {
	r := Row{Key: t.Key(item), Cells: make([]string, 0, len(t.Columns))}
	for _, c := range t.Columns {
		if c.Render != nil {
			r.Cells = append(r.Cells, c.Render(item))
			continue
		}
		r.Cells = append(r.Cells, Stringify(Value(item, c.Key)))
	}
	if t.Link != nil {
		r.Href = t.Link(item)
	}
	return r
}

// advise emite avisos de rendimiento y de claves duplicadas. Nunca bloquea el render.
func (t *Table[T]) advise(rows []T) {
	if t.Observer == nil {
		return
	}
	threshold := t.AdvisoryThreshold
	if threshold <= 0 {
		threshold = DefaultAdvisoryThreshold
	}
	if len(rows) > threshold {
		t.Observer.ReportPerformanceIssue(performanceSource,
			fmt.Sprintf("Large dataset with %d rows might affect performance", len(rows)))
	}
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		k := t.Key(r)
		if _, dup := seen[k]; dup {
			t.Observer.ReportPerformanceIssue(performanceSource, fmt.Sprintf("Duplicate row key %q", k))
			return
		}
		seen[k] = struct{}{}
	}
}
