package table

// Direction sentido de ordenamiento.
type Direction string

// Sentidos de ordenamiento.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip devuelve el sentido contrario.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// DefaultPerPage filas por página cuando no se indica otra cosa.
const DefaultPerPage = 10

// ViewState estado de vista de la tabla: búsqueda, orden y página.
// Page es 1-indexada. Las transiciones devuelven un estado nuevo; ninguna muta el receptor.
type ViewState struct {
	Search  string    `json:"q"`
	SortKey string    `json:"sort,omitempty"`
	SortDir Direction `json:"dir"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// NewViewState estado inicial: sin búsqueda, sin orden, página 1.
func NewViewState(perPage int) ViewState {
	return ViewState{SortDir: Asc, Page: 1, PerPage: perPage}.normalized()
}

func (v ViewState) normalized() ViewState {
	if v.PerPage < 1 {
		v.PerPage = DefaultPerPage
	}
	if v.Page < 1 {
		v.Page = 1
	}
	if v.SortDir != Desc {
		v.SortDir = Asc
	}
	return v
}

// WithSearch cambia el término de búsqueda y vuelve a la página 1.
func (v ViewState) WithSearch(term string) ViewState {
	v.Search = term
	v.Page = 1
	return v.normalized()
}

// ToggleSort aplica un clic sobre la cabecera key: la misma columna invierte el
// sentido, otra columna pasa a ser la clave con sentido ascendente. Vuelve a la página 1.
func (v ViewState) ToggleSort(key string) ViewState {
	v = v.normalized()
	if v.SortKey == key {
		v.SortDir = v.SortDir.Flip()
	} else {
		v.SortKey = key
		v.SortDir = Asc
	}
	v.Page = 1
	return v
}

// WithSort fija clave y sentido explícitos y vuelve a la página 1.
func (v ViewState) WithSort(key string, dir Direction) ViewState {
	v.SortKey = key
	v.SortDir = dir
	v.Page = 1
	return v.normalized()
}

// WithData se aplica cuando cambia la colección de origen: vuelve a la página 1.
func (v ViewState) WithData() ViewState {
	v.Page = 1
	return v.normalized()
}

// WithPerPage cambia el tamaño de página. La página actual se acota en el siguiente cálculo.
func (v ViewState) WithPerPage(n int) ViewState {
	v.PerPage = n
	return v.normalized()
}

// Next avanza una página; en la última página no hace nada.
func (v ViewState) Next(totalPages int) ViewState {
	v = v.normalized()
	if v.Page < totalPages {
		v.Page++
	}
	return v
}

// Prev retrocede una página; en la primera página no hace nada.
func (v ViewState) Prev() ViewState {
	v = v.normalized()
	if v.Page > 1 {
		v.Page--
	}
	return v
}

// GoTo salta a page acotada a [1, totalPages].
func (v ViewState) GoTo(page, totalPages int) ViewState {
	v.Page = clamp(page, 1, max(1, totalPages))
	return v.normalized()
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
