package table_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/palletpro-api/internal/domain/table"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

type txRow struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Amount   decimal.Decimal `json:"amount"`
	Pallets  int             `json:"pallets"`
	Date     time.Time       `json:"date"`
	Note     *string         `json:"note"`
	Secret   string          `json:"-"`
}

// amountRows 25 filas con montos 1..25, desordenadas.
func amountRows() []txRow {
	rows := make([]txRow, 0, 25)
	for i := 0; i < 25; i++ {
		n := (i*7)%25 + 1
		rows = append(rows, txRow{
			ID:       fmt.Sprintf("tx-%02d", n),
			Customer: fmt.Sprintf("Cliente %02d", n),
			Amount:   decimal.NewFromInt(int64(n * 100)),
			Pallets:  n,
		})
	}
	return rows
}

func ids(rows []txRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_TerminoVacioDevuelveTodo(t *testing.T) {
	rows := amountRows()
	assert.Len(t, table.Filter(rows, ""), 25)
	assert.Len(t, table.Filter(rows, "   "), 25)
}

func TestFilter_CoincideEnCualquierCampoSinMayusculas(t *testing.T) {
	rows := []txRow{
		{ID: "1", Customer: "Acme Corp", Amount: decimal.NewFromInt(10)},
		{ID: "2", Customer: "Globex", Amount: decimal.NewFromInt(20)},
		{ID: "3", Customer: "ACME Industries", Amount: decimal.NewFromInt(30)},
	}
	got := table.Filter(rows, "acme")
	assert.Equal(t, []string{"1", "3"}, ids(got))

	// Coincidencia sobre el valor numérico convertido a texto.
	got = table.Filter(rows, "20")
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_CamposNilYOcultosNoCoinciden(t *testing.T) {
	note := "urgente"
	rows := []txRow{
		{ID: "a", Customer: "Uno", Note: nil, Secret: "urgente"},
		{ID: "b", Customer: "Dos", Note: &note},
	}
	assert.Equal(t, []string{"b"}, ids(table.Filter(rows, "urgente")))
	assert.Empty(t, table.Filter(rows, "nil"))
}

func TestFilter_CadaFilaContieneElTermino(t *testing.T) {
	rows := amountRows()
	for _, term := range []string{"1", "cliente 2", "00"} {
		for _, r := range table.Filter(rows, term) {
			found := false
			for _, v := range table.Fields(r) {
				if v != nil && containsFold(table.Stringify(v), term) {
					found = true
				}
			}
			assert.True(t, found, "fila %s debe contener %q", r.ID, term)
		}
	}
}

func containsFold(s, sub string) bool {
	return len(table.Filter([]map[string]any{{"v": s}}, sub)) == 1
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden
// ──────────────────────────────────────────────────────────────────────────────

func TestSort_DecimalAscYDesc(t *testing.T) {
	rows := amountRows()
	asc := table.Sort(rows, "amount", table.Asc, language.Und)
	require.Len(t, asc, 25)
	for i := 1; i < len(asc); i++ {
		assert.True(t, asc[i-1].Amount.LessThanOrEqual(asc[i].Amount))
	}
	desc := table.Sort(rows, "amount", table.Desc, language.Und)
	assert.Equal(t, "tx-25", desc[0].ID)
	assert.Equal(t, "tx-01", desc[24].ID)
}

func TestSort_EsIdempotente(t *testing.T) {
	rows := amountRows()
	once := table.Sort(rows, "pallets", table.Asc, language.Und)
	twice := table.Sort(once, "pallets", table.Asc, language.Und)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSort_NoMutaElOrigen(t *testing.T) {
	rows := amountRows()
	before := ids(rows)
	_ = table.Sort(rows, "amount", table.Desc, language.Und)
	_ = table.Apply(rows, table.NewViewState(10).WithSort("customer", table.Desc), table.DefaultOptions())
	assert.Equal(t, before, ids(rows))
}

func TestSort_EsEstableConValoresIguales(t *testing.T) {
	rows := []txRow{
		{ID: "a", Pallets: 2},
		{ID: "b", Pallets: 1},
		{ID: "c", Pallets: 2},
		{ID: "d", Pallets: 1},
	}
	got := table.Sort(rows, "pallets", table.Asc, language.Und)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(got))
}

func TestSort_FechasCronologicas(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []txRow{
		{ID: "b", Date: base.AddDate(0, 1, 0)},
		{ID: "c", Date: base.AddDate(0, 2, 0)},
		{ID: "a", Date: base},
	}
	got := table.Sort(rows, "date", table.Asc, language.Und)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestSort_CollationSegunLocale(t *testing.T) {
	rows := []txRow{
		{ID: "1", Customer: "zeta"},
		{ID: "2", Customer: "Árbol"},
		{ID: "3", Customer: "beta"},
	}
	// Con collation "Árbol" precede a "beta", a diferencia de la comparación por bytes.
	got := table.Sort(rows, "customer", table.Asc, language.Spanish)
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))
}

func TestSort_TiposMixtosSeAgrupanPorClase(t *testing.T) {
	rows := []map[string]any{
		{"id": "x", "v": "texto"},
		{"id": "y", "v": 5},
		{"id": "z", "v": nil},
	}
	got := table.Sort(rows, "v", table.Asc, language.Und)
	require.Len(t, got, 3)
	order := make([]any, len(got))
	for i, r := range got {
		order[i] = r["id"]
	}
	assert.Equal(t, []any{"y", "x", "z"}, order)
}

func TestSort_NilNoRompeElOrden(t *testing.T) {
	three, one, two := 3, 1, 2
	type qtyRow struct {
		ID  string `json:"id"`
		Qty *int   `json:"qty"`
	}
	rows := []qtyRow{{"a", &three}, {"b", nil}, {"c", &one}, {"d", &two}}
	key := func(rs []qtyRow) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	asc := table.Sort(rows, "qty", table.Asc, language.Und)
	assert.Equal(t, []string{"c", "d", "a", "b"}, key(asc), "nil va al final en ascendente")
	assert.Equal(t, key(asc), key(table.Sort(asc, "qty", table.Asc, language.Und)), "ordenar dos veces es idempotente")

	desc := table.Sort(rows, "qty", table.Desc, language.Und)
	assert.Equal(t, []string{"b", "a", "d", "c"}, key(desc))
}

// ──────────────────────────────────────────────────────────────────────────────
// Paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalPages(t *testing.T) {
	cases := []struct{ count, per, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, table.TotalPages(c.count, c.per), "count=%d per=%d", c.count, c.per)
	}
}

func TestPaginate_FueraDeRangoDevuelveVacio(t *testing.T) {
	rows := amountRows()
	assert.Len(t, table.Paginate(rows, 3, 10), 5)
	got := table.Paginate(rows, 4, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

// 25 transacciones ordenadas por monto descendente: la página 1 tiene las 10 mayores
// y la página 3 las 5 restantes.
func TestApply_TransaccionesPorMontoDesc(t *testing.T) {
	rows := amountRows()
	vs := table.NewViewState(10).ToggleSort("amount").ToggleSort("amount")
	require.Equal(t, table.Desc, vs.SortDir)

	res := table.Apply(rows, vs, table.DefaultOptions())
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	require.Len(t, res.Rows, 10)
	assert.Equal(t, "tx-25", res.Rows[0].ID)
	assert.Equal(t, "tx-16", res.Rows[9].ID)
	assert.Equal(t, 1, res.From())
	assert.Equal(t, 10, res.To())

	res = table.Apply(rows, vs.Next(res.TotalPages).Next(res.TotalPages), table.DefaultOptions())
	assert.Equal(t, 3, res.View.Page)
	require.Len(t, res.Rows, 5)
	assert.Equal(t, "tx-05", res.Rows[0].ID)
	assert.Equal(t, "tx-01", res.Rows[4].ID)
	assert.Equal(t, 21, res.From())
	assert.Equal(t, 25, res.To())
}

func TestApply_BusquedaVuelveAPaginaUnoYAcota(t *testing.T) {
	rows := amountRows()
	vs := table.NewViewState(10).GoTo(3, 3)
	assert.Equal(t, 3, vs.Page)

	vs = vs.WithSearch("cliente 1")
	assert.Equal(t, 1, vs.Page)

	res := table.Apply(rows, vs, table.DefaultOptions())
	// Cliente 10..19
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 1, res.TotalPages)
}

func TestApply_PaginaFueraDeRangoSeAcota(t *testing.T) {
	rows := amountRows()[:5]
	vs := table.ViewState{Page: 9, PerPage: 2}
	res := table.Apply(rows, vs, table.DefaultOptions())
	assert.Equal(t, 3, res.View.Page)
	assert.Len(t, res.Rows, 1)
}

func TestApply_SinResultados(t *testing.T) {
	res := table.Apply(amountRows(), table.NewViewState(10).WithSearch("no-existe"), table.DefaultOptions())
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.From())
	assert.Equal(t, 0, res.To())
}

func TestApply_OpcionesDesactivadas(t *testing.T) {
	opts := table.Options{Searchable: false, Pagination: false}
	res := table.Apply(amountRows(), table.NewViewState(10).WithSearch("cliente 01"), opts)
	assert.Len(t, res.Rows, 25)
}

func TestApply_ConjuntoVacio(t *testing.T) {
	res := table.Apply([]txRow{}, table.NewViewState(10), table.DefaultOptions())
	assert.Equal(t, 1, res.TotalPages)
	assert.Empty(t, res.Rows)
}
