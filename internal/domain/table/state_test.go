package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jhoicas/palletpro-api/internal/domain/table"
)

func TestViewState_ToggleSortMismaColumnaInvierte(t *testing.T) {
	vs := table.NewViewState(10).ToggleSort("amount")
	assert.Equal(t, "amount", vs.SortKey)
	assert.Equal(t, table.Asc, vs.SortDir)

	vs = vs.ToggleSort("amount")
	assert.Equal(t, table.Desc, vs.SortDir)

	vs = vs.ToggleSort("customer")
	assert.Equal(t, "customer", vs.SortKey)
	assert.Equal(t, table.Asc, vs.SortDir)
}

func TestViewState_DobleToggleRestauraOrden(t *testing.T) {
	rows := amountRows()
	vs := table.NewViewState(25).ToggleSort("pallets")
	first := table.Apply(rows, vs, table.DefaultOptions())

	vs = vs.ToggleSort("pallets").ToggleSort("pallets")
	again := table.Apply(rows, vs, table.DefaultOptions())
	assert.Equal(t, ids(first.Rows), ids(again.Rows))
}

func TestViewState_ToggleVuelveAPaginaUno(t *testing.T) {
	vs := table.NewViewState(10).GoTo(3, 3).ToggleSort("amount")
	assert.Equal(t, 1, vs.Page)
}

func TestViewState_NextPrevEnLimitesNoHacenNada(t *testing.T) {
	vs := table.NewViewState(10)
	assert.Equal(t, 1, vs.Prev().Page)
	assert.Equal(t, 1, vs.Next(1).Page)

	vs = vs.Next(3).Next(3)
	assert.Equal(t, 3, vs.Page)
	assert.Equal(t, 3, vs.Next(3).Page)
	assert.Equal(t, 2, vs.Prev().Page)
}

func TestViewState_WithDataVuelveAPaginaUno(t *testing.T) {
	vs := table.NewViewState(10).GoTo(2, 5).WithData()
	assert.Equal(t, 1, vs.Page)
}

func TestViewState_WithPerPageNoCambiaPagina(t *testing.T) {
	vs := table.NewViewState(10).GoTo(2, 5).WithPerPage(5)
	assert.Equal(t, 2, vs.Page)
	assert.Equal(t, 5, vs.PerPage)

	res := table.Apply(amountRows(), vs.WithPerPage(50), table.Options{Pagination: true, Locale: language.Und})
	assert.Equal(t, 1, res.View.Page)
}

func TestViewState_Normaliza(t *testing.T) {
	vs := table.NewViewState(0)
	assert.Equal(t, table.DefaultPerPage, vs.PerPage)
	assert.Equal(t, 1, vs.Page)
	assert.Equal(t, table.Asc, vs.SortDir)
}

func TestParseQuery(t *testing.T) {
	q := map[string]string{
		"q":        "acme",
		"sort":     "amount",
		"dir":      "DESC",
		"page":     "2",
		"per_page": "500",
	}
	vs := table.ParseQuery(func(k string) string { return q[k] }, 10)
	assert.Equal(t, "acme", vs.Search)
	assert.Equal(t, "amount", vs.SortKey)
	assert.Equal(t, table.Desc, vs.SortDir)
	assert.Equal(t, 2, vs.Page)
	assert.Equal(t, 100, vs.PerPage)
}

func TestParseQuery_ToggleYValoresInvalidos(t *testing.T) {
	q := map[string]string{
		"sort":     "amount",
		"dir":      "desc",
		"page":     "abc",
		"per_page": "-3",
		"toggle":   "amount",
	}
	vs := table.ParseQuery(func(k string) string { return q[k] }, 20)
	assert.Equal(t, "amount", vs.SortKey)
	assert.Equal(t, table.Asc, vs.SortDir)
	assert.Equal(t, 1, vs.Page)
	assert.Equal(t, 20, vs.PerPage)
}
