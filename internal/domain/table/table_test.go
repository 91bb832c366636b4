package table_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/domain/table"
)

type recordingObserver struct {
	mu     sync.Mutex
	issues []string
}

func (o *recordingObserver) ReportPerformanceIssue(component, issue string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.issues = append(o.issues, component+": "+issue)
}

func txTable() *table.Table[txRow] {
	return table.New("Transacciones", []table.Column[txRow]{
		{Key: "id", Title: "ID"},
		{Key: "customer", Title: "Cliente", Sortable: true},
		{Key: "amount", Title: "Monto", Sortable: true, Render: func(r txRow) string {
			return "$" + r.Amount.StringFixed(2)
		}},
		{Key: "pallets", Title: "Pallets"},
	}, func(r txRow) string { return r.ID })
}

func TestRender_Cargando(t *testing.T) {
	view := txTable().Render(table.Loading[txRow](), table.NewViewState(10))
	assert.Equal(t, table.StateLoading, view.State)
	require.NotNil(t, view.Skeleton)
	assert.Equal(t, 4, view.Skeleton.Columns)
	assert.Nil(t, view.Error)
	assert.Nil(t, view.Pagination)
	assert.Empty(t, view.Rows)
}

func TestRender_Error(t *testing.T) {
	view := txTable().Render(table.Failed[txRow](errors.New("timeout")), table.NewViewState(10))
	assert.Equal(t, table.StateError, view.State)
	require.NotNil(t, view.Error)
	assert.Equal(t, "Failed to load data", view.Error.Title)
	assert.Equal(t, "timeout", view.Error.Message)
	assert.Nil(t, view.Skeleton)
	assert.Empty(t, view.Rows)
}

func TestRender_Vacio(t *testing.T) {
	view := txTable().Render(table.Loaded([]txRow{}), table.NewViewState(10))
	assert.Equal(t, table.StateReady, view.State)
	assert.True(t, view.Empty)
	assert.Equal(t, "No data available", view.EmptyMessage)
	require.NotNil(t, view.Pagination)
	assert.Equal(t, "Showing 0 to 0 of 0 entries", view.Pagination.Summary)
	assert.False(t, view.Pagination.HasPrev)
	assert.False(t, view.Pagination.HasNext)
}

func TestRender_FilasCeldasYResumen(t *testing.T) {
	tbl := txTable()
	tbl.Link = func(r txRow) string { return "/sales/transactions/" + r.ID }
	vs := table.NewViewState(10).ToggleSort("amount").ToggleSort("amount")

	view := tbl.Render(table.Loaded(amountRows()), vs)
	require.Len(t, view.Rows, 10)
	first := view.Rows[0]
	assert.Equal(t, "tx-25", first.Key)
	assert.Equal(t, []string{"tx-25", "Cliente 25", "$2500.00", "25"}, first.Cells)
	assert.Equal(t, "/sales/transactions/tx-25", first.Href)

	require.NotNil(t, view.Pagination)
	assert.Equal(t, "Showing 1 to 10 of 25 entries", view.Pagination.Summary)
	assert.False(t, view.Pagination.HasPrev)
	assert.True(t, view.Pagination.HasNext)

	assert.Equal(t, table.Desc, view.Columns[2].Sorted)
	assert.Empty(t, view.Columns[1].Sorted)
}

func TestRender_ClaveDeOrdenNoOrdenableSeDescarta(t *testing.T) {
	vs := table.NewViewState(10).WithSort("pallets", table.Desc)
	view := txTable().Render(table.Loaded(amountRows()), vs)
	assert.Empty(t, view.ViewState.SortKey)

	tbl := txTable()
	assert.Equal(t, vs, tbl.ToggleSort(vs, "id"))
	assert.Equal(t, "customer", tbl.ToggleSort(vs, "customer").SortKey)
}

func TestRender_CeroSeMuestraYNilQuedaVacio(t *testing.T) {
	tbl := table.New("Notas", []table.Column[txRow]{
		{Key: "pallets", Title: "Pallets"},
		{Key: "note", Title: "Nota"},
	}, func(r txRow) string { return r.ID })
	view := tbl.Render(table.Loaded([]txRow{{ID: "x"}}), table.NewViewState(10))
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"0", ""}, view.Rows[0].Cells)
}

func TestRender_AvisoDeRendimiento(t *testing.T) {
	rows := make([]txRow, 1001)
	for i := range rows {
		rows[i] = txRow{ID: fmt.Sprint(i), Amount: decimal.NewFromInt(int64(i))}
	}
	obs := &recordingObserver{}
	tbl := txTable()
	tbl.Observer = obs

	view := tbl.Render(table.Loaded(rows), table.NewViewState(10))
	assert.Equal(t, table.StateReady, view.State)
	require.Len(t, obs.issues, 1)
	assert.Equal(t, "DataTable: Large dataset with 1001 rows might affect performance", obs.issues[0])

	obs.issues = nil
	tbl.Render(table.Loaded(rows[:1000]), table.NewViewState(10))
	assert.Empty(t, obs.issues)
}

func TestRender_ClavesDuplicadasSeReportan(t *testing.T) {
	obs := &recordingObserver{}
	tbl := txTable()
	tbl.Observer = obs
	rows := []txRow{{ID: "a"}, {ID: "b"}, {ID: "a"}}

	view := tbl.Render(table.Loaded(rows), table.NewViewState(10))
	assert.Len(t, view.Rows, 3)
	require.Len(t, obs.issues, 1)
	assert.True(t, strings.Contains(obs.issues[0], `"a"`))
}

func TestRender_BusquedaAcme(t *testing.T) {
	rows := []txRow{
		{ID: "1", Customer: "Acme Corporation"},
		{ID: "2", Customer: "Globex Industries"},
		{ID: "3", Customer: "acme logistics"},
	}
	view := txTable().Render(table.Loaded(rows), table.NewViewState(10).WithSearch("ACME"))
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "1", view.Rows[0].Key)
	assert.Equal(t, "3", view.Rows[1].Key)
	assert.Equal(t, "Showing 1 to 2 of 2 entries", view.Pagination.Summary)
}

func TestRender_SinBusquedaIgnoraTermino(t *testing.T) {
	tbl := txTable()
	tbl.Options.Searchable = false
	view := tbl.Render(table.Loaded(amountRows()), table.NewViewState(10).WithSearch("cliente 01"))
	assert.Len(t, view.Rows, 10)
	assert.False(t, view.Searchable)
}

func TestClick_EntregaFilaOriginal(t *testing.T) {
	var clicked *txRow
	tbl := txTable()
	tbl.OnRowClick = func(r txRow) { clicked = &r }

	rows := amountRows()
	assert.True(t, tbl.Click(rows, "tx-07"))
	require.NotNil(t, clicked)
	assert.Equal(t, "Cliente 07", clicked.Customer)

	assert.False(t, tbl.Click(rows, "tx-99"))
}
