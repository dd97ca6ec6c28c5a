package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-studio/velora/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Services: []catalog.ServiceItem{
			{ID: 1, Name: "Hydra Facial", Price: 180},
			{ID: 2, Name: "Chemical Peel", Price: 120},
		},
		Products: []catalog.ProductItem{
			{ID: 10, Name: "Vitamin C Serum", Price: 95, Stock: 8},
		},
	}
}

func TestAddAndRemoveLines(t *testing.T) {
	d := NewDraft("d1").AddServiceLine().AddServiceLine().AddProductLine()

	require.Len(t, d.Services, 2)
	require.Len(t, d.Products, 1)
	assert.Equal(t, 1, d.Products[0].Quantity)
	assert.Equal(t, 0.0, d.Services[0].Discount)

	d = d.RemoveServiceLine(0)
	assert.Len(t, d.Services, 1)
	assert.Len(t, d.Products, 1)

	// Out-of-range removal is a no-op.
	d = d.RemoveServiceLine(5)
	assert.Len(t, d.Services, 1)

	d = d.RemoveProductLine(0)
	assert.Empty(t, d.Products)
}

func TestSelectCopiesCurrentPrice(t *testing.T) {
	cat := testCatalog()
	d := NewDraft("d1").AddServiceLine().SelectService(0, "Hydra Facial", cat)

	require.True(t, d.Services[0].Selected())
	assert.Equal(t, int64(1), d.Services[0].ItemID)
	assert.Equal(t, 180.0, d.Services[0].UnitPrice)

	// A later catalog price change does not touch the already-selected line.
	cat.Services[0].Price = 250
	assert.Equal(t, 180.0, d.Services[0].UnitPrice)
}

func TestSelectMissClearsSelection(t *testing.T) {
	cat := testCatalog()
	d := NewDraft("d1").AddServiceLine().
		SetServiceDiscount(0, 20).
		SelectService(0, "Hydra Facial", cat).
		SelectService(0, "No Such Service", cat)

	assert.False(t, d.Services[0].Selected())
	assert.Equal(t, 0.0, d.Services[0].UnitPrice)
	// Discount survives selection churn.
	assert.Equal(t, 20.0, d.Services[0].Discount)
}

func TestSetFieldsStoreRawInput(t *testing.T) {
	cat := testCatalog()
	d := NewDraft("d1").AddProductLine().
		SelectProduct(0, "Vitamin C Serum", cat).
		SetProductDiscount(0, -5).
		SetQuantity(0, 0)

	// Range enforcement happens at submit, not here.
	assert.Equal(t, -5.0, d.Products[0].Discount)
	assert.Equal(t, 0, d.Products[0].Quantity)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	cat := testCatalog()
	base := NewDraft("d1").AddServiceLine().SelectService(0, "Chemical Peel", cat)

	_ = base.SetServiceDiscount(0, 50)
	_ = base.RemoveServiceLine(0)
	_ = base.AddServiceLine()

	require.Len(t, base.Services, 1)
	assert.Equal(t, 0.0, base.Services[0].Discount)
	assert.Equal(t, 120.0, base.Services[0].UnitPrice)
}

func TestSelectedLinesSkipEmptyRows(t *testing.T) {
	cat := testCatalog()
	d := NewDraft("d1").
		AddServiceLine().
		AddServiceLine().
		SelectService(1, "Hydra Facial", cat).
		AddProductLine()

	assert.Len(t, d.SelectedServices(), 1)
	assert.Empty(t, d.SelectedProducts())
}
