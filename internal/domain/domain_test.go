package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus_Valid(t *testing.T) {
	assert.True(t, StockInStock.Valid())
	assert.True(t, StockOnBackorder.Valid())
	assert.False(t, StockStatus("sold").Valid())
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleDE, ParseLocale("de"))
	assert.Equal(t, LocaleDE, ParseLocale("fr"))
}

func TestStrOrNil(t *testing.T) {
	assert.Nil(t, StrOrNil(""))
	assert.Nil(t, StrOrNil("   "))
	v := StrOrNil(" Kenia ")
	require.NotNil(t, v)
	assert.Equal(t, "Kenia", *v)
	assert.Equal(t, "", StrValue(nil))
}

func TestCoffee_EffectivePrice(t *testing.T) {
	regular := decimal.RequireFromString("14.90")
	sale := decimal.RequireFromString("12.50")

	c := &Coffee{RegularPrice: &regular}
	assert.True(t, c.EffectivePrice().Equal(regular))

	c.SalePrice = &sale
	assert.True(t, c.EffectivePrice().Equal(sale))
}

func TestRegion_DisplayName(t *testing.T) {
	assert.Equal(t, "Huila, Kolumbien", (&Region{RegionName: "Huila", Country: "Kolumbien"}).DisplayName())
	assert.Equal(t, "Kenia", (&Region{Country: "Kenia"}).DisplayName())
}

func TestFlavorCategory_IsRoot(t *testing.T) {
	empty := ""
	parent := "abc"
	assert.True(t, (&FlavorCategory{}).IsRoot())
	assert.True(t, (&FlavorCategory{ParentID: &empty}).IsRoot())
	assert.False(t, (&FlavorCategory{ParentID: &parent}).IsRoot())
}
