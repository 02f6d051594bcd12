package csvimport

import (
	"math"
	"strings"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/shopspring/decimal"
)

// Export column names.
const (
	ColTitle       = "post_title"
	ColSlug        = "post_name"
	ColExcerpt     = "post_excerpt"
	ColContent     = "post_content"
	ColSKU         = "sku"
	ColRegular     = "regular_price"
	ColSale        = "sale_price"
	ColStockStatus = "stock_status"
	ColManageStock = "manage_stock"
	ColStock       = "stock"
	ColProductURL  = "product_page_url"
	ColID          = "ID"
	ColImages      = "images"
	ColCategories  = "tax:product_cat"
	ColTags        = "tax:product_tag"

	attributePrefix = "attribute:"
	defaultCurrency = "EUR"
)

// AttributeValue is a free-form `attribute:*` column.
type AttributeValue struct {
	Key   string
	Value string
}

// CoffeeRecord is one export row mapped to catalog fields.
type CoffeeRecord struct {
	Row              int
	Name             string
	Slug             string
	ShortDescription *string
	Description      *string
	SKU              *string
	RegularPrice     *decimal.Decimal
	SalePrice        *decimal.Decimal
	Currency         string
	StockStatus      *string
	ManageStock      bool
	StockQuantity    *int
	ProductURL       *string
	ExternalID       *string
	ImageURL         *string
	Categories       []string
	Tags             []string
	Attributes       []AttributeValue
}

// MapRecord applies the export's column mapping. The slug is taken from
// post_name, only trimmed; a regular price falls back to the sale price when blank.
func MapRecord(rec Record) CoffeeRecord {
	out := CoffeeRecord{
		Row:              rec.Row(),
		Name:             strings.TrimSpace(rec.Get(ColTitle)),
		Slug:             strings.TrimSpace(rec.Get(ColSlug)),
		ShortDescription: domain.StrOrNil(rec.Get(ColExcerpt)),
		Description:      domain.StrOrNil(rec.Get(ColContent)),
		SKU:              domain.StrOrNil(rec.Get(ColSKU)),
		RegularPrice:     numberOrNil(domain.CoalesceStr(strings.TrimSpace(rec.Get(ColRegular)), rec.Get(ColSale))),
		SalePrice:        numberOrNil(rec.Get(ColSale)),
		Currency:         defaultCurrency,
		StockStatus:      domain.StrOrNil(rec.Get(ColStockStatus)),
		ManageStock:      strings.EqualFold(strings.TrimSpace(rec.Get(ColManageStock)), "yes"),
		ProductURL:       domain.StrOrNil(rec.Get(ColProductURL)),
		ExternalID:       domain.StrOrNil(rec.Get(ColID)),
		ImageURL:         domain.StrOrNil(FirstURL(rec.Get(ColImages))),
		Categories:       SplitList(rec.Get(ColCategories)),
		Tags:             SplitList(rec.Get(ColTags)),
		Attributes:       Attributes(rec),
	}

	if stock := numberOrNil(rec.Get(ColStock)); stock != nil {
		out.StockQuantity = stockQuantity(*stock)
	}
	return out
}

var (
	minStock = decimal.NewFromInt(math.MinInt)
	maxStock = decimal.NewFromInt(math.MaxInt)
)

// stockQuantity truncates to a whole count; counts outside the int range
// are dropped.
func stockQuantity(d decimal.Decimal) *int {
	d = d.Truncate(0)
	if d.LessThan(minStock) || d.GreaterThan(maxStock) {
		return nil
	}
	n := int(d.IntPart())
	return &n
}

// Attributes collects every non-empty `attribute:*` cell in header order.
func Attributes(rec Record) []AttributeValue {
	var out []AttributeValue
	for _, col := range rec.Header() {
		key, ok := strings.CutPrefix(col, attributePrefix)
		if !ok || key == "" {
			continue
		}
		value := strings.TrimSpace(rec.Get(col))
		if value == "" {
			continue
		}
		out = append(out, AttributeValue{Key: key, Value: value})
	}
	return out
}

// Coffee builds the catalog row for this record. ID and timestamps are left
// to the caller. An empty slug falls back to a slug of the name so the
// unique key is always populated.
func (r CoffeeRecord) Coffee() *domain.Coffee {
	slug := r.Slug
	if slug == "" {
		slug = Slugify(r.Name)
	}
	currency := r.Currency
	return &domain.Coffee{
		Slug:             slug,
		Name:             r.Name,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		SKU:              r.SKU,
		RegularPrice:     r.RegularPrice,
		SalePrice:        r.SalePrice,
		Currency:         &currency,
		StockStatus:      r.StockStatus,
		ManageStock:      r.ManageStock,
		StockQuantity:    r.StockQuantity,
		ProductURL:       r.ProductURL,
		ExternalID:       r.ExternalID,
		ImageURL:         r.ImageURL,
	}
}

func numberOrNil(s string) *decimal.Decimal {
	d, ok := ToNumber(s)
	if !ok {
		return nil
	}
	return &d
}
