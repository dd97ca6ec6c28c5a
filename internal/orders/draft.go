package orders

import (
	"time"

	"github.com/velora-studio/velora/internal/catalog"
)

// DraftLine is one editable row in the order editor. ItemID zero means no
// catalog entry is selected yet. UnitPrice is copied from the catalog at
// selection time and is never refreshed from later catalog changes.
// Discount and Quantity hold the raw values the operator typed; range
// enforcement happens at submission, not per edit.
type DraftLine struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Quantity  int     `json:"quantity"`
}

// Selected reports whether the line references a catalog entry.
func (l DraftLine) Selected() bool {
	return l.ItemID != 0
}

// Draft is the in-progress order being built in the editor. It is a value
// type: every operation returns a new Draft and leaves the receiver
// untouched, so a failed submission hands the caller back exactly the state
// it had.
type Draft struct {
	ID            string      `json:"id"`
	CustomerID    *int64      `json:"user_id,omitempty"`
	FirstName     string      `json:"fname"`
	LastName      string      `json:"lname"`
	Phone         string      `json:"phone_no"`
	Email         *string     `json:"email,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Remark        string      `json:"remark"`
	Photos        []string    `json:"photos"`
	Services      []DraftLine `json:"services"`
	Products      []DraftLine `json:"products"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewDraft returns an empty draft with the given identifier.
func NewDraft(id string) Draft {
	return Draft{ID: id, CreatedAt: time.Now().UTC()}
}

// AddServiceLine appends an empty service line (no selection, discount 0).
func (d Draft) AddServiceLine() Draft {
	d.Services = append(cloneLines(d.Services), DraftLine{})
	return d
}

// AddProductLine appends an empty product line (no selection, discount 0,
// quantity 1).
func (d Draft) AddProductLine() Draft {
	d.Products = append(cloneLines(d.Products), DraftLine{Quantity: 1})
	return d
}

// RemoveServiceLine drops the service line at index i. Out-of-range indexes
// are ignored; the UI only exposes existing rows.
func (d Draft) RemoveServiceLine(i int) Draft {
	d.Services = removeLine(d.Services, i)
	return d
}

// RemoveProductLine drops the product line at index i.
func (d Draft) RemoveProductLine(i int) Draft {
	d.Products = removeLine(d.Products, i)
	return d
}

// SelectService resolves name against the loaded catalog. On a match the
// line gets the entry's ID and current price; on a miss (cleared selection)
// the reference and price reset to zero. Discount is untouched either way.
func (d Draft) SelectService(i int, name string, cat catalog.Catalog) Draft {
	if i < 0 || i >= len(d.Services) {
		return d
	}
	lines := cloneLines(d.Services)
	if item, ok := cat.FindService(name); ok {
		lines[i].ItemID = item.ID
		lines[i].Name = item.Name
		lines[i].UnitPrice = item.Price
	} else {
		lines[i].ItemID = 0
		lines[i].Name = ""
		lines[i].UnitPrice = 0
	}
	d.Services = lines
	return d
}

// SelectProduct resolves name against the product catalog. Quantity and
// discount survive both selection and clearing.
func (d Draft) SelectProduct(i int, name string, cat catalog.Catalog) Draft {
	if i < 0 || i >= len(d.Products) {
		return d
	}
	lines := cloneLines(d.Products)
	if item, ok := cat.FindProduct(name); ok {
		lines[i].ItemID = item.ID
		lines[i].Name = item.Name
		lines[i].UnitPrice = item.Price
	} else {
		lines[i].ItemID = 0
		lines[i].Name = ""
		lines[i].UnitPrice = 0
	}
	d.Products = lines
	return d
}

// SetServiceDiscount stores the raw discount input on a service line.
func (d Draft) SetServiceDiscount(i int, percent float64) Draft {
	if i < 0 || i >= len(d.Services) {
		return d
	}
	lines := cloneLines(d.Services)
	lines[i].Discount = percent
	d.Services = lines
	return d
}

// SetProductDiscount stores the raw discount input on a product line.
func (d Draft) SetProductDiscount(i int, percent float64) Draft {
	if i < 0 || i >= len(d.Products) {
		return d
	}
	lines := cloneLines(d.Products)
	lines[i].Discount = percent
	d.Products = lines
	return d
}

// SetQuantity stores the raw quantity input on a product line.
func (d Draft) SetQuantity(i int, qty int) Draft {
	if i < 0 || i >= len(d.Products) {
		return d
	}
	lines := cloneLines(d.Products)
	lines[i].Quantity = qty
	d.Products = lines
	return d
}

// SelectedServices returns the service lines with a catalog selection.
func (d Draft) SelectedServices() []DraftLine {
	return selectedLines(d.Services)
}

// SelectedProducts returns the product lines with a catalog selection.
func (d Draft) SelectedProducts() []DraftLine {
	return selectedLines(d.Products)
}

func cloneLines(lines []DraftLine) []DraftLine {
	out := make([]DraftLine, len(lines))
	copy(out, lines)
	return out
}

func removeLine(lines []DraftLine, i int) []DraftLine {
	if i < 0 || i >= len(lines) {
		return lines
	}
	out := make([]DraftLine, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	return append(out, lines[i+1:]...)
}

func selectedLines(lines []DraftLine) []DraftLine {
	var out []DraftLine
	for _, l := range lines {
		if l.Selected() {
			out = append(out, l)
		}
	}
	return out
}
