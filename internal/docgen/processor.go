package docgen

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/verlyx/hub-server/internal/models"
)

// Monetary fields formatted to two decimals in the snapshot
var moneyFields = []string{"subtotal", "tax_amount", "discount_amount", "total", "amount", "payment_amount"}

var oneHundred = decimal.NewFromInt(100)

// Totals holds the computed monetary values of a processed document.
// Values stay decimal here; formatting happens only at the snapshot/render
// boundary.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal

	HasSubtotal bool
	HasDiscount bool
	HasTax      bool
	HasTotal    bool
}

// Processed is the result of running raw document data through the
// processor
type Processed struct {
	Totals Totals

	fields map[string]interface{}
}

// ProcessDocumentData computes line-item totals, subtotal, discount, tax
// and grand total for the given raw form data. Fields that are not
// recognized pass through untouched. Only invoice and quote documents get
// discount/tax/total computation.
func ProcessDocumentData(data models.Variables, templateType models.TemplateType) *Processed {
	p := &Processed{fields: make(map[string]interface{}, len(data))}
	for k, v := range data {
		p.fields[k] = v
	}

	if items, ok := p.fields["items"].([]interface{}); ok {
		processedItems := make([]interface{}, 0, len(items))
		subtotal := decimal.Zero

		for _, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				processedItems = append(processedItems, raw)
				continue
			}

			out := make(map[string]interface{}, len(item)+1)
			for k, v := range item {
				out[k] = v
			}

			quantity := toDecimal(item["quantity"])
			price := toDecimal(item["price"])
			total := quantity.Mul(price)

			out["price"] = price
			out["total"] = total
			subtotal = subtotal.Add(total)

			processedItems = append(processedItems, out)
		}

		p.fields["items"] = processedItems
		p.fields["subtotal"] = subtotal
		p.Totals.Subtotal = subtotal
		p.Totals.HasSubtotal = true
	}

	if templateType == models.TemplateInvoice || templateType == models.TemplateQuote {
		subtotal := p.Totals.Subtotal
		if !p.Totals.HasSubtotal {
			subtotal = toDecimal(p.fields["subtotal"])
			p.Totals.Subtotal = subtotal
			p.Totals.HasSubtotal = true
			p.fields["subtotal"] = subtotal
		}

		taxRate := toDecimal(p.fields["tax"])
		discountRate := toDecimal(p.fields["discount"])

		if discountRate.IsPositive() {
			p.Totals.DiscountAmount = subtotal.Mul(discountRate).Div(oneHundred)
			p.Totals.HasDiscount = true
			p.fields["discount_amount"] = p.Totals.DiscountAmount
		}

		taxable := subtotal.Sub(p.Totals.DiscountAmount)

		p.Totals.TaxAmount = taxable.Mul(taxRate).Div(oneHundred)
		p.Totals.HasTax = true
		p.fields["tax_amount"] = p.Totals.TaxAmount

		p.Totals.Total = taxable.Add(p.Totals.TaxAmount)
		p.Totals.HasTotal = true
		p.fields["total"] = p.Totals.Total
	}

	return p
}

// Snapshot returns the processed data with every non-zero monetary field
// rendered as a fixed two-decimal string. Absent and zero fields pass
// through untouched; item price/total always format, defaulting to "0.00".
// This is the shape that gets persisted and fed to the HTML template;
// callers needing arithmetic use Totals.
func (p *Processed) Snapshot() models.Variables {
	out := make(models.Variables, len(p.fields))
	for k, v := range p.fields {
		out[k] = v
	}

	for _, field := range moneyFields {
		if v, ok := out[field]; ok {
			if d, ok := asDecimal(v); ok && !d.IsZero() {
				out[field] = d.StringFixed(2)
			}
		}
	}

	if items, ok := out["items"].([]interface{}); ok {
		formatted := make([]interface{}, 0, len(items))
		for _, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				formatted = append(formatted, raw)
				continue
			}

			fi := make(map[string]interface{}, len(item))
			for k, v := range item {
				fi[k] = v
			}
			fi["price"] = fixedOrZero(item["price"])
			fi["total"] = fixedOrZero(item["total"])
			formatted = append(formatted, fi)
		}
		out["items"] = formatted
	}

	return out
}

func fixedOrZero(v interface{}) string {
	if d, ok := asDecimal(v); ok {
		return d.StringFixed(2)
	}
	return "0.00"
}

// toDecimal coerces the loosely typed form values into decimals,
// defaulting to zero the way the original form layer did
func toDecimal(v interface{}) decimal.Decimal {
	d, ok := asDecimal(v)
	if !ok {
		return decimal.Zero
	}
	return d
}

func asDecimal(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		if n == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(n)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
