package docgen

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/models"
)

func TestProcessDocumentData(t *testing.T) {
	t.Run("invoice with items and tax", func(t *testing.T) {
		data := models.Variables{
			"client_name": "Acme S.L.",
			"tax":         10,
			"items": []interface{}{
				map[string]interface{}{"description": "Consulting", "quantity": 2, "price": 50},
			},
		}

		p := ProcessDocumentData(data, models.TemplateInvoice)

		assert.True(t, p.Totals.Subtotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, p.Totals.TaxAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, p.Totals.Total.Equal(decimal.NewFromInt(110)))
		assert.False(t, p.Totals.HasDiscount)

		snapshot := p.Snapshot()
		assert.Equal(t, "100.00", snapshot["subtotal"])
		assert.Equal(t, "10.00", snapshot["tax_amount"])
		assert.Equal(t, "110.00", snapshot["total"])
		// untouched fields pass through
		assert.Equal(t, "Acme S.L.", snapshot["client_name"])
	})

	t.Run("discount applies before tax", func(t *testing.T) {
		data := models.Variables{
			"tax":      21,
			"discount": 10,
			"items": []interface{}{
				map[string]interface{}{"description": "License", "quantity": 1, "price": 200},
			},
		}

		p := ProcessDocumentData(data, models.TemplateQuote)

		require.True(t, p.Totals.HasDiscount)
		assert.True(t, p.Totals.DiscountAmount.Equal(decimal.NewFromInt(20)))
		// tax on the discounted base: (200 - 20) * 21%
		assert.True(t, p.Totals.TaxAmount.Equal(decimal.NewFromFloat(37.8)))
		assert.True(t, p.Totals.Total.Equal(decimal.NewFromFloat(217.8)))

		snapshot := p.Snapshot()
		assert.Equal(t, "20.00", snapshot["discount_amount"])
		assert.Equal(t, "37.80", snapshot["tax_amount"])
		assert.Equal(t, "217.80", snapshot["total"])
	})

	t.Run("zero discount sets no discount amount", func(t *testing.T) {
		data := models.Variables{
			"tax":      21,
			"discount": 0,
			"items": []interface{}{
				map[string]interface{}{"quantity": 1, "price": 100},
			},
		}

		p := ProcessDocumentData(data, models.TemplateInvoice)

		assert.False(t, p.Totals.HasDiscount)
		_, present := p.Snapshot()["discount_amount"]
		assert.False(t, present)
	})

	t.Run("fractional quantities keep exact money", func(t *testing.T) {
		data := models.Variables{
			"tax": 0,
			"items": []interface{}{
				map[string]interface{}{"quantity": 0.1, "price": 0.2},
				map[string]interface{}{"quantity": 3, "price": 19.99},
			},
		}

		p := ProcessDocumentData(data, models.TemplateInvoice)

		assert.True(t, p.Totals.Subtotal.Equal(decimal.NewFromFloat(59.99)))
		assert.Equal(t, "59.99", p.Snapshot()["subtotal"])
	})

	t.Run("item totals are formatted in the snapshot", func(t *testing.T) {
		data := models.Variables{
			"items": []interface{}{
				map[string]interface{}{"description": "Hosting", "quantity": "4", "price": "12.5"},
			},
		}

		p := ProcessDocumentData(data, models.TemplateReceipt)

		snapshot := p.Snapshot()
		items, ok := snapshot["items"].([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)

		item := items[0].(map[string]interface{})
		assert.Equal(t, "12.50", item["price"])
		assert.Equal(t, "50.00", item["total"])
		assert.Equal(t, "Hosting", item["description"])
	})

	t.Run("non invoice types skip tax computation", func(t *testing.T) {
		data := models.Variables{
			"tax": 21,
			"items": []interface{}{
				map[string]interface{}{"quantity": 1, "price": 100},
			},
		}

		p := ProcessDocumentData(data, models.TemplateContract)

		assert.True(t, p.Totals.HasSubtotal)
		assert.False(t, p.Totals.HasTax)
		assert.False(t, p.Totals.HasTotal)
		_, present := p.Snapshot()["tax_amount"]
		assert.False(t, present)
	})

	t.Run("missing quantity and price default to zero", func(t *testing.T) {
		data := models.Variables{
			"items": []interface{}{
				map[string]interface{}{"description": "TBD"},
			},
		}

		p := ProcessDocumentData(data, models.TemplateInvoice)

		assert.True(t, p.Totals.Subtotal.IsZero())
		assert.True(t, p.Totals.Total.IsZero())

		item := p.Snapshot()["items"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "0.00", item["total"])
	})

	t.Run("payment amount is formatted when present", func(t *testing.T) {
		data := models.Variables{
			"payment_amount": 1234.5,
			"payer_name":     "Jane",
		}

		p := ProcessDocumentData(data, models.TemplateReceipt)

		snapshot := p.Snapshot()
		assert.Equal(t, "1234.50", snapshot["payment_amount"])
		assert.Equal(t, "Jane", snapshot["payer_name"])
	})

	t.Run("zero money fields are not formatted", func(t *testing.T) {
		data := models.Variables{
			"tax":            0,
			"payment_amount": 0,
			"items":          []interface{}{},
		}

		p := ProcessDocumentData(data, models.TemplateInvoice)

		snapshot := p.Snapshot()
		assert.NotEqual(t, "0.00", snapshot["subtotal"])
		assert.NotEqual(t, "0.00", snapshot["tax_amount"])
		assert.NotEqual(t, "0.00", snapshot["total"])
		assert.Equal(t, 0, snapshot["payment_amount"])
	})

	t.Run("input map is not mutated", func(t *testing.T) {
		items := []interface{}{
			map[string]interface{}{"quantity": 2, "price": 5},
		}
		data := models.Variables{"tax": 10, "items": items}

		ProcessDocumentData(data, models.TemplateInvoice)

		_, present := data["subtotal"]
		assert.False(t, present)
		_, present = items[0].(map[string]interface{})["total"]
		assert.False(t, present)
	})
}
