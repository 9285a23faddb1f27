// internal/domain/checkout/summary_html.go
package checkout

import (
	"fmt"
	"html"
	"strings"
)

// SummaryHTML renders the order summary as a standalone HTML document for
// the raster snapshot. Kept deliberately simple: inline styles only, no
// external assets, so the headless renderer never waits on the network.
func SummaryHTML(o OrderSummary) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #111; }
h1 { font-size: 20px; border-bottom: 2px solid #111; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
td, th { text-align: left; padding: 6px 4px; border-bottom: 1px solid #ddd; font-size: 13px; }
.total { font-weight: bold; font-size: 15px; }
.meta { font-size: 12px; color: #555; margin-top: 16px; }
</style></head><body>`)

	b.WriteString("<h1>Order Summary</h1>")

	b.WriteString("<table><tr><th>Item</th><th>Size</th><th>Qty</th><th>Price</th></tr>")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d</td><td>$%.2f</td></tr>",
			html.EscapeString(it.Name),
			html.EscapeString(it.SelectedSize),
			it.Quantity,
			it.Price*float64(it.Quantity),
		)
	}
	fmt.Fprintf(&b, `<tr><td class="total" colspan="3">Total</td><td class="total">$%.2f</td></tr>`, o.Total)
	b.WriteString("</table>")

	fmt.Fprintf(&b, `<div class="meta">%s<br>%s<br>%s</div>`,
		html.EscapeString(o.Shipping.Name),
		html.EscapeString(o.Shipping.FullAddress()),
		html.EscapeString(o.PlacedAt.Format("2006-01-02 15:04 MST")),
	)

	b.WriteString("</body></html>")
	return b.String()
}
