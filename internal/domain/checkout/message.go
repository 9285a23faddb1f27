// internal/domain/checkout/message.go
package checkout

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildMessage composes the pre-filled order handoff text: itemized list,
// shipping address, total. The *bold* markers follow the messaging app's
// inline formatting.
func BuildMessage(o OrderSummary) string {
	var b strings.Builder

	b.WriteString("*New Order*\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", o.Shipping.Name)
	fmt.Fprintf(&b, "Email: %s\n", o.Shipping.Email)
	fmt.Fprintf(&b, "Phone: %s\n", o.Shipping.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", o.Shipping.FullAddress())

	b.WriteString("*Items*\n")
	for _, it := range o.Items {
		line := fmt.Sprintf("- %s", it.Name)
		if it.SelectedSize != "" {
			line += fmt.Sprintf(" (%s)", it.SelectedSize)
		}
		line += fmt.Sprintf(" x%d: $%.2f\n", it.Quantity, it.Price*float64(it.Quantity))
		b.WriteString(line)
	}

	fmt.Fprintf(&b, "\n*Total: $%.2f*", o.Total)
	return b.String()
}

// DeepLink builds the messaging deep link with the message URL-encoded:
// https://wa.me/<number>?text=<encoded>
// The number is reduced to bare digits (wa.me format).
func DeepLink(number string, message string) string {
	var n strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			n.WriteRune(r)
		}
	}
	return "https://wa.me/" + n.String() + "?text=" + url.QueryEscape(message)
}
