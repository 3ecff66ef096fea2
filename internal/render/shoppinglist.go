package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/recipehub/gin-recipe-api/internal/models"
)

// ShoppingList renders the aggregated report as a plain-text document
// suitable for download. The aggregator hands over ordered rows; layout
// lives entirely here.
func ShoppingList(items []models.ShoppingListItem, now time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Shopping list (%s)\n", now.Format("2006-01-02"))
	buf.WriteString("==================\n\n")
	if len(items) == 0 {
		buf.WriteString("Your shopping cart is empty.\n")
		return buf.Bytes()
	}
	for _, item := range items {
		fmt.Fprintf(&buf, "- %s: %d %s\n", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return buf.Bytes()
}
