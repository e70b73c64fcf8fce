// Package invoice renders order invoices as PDF.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"foodfreaky/models"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Render produces the invoice PDF for an order. The QR stamp encodes the
// order id and creation timestamp so a delivered invoice can be matched to
// its order at the door.
func Render(order *models.Order, customerName, customerEmail string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, "FoodFreaky", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Order Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Order meta
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Invoice: %s\nDate: %s\nCustomer: %s <%s>\nRestaurant: %s\nDeliver to: %s",
		order.OrderID,
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		customerName, customerEmail,
		order.RestaurantName,
		order.ShippingAddress,
	), "", "L", false)
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range order.Items {
		pdf.CellFormat(90, 8, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", it.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	totalRow := func(label string, amount float64) {
		pdf.CellFormat(115, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
	}
	totalRow("Items", order.ItemsPrice)
	totalRow("Tax", order.TaxPrice)
	totalRow("Delivery", order.ShippingPrice)
	if order.CouponCode != "" {
		discount := order.ItemsPrice + order.TaxPrice + order.ShippingPrice - order.TotalPrice - order.CreditsUsed
		totalRow("Discount", -discount)
	}
	if order.CreditsUsed > 0 {
		totalRow("Credits", -order.CreditsUsed)
	}
	pdf.SetFont("Arial", "B", 11)
	totalRow("Total", order.TotalPrice)

	// QR verification stamp
	qrData := fmt.Sprintf("order=%s&ts=%d", order.OrderID, order.CreatedAt.Unix())
	if qrPNG, err := qrcode.Encode(qrData, qrcode.Medium, 128); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 160, 20, 28, 28, false, opts, 0, "")
	}

	// Footer
	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated %s - thank you for ordering with FoodFreaky.",
		time.Now().Format("02 Jan 2006")), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
