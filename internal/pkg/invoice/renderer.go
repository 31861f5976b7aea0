package invoice

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/VenueBookHQ/VenueBook/app/models"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.Booking.InvoiceNumber}}</title></head>
<body>
	<h1>Invoice {{.Booking.InvoiceNumber}}</h1>
	<p>Billed to: {{.User.Name}} &lt;{{.User.Email}}&gt;</p>
	<p>Venue: {{.Venue.Name}}{{if .Venue.Location}}, {{.Venue.Location}}{{end}}</p>
	<p>Event: {{.Booking.EventName}} ({{.ServiceLabel}}) on {{.Booking.EventDate.Format "02 Jan 2006"}}</p>
	<table border="1" cellpadding="4">
		<tr><th>Item</th><th>Amount</th></tr>
		<tr><td>Base price</td><td>{{.Booking.BasePrice}}</td></tr>
		<tr><td>Time slot</td><td>{{.Booking.SlotPrice}}</td></tr>
		{{range .Booking.Addons}}<tr><td>{{.Name}} x{{.Quantity}}</td><td>{{.Total}}</td></tr>
		{{end}}<tr><td>Tax</td><td>{{.Booking.Tax}}</td></tr>
		<tr><th>Total</th><th>{{.Booking.TotalAmount}}</th></tr>
	</table>
	<p>Advance due ({{.Booking.AdvancePercent}}%): paid {{.Booking.PaidAmount}}</p>
</body>
</html>
`))

// Renderer writes invoice documents as HTML files. Output is deterministic
// for the same booking snapshot: the file name is derived from the invoice
// number and the content only from the passed entities.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer that writes into dir, creating it if needed.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render writes the invoice for a booking and returns the file path.
func (r *Renderer) Render(booking *models.Booking, user *models.User, venue *models.Venue, serviceLabel string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}

	path := filepath.Join(r.dir, booking.InvoiceNumber+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create invoice file: %w", err)
	}
	defer f.Close()

	data := struct {
		Booking      *models.Booking
		User         *models.User
		Venue        *models.Venue
		ServiceLabel string
	}{booking, user, venue, serviceLabel}

	if err := invoiceTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return path, nil
}
