// Package export builds CSV text from the currently visible result set.
// Pure string building, no I/O: every field is wrapped in quotes and
// embedded quotes are doubled, so values containing commas, quotes or
// newlines round-trip through any CSV reader.
package export

import (
	"strings"

	"bankerdir/internal/console/api"
)

// TagSeparator joins multi-valued tag fields inside one CSV cell
const TagSeparator = "; "

// BankerHeader is the fixed banker export header row. The bulk-upload
// template uses the same columns.
var BankerHeader = []string{"Name", "Affiliation", "Locations", "Products", "Official Email", "Personal Email", "Phone"}

// LenderHeader is the fixed lender export header row
var LenderHeader = []string{"Name", "State", "City", "Manager Name", "RM Name", "RM Contact", "Banker Name"}

// quote wraps a field in double quotes, doubling embedded quotes
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// writeRow appends one fully quoted CSV row
func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(field))
	}
	b.WriteString("\r\n")
}

// Bankers renders the given records as CSV. An empty set yields a
// header-only file, which is valid output rather than an error.
func Bankers(records []api.Banker) string {
	var b strings.Builder
	writeRow(&b, BankerHeader)

	for _, r := range records {
		writeRow(&b, []string{
			r.Name,
			r.Affiliation,
			strings.Join(r.Locations, TagSeparator),
			strings.Join(r.Products, TagSeparator),
			r.OfficialEmail,
			r.PersonalEmail,
			r.Phone,
		})
	}
	return b.String()
}

// Lenders renders the given lender records as CSV
func Lenders(records []api.Lender) string {
	var b strings.Builder
	writeRow(&b, LenderHeader)

	for _, r := range records {
		writeRow(&b, []string{
			r.Name,
			r.State,
			r.City,
			r.ManagerName,
			r.RMName,
			r.RMContact,
			r.BankerName,
		})
	}
	return b.String()
}

// BankerTemplate returns the header-only CSV used as the bulk-upload
// starting point
func BankerTemplate() string {
	var b strings.Builder
	writeRow(&b, BankerHeader)
	return b.String()
}
