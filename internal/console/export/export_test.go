package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"bankerdir/internal/console/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankers_RoundTripsThroughCSVReader(t *testing.T) {
	records := []api.Banker{
		{
			Name:          `Loan, "Special"`,
			Affiliation:   "First National",
			Locations:     []string{"Mumbai", "Pune"},
			Products:      []string{"Home Loan", `Gold "Plus"`},
			OfficialEmail: "a@bank.example",
			PersonalEmail: "a@home.example",
			Phone:         "+91 98765",
		},
		{
			Name:        "Plain Name",
			Affiliation: "Co-op\nBank",
			Phone:       "123",
		},
	}

	out := Bankers(records)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, BankerHeader, parsed[0])
	assert.Equal(t, `Loan, "Special"`, parsed[1][0])
	assert.Equal(t, "Mumbai; Pune", parsed[1][2])
	assert.Equal(t, `Home Loan; Gold "Plus"`, parsed[1][3])
	assert.Equal(t, "Co-op\nBank", parsed[2][1])
	assert.Equal(t, "", parsed[2][2], "empty tag set exports as empty field")
}

func TestBankers_EveryFieldIsQuoted(t *testing.T) {
	out := Bankers([]api.Banker{{Name: "A", Affiliation: "B", Phone: "1"}})

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		fields, err := csv.NewReader(strings.NewReader(line)).Read()
		require.NoError(t, err)

		// Rebuilding the line with every field wrapped in quotes must
		// reproduce it exactly, including the empty fields
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		assert.Equal(t, strings.Join(quoted, ","), line)
	}
}

func TestBankers_EmptySetYieldsHeaderOnly(t *testing.T) {
	out := Bankers(nil)

	parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, BankerHeader, parsed[0])
}

func TestLenders_RoundTrips(t *testing.T) {
	records := []api.Lender{
		{Name: "Acme Capital", State: "MH", City: "Mumbai", ManagerName: `R. "Bob" Rao`},
	}

	parsed, err := csv.NewReader(strings.NewReader(Lenders(records))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, LenderHeader, parsed[0])
	assert.Equal(t, `R. "Bob" Rao`, parsed[1][3])
}

func TestBankerTemplate_MatchesUploadHeader(t *testing.T) {
	parsed, err := csv.NewReader(strings.NewReader(BankerTemplate())).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, BankerHeader, parsed[0])
}
