package scanner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasad/rfp-pilot/internal/types"
)

var testNow = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func TestParseListing_Snapshot(t *testing.T) {
	opportunities, err := ParseListing(SnapshotHTML(testNow), testNow)
	require.NoError(t, err)

	// The +120d row falls outside the 90-day window
	require.Len(t, opportunities, 3)
	ids := []string{opportunities[0].ID, opportunities[1].ID, opportunities[2].ID}
	assert.Equal(t, []string{"rfp-gov-001", "rfp-ntpc-089", "rfp-rail-221"}, ids)
}

func TestParseListing_UrgencyFlag(t *testing.T) {
	opportunities, err := ParseListing(SnapshotHTML(testNow), testNow)
	require.NoError(t, err)

	byID := map[string]types.Opportunity{}
	for _, o := range opportunities {
		byID[o.ID] = o
	}

	// Due in 3 days: urgent
	urgent := byID["rfp-ntpc-089"]
	assert.Equal(t, "EXPEDITE", urgent.Action)
	assert.Contains(t, urgent.SubmissionRisk, "HIGH (Urgent)")
	assert.Contains(t, urgent.SubmissionRisk, "3 days left")

	// Due in 10 days: routine review
	routine := byID["rfp-gov-001"]
	assert.Equal(t, "REVIEW", routine.Action)
	assert.Contains(t, routine.SubmissionRisk, "10 days left")
}

func TestParseListing_FitScores(t *testing.T) {
	opportunities, err := ParseListing(SnapshotHTML(testNow), testNow)
	require.NoError(t, err)

	byID := map[string]types.Opportunity{}
	for _, o := range opportunities {
		byID[o.ID] = o
	}

	xlpe := byID["rfp-gov-001"]
	assert.Equal(t, 90, xlpe.MatchScore)
	assert.Equal(t, "High", xlpe.StrategicFit)
	assert.Equal(t, 85, xlpe.RightToWin)

	control := byID["rfp-ntpc-089"]
	assert.Equal(t, 75, control.MatchScore)
	assert.Equal(t, "Low", control.StrategicFit)

	other := byID["rfp-rail-221"]
	assert.Equal(t, 40, other.MatchScore)
}

func TestParseListing_PastDueExcluded(t *testing.T) {
	html := fmt.Sprintf(`<table>
		<tr class="tender-row">
			<td>rfp-old-001</td><td>Expired Tender</td><td>2025-01-01</td>
			<td>%s</td><td><a href="https://example.gov/1">View</a></td>
		</tr>
	</table>`, testNow.AddDate(0, 0, -2).Format("2006-01-02"))

	opportunities, err := ParseListing(html, testNow)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestParseListing_FarFutureExcluded(t *testing.T) {
	html := fmt.Sprintf(`<table>
		<tr class="tender-row">
			<td>rfp-far-001</td><td>Distant Tender</td><td>2026-01-01</td>
			<td>%s</td><td><a href="https://example.gov/1">View</a></td>
		</tr>
	</table>`, testNow.AddDate(0, 0, 200).Format("2006-01-02"))

	opportunities, err := ParseListing(html, testNow)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestParseListing_MalformedRowsSkipped(t *testing.T) {
	html := `<table>
		<tr class="tender-row"><td>only</td><td>four</td><td>cells</td><td>here</td></tr>
		<tr class="tender-row">
			<td>rfp-bad-date</td><td>Tender</td><td>2026-01-01</td>
			<td>not-a-date</td><td><a href="https://example.gov/1">View</a></td>
		</tr>
	</table>`

	opportunities, err := ParseListing(html, testNow)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestSelectTop_MaxFitScoreFirstOnTie(t *testing.T) {
	opportunities := []types.Opportunity{
		{ID: "a", MatchScore: 75},
		{ID: "b", MatchScore: 90},
		{ID: "c", MatchScore: 90},
	}

	top := SelectTop(opportunities)
	require.NotNil(t, top)
	assert.Equal(t, "b", top.ID)
}

func TestSelectTop_Empty(t *testing.T) {
	assert.Nil(t, SelectTop(nil))
}
