package matching

import (
	"encoding/json"
	"strings"

	"github.com/prasad/rfp-pilot/internal/types"
)

// comparedSpecs lists the attributes compared between requirement and
// candidate specs. Extend this list to compare more attributes.
var comparedSpecs = []string{"voltage", "insulation"}

// wildcardToken marks a requirement value as a no-constraint signal
// ("not specified", "not applicable").
const wildcardToken = "not"

// specValuesMatch is the demo comparison policy: case-insensitive substring
// containment in either direction, with the wildcard token treated as an
// automatic match. This is a heuristic, not a correctness guarantee; a
// production version would want unit- and range-aware comparison.
func specValuesMatch(required, candidate string) bool {
	r := strings.ToLower(strings.TrimSpace(required))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if strings.Contains(r, wildcardToken) {
		return true
	}
	return strings.Contains(r, c) || strings.Contains(c, r)
}

// specTitle renders a spec key for display (voltage -> Voltage).
func specTitle(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// buildSpecBreakdown compares the requirement specs against candidate specs
// attribute by attribute. Only attributes present on both sides are
// compared. Service candidates get one synthetic service-type match row.
func buildSpecBreakdown(reqSpecs, candSpecs map[string]string, candidate types.SearchResult) []types.SpecCheck {
	breakdown := make([]types.SpecCheck, 0, len(comparedSpecs)+1)

	for _, key := range comparedSpecs {
		reqVal, reqOK := reqSpecs[key]
		candVal, candOK := candSpecs[key]
		if !reqOK || !candOK {
			continue
		}

		status := types.StatusMismatch
		if specValuesMatch(reqVal, candVal) {
			status = types.StatusMatch
		}
		breakdown = append(breakdown, types.SpecCheck{
			Spec:   specTitle(key),
			Status: status,
			Value:  candVal,
		})
	}

	if candidate.Category == types.CategoryService {
		breakdown = append(breakdown, types.SpecCheck{
			Spec:   "Service Type",
			Status: types.StatusMatch,
			Value:  candidate.Name,
		})
	}

	return breakdown
}

// decodeSpecs deserializes the JSON-encoded specs carried in search result
// metadata. Malformed payloads yield empty specs rather than an error.
func decodeSpecs(raw string) map[string]string {
	if raw == "" {
		return map[string]string{}
	}
	var specs map[string]string
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return map[string]string{}
	}
	return specs
}
