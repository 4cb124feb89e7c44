package scanner

import (
	"fmt"
	"time"
)

// SnapshotHTML renders the portal listing snapshot used in place of a live
// fetch. Live government portals sit behind CAPTCHAs and change structure
// without notice, so the demo parses a stable snapshot whose due dates are
// generated relative to now. The last row falls outside the 90-day window
// and must be filtered out.
func SnapshotHTML(now time.Time) string {
	day := func(d int) string {
		return now.AddDate(0, 0, d).Format("2006-01-02")
	}

	return fmt.Sprintf(`
	<html>
	<body>
		<table id="active-tenders">
			<tr class="tender-row">
				<td>rfp-gov-001</td>
				<td>Supply of 11kV XLPE Cables for Rural Electrification</td>
				<td>2025-12-10</td>
				<td>%s</td>
				<td><a href="https://eprocure.gov.in/rfp/123456">View</a></td>
			</tr>
			<tr class="tender-row">
				<td>rfp-ntpc-089</td>
				<td>Annual Rate Contract for LT Control Cables</td>
				<td>2025-12-12</td>
				<td>%s</td>
				<td><a href="https://ntpc.co.in/456">View</a></td>
			</tr>
			<tr class="tender-row">
				<td>rfp-rail-221</td>
				<td>Turnkey Signalling Project (North Zone)</td>
				<td>2025-12-08</td>
				<td>%s</td>
				<td><a href="https://ireps.gov.in/789">View</a></td>
			</tr>
			<tr class="tender-row">
				<td>rfp-future-999</td>
				<td>Future City Distribution Grid (FY26)</td>
				<td>2025-12-14</td>
				<td>%s</td>
				<td><a href="https://smartcities.gov.in/999">View</a></td>
			</tr>
		</table>
	</body>
	</html>
	`, day(10), day(3), day(45), day(120))
}
