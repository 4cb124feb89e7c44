// Package scanner produces a ranked list of candidate tenders from the
// monitored procurement portals.
package scanner

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/prasad/rfp-pilot/internal/types"
)

// dueDateWindow is how far ahead an opportunity's due date may lie to be
// included in scan results.
const dueDateWindow = 90 * 24 * time.Hour

// urgentDays flags opportunities needing expedited handling.
const urgentDays = 7

// probeTimeout bounds the best-effort connectivity checks.
const probeTimeout = 3 * time.Second

// DefaultSources are the monitored tender portals.
func DefaultSources() []string {
	return []string{
		"https://eprocure.gov.in/cppp/latestactivetenders",
		"https://www.ntpc.co.in/en/tenders/open-tenders",
		"https://www.powergrid.in/tenders",
	}
}

// Scanner scans procurement portals for open tenders.
type Scanner struct {
	sources []string
	client  *http.Client
}

// New creates a Scanner over the given source URLs.
func New(sources []string) *Scanner {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Scanner{
		sources: sources,
		client:  &http.Client{Timeout: probeTimeout},
	}
}

// Scan parses the portal listing and returns opportunities due within the
// next 90 days. Connectivity to the live sources is probed concurrently but
// never fails the scan; parsing runs over the stable snapshot.
func (s *Scanner) Scan(ctx context.Context, now time.Time) (*types.ScanReport, error) {
	s.probeSources(ctx)

	opportunities, err := ParseListing(SnapshotHTML(now), now)
	if err != nil {
		return nil, err
	}

	return &types.ScanReport{
		LastScanned:        now.Format("2006-01-02 15:04:05"),
		ScanFrequency:      "Every 4 Hours",
		SearchCriteria:     "Due Date < 90 Days",
		SourcesMonitored:   s.sources,
		OpportunitiesFound: len(opportunities),
		Opportunities:      opportunities,
	}, nil
}

// probeSources checks reachability of the monitored portals in parallel.
// Failures are logged only; the scan proceeds offline.
func (s *Scanner) probeSources(ctx context.Context) {
	g, gCtx := errgroup.WithContext(ctx)
	for _, src := range s.sources {
		g.Go(func() error {
			req, err := http.NewRequestWithContext(gCtx, http.MethodHead, src, nil)
			if err != nil {
				return nil
			}
			resp, err := s.client.Do(req)
			if err != nil {
				log.Printf("Connectivity check failed for %s (using offline snapshot): %v", src, err)
				return nil
			}
			_ = resp.Body.Close()
			return nil
		})
	}
	_ = g.Wait()
}

// ParseListing extracts opportunities from portal listing HTML, computes
// urgency and fit, and filters to due dates within [now, now+90d].
func ParseListing(html string, now time.Time) ([]types.Opportunity, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	today := now.Truncate(24 * time.Hour)
	cutoff := today.Add(dueDateWindow)

	opportunities := make([]types.Opportunity, 0)
	doc.Find("tr.tender-row").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 5 {
			return
		}

		id := strings.TrimSpace(cols.Eq(0).Text())
		title := strings.TrimSpace(cols.Eq(1).Text())
		pubDate := strings.TrimSpace(cols.Eq(2).Text())
		dueDate := strings.TrimSpace(cols.Eq(3).Text())
		link, _ := cols.Eq(4).Find("a").Attr("href")

		due, err := time.Parse("2006-01-02", dueDate)
		if err != nil {
			log.Printf("Skipping tender %s: bad due date %q", id, dueDate)
			return
		}
		if due.Before(today) || due.After(cutoff) {
			return
		}

		daysLeft := int(due.Sub(today).Hours() / 24)
		risk := "Low"
		action := "REVIEW"
		if daysLeft < urgentDays {
			risk = "HIGH (Urgent)"
			action = "EXPEDITE"
		}

		fit := fitScore(title)
		strategicFit := "Low"
		if fit > 80 {
			strategicFit = "High"
		}

		opportunities = append(opportunities, types.Opportunity{
			ID:             id,
			Title:          title,
			Source:         "eprocure.gov.in (Snapshot)",
			PublishDate:    pubDate,
			DueDate:        dueDate,
			Status:         "OPEN",
			MatchScore:     fit,
			URL:            link,
			SubmissionRisk: fmt.Sprintf("%s (%d days left)", risk, daysLeft),
			StrategicFit:   strategicFit,
			RightToWin:     fit - 5,
			Action:         action,
		})
	})

	return opportunities, nil
}

// fitScore estimates capability fit from title keywords. A placeholder
// heuristic standing in for a capability scan against the catalog.
func fitScore(title string) int {
	switch {
	case strings.Contains(title, "XLPE"):
		return 90
	case strings.Contains(title, "Control"):
		return 75
	default:
		return 40
	}
}

// SelectTop returns the opportunity with the highest fit score. Ties keep
// the earlier entry. Returns nil for an empty list.
func SelectTop(opportunities []types.Opportunity) *types.Opportunity {
	var best *types.Opportunity
	for i := range opportunities {
		if best == nil || opportunities[i].MatchScore > best.MatchScore {
			best = &opportunities[i]
		}
	}
	return best
}
