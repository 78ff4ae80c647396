package services

import (
	"regexp"
	"strings"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/payload"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/types"
)

// ReportParser turns a referral report into its structured form.
type ReportParser interface {
	Parse(text string) types.ReferralReport
}

const (
	totalInvitesMarker = "Total invites:</b>"
	topReferrersMarker = "Top referrers:</b>"
	byDayMarker        = "By day:</b>"
	sectionStart       = "<b>"
)

var (
	totalInvitesRe = regexp.MustCompile(`^\s*(\d+)`)
	reportLineRe   = regexp.MustCompile(`^(.+?)\s*—\s*(\d+)\s*$`)
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)

	textFields = []string{"text", "message", "report", "output"}
)

// TextReportParser reads the legacy HTML-flavoured report sent by the
// referrals webhook.
type TextReportParser struct{}

func (TextReportParser) Parse(text string) types.ReferralReport {
	text = unescapeNewlines(text)

	report := types.ReferralReport{
		TopReferrers: []types.Referrer{},
		ByDay:        []types.DailyCount{},
	}

	if rest, ok := after(text, totalInvitesMarker); ok {
		if m := totalInvitesRe.FindStringSubmatch(rest); m != nil {
			report.TotalInvites = payload.Count(m[1])
		}
	}

	for _, line := range sectionLines(text, topReferrersMarker) {
		name, count, ok := parseReportLine(line)
		if !ok {
			continue
		}
		report.TopReferrers = append(report.TopReferrers, types.Referrer{Name: name, Count: count})
	}

	for _, line := range sectionLines(text, byDayMarker) {
		date, count, ok := parseReportLine(line)
		if !ok {
			continue
		}
		day, ok := ParseDay(date)
		if !ok {
			continue
		}
		report.ByDay = append(report.ByDay, types.DailyCount{Date: FormatDay(day), Count: count})
	}

	return report
}

// ParseReferralPayload accepts either the structured JSON report or any
// wrapping of the legacy text report.
func ParseReferralPayload(body []byte, parser ReportParser) types.ReferralReport {
	v, ok := payload.Unmarshal(body)
	if !ok {
		return parser.Parse(string(body))
	}

	if arr, isArr := v.([]any); isArr {
		if len(arr) == 0 {
			return parser.Parse("")
		}
		v = arr[0]
	}

	switch val := v.(type) {
	case string:
		return parser.Parse(val)
	case map[string]any:
		r := payload.Record(val)
		if r.Has("total_invites", "top_referrers", "by_day") {
			return structuredReport(r)
		}
		return parser.Parse(r.String(textFields...))
	}

	return parser.Parse("")
}

func structuredReport(r payload.Record) types.ReferralReport {
	report := types.ReferralReport{
		TotalInvites: r.Count("total_invites"),
		TopReferrers: []types.Referrer{},
		ByDay:        []types.DailyCount{},
	}

	if arr, ok := r["top_referrers"].([]any); ok {
		for _, elem := range arr {
			if obj, ok := elem.(map[string]any); ok {
				ref := payload.Record(obj)
				report.TopReferrers = append(report.TopReferrers, types.Referrer{
					Name:  ref.String("name", "username"),
					Count: ref.Count("count", "invites"),
				})
			}
		}
	}

	if arr, ok := r["by_day"].([]any); ok {
		for _, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			day := payload.Record(obj)
			t, ok := ParseDay(day.String("date", "day"))
			if !ok {
				continue
			}
			report.ByDay = append(report.ByDay, types.DailyCount{Date: FormatDay(t), Count: day.Count("count")})
		}
	}

	return report
}

func unescapeNewlines(text string) string {
	text = strings.ReplaceAll(text, `\r\n`, "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func after(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}

	return text[idx+len(marker):], true
}

// sectionLines returns the lines between marker and the next bold heading.
func sectionLines(text, marker string) []string {
	rest, ok := after(text, marker)
	if !ok {
		return nil
	}

	if end := strings.Index(rest, sectionStart); end >= 0 {
		rest = rest[:end]
	}

	return strings.Split(rest, "\n")
}

func parseReportLine(line string) (string, int64, bool) {
	line = strings.TrimSpace(htmlTagRe.ReplaceAllString(line, ""))
	m := reportLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}

	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", 0, false
	}

	return name, payload.Count(m[2]), true
}
