package dashboard

import metricsstore "github.com/dalemusser/mentorhub/internal/app/store/metrics"

func Counts(data any) metricsstore.Counts { return data.(dashboardData).Counts }

func RecentMentorNames(data any) []string {
	var out []string
	for _, s := range data.(dashboardData).Recent {
		out = append(out, s.MentorName)
	}
	return out
}

func PreviousFromIP(data any) string { return data.(dashboardData).PreviousFromIP }
