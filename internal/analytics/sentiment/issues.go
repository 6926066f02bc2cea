package sentiment

import (
	"sort"
	"strings"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

const maxTopIssues = 5

// IssueCategory groups keywords that point at one kind of complaint.
type IssueCategory struct {
	Name     string
	Keywords []string
}

// IssueCategories are scanned in this order; ties in the ranking keep it.
var IssueCategories = []IssueCategory{
	{Name: "delivery", Keywords: []string{"delivery", "shipping", "late", "delayed"}},
	{Name: "packaging", Keywords: []string{"packaging", "damaged", "broken", "box"}},
	{Name: "quality", Keywords: []string{"quality", "broke", "stopped working", "poor", "terrible"}},
	{Name: "price", Keywords: []string{"overpriced", "expensive", "not worth"}},
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// TopIssues counts negative reviews per issue category. A review can count
// toward several categories. Empty categories are left out.
func TopIssues(results []domain.SentimentResult) []domain.IssueSummary {
	var negatives []string
	for _, r := range results {
		if r.Sentiment == domain.SentimentNegative {
			negatives = append(negatives, strings.ToLower(r.Review))
		}
	}

	issues := make([]domain.IssueSummary, 0, len(IssueCategories))
	if len(negatives) == 0 {
		return issues
	}

	for _, category := range IssueCategories {
		count := 0
		for _, review := range negatives {
			if containsAny(review, category.Keywords) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		issues = append(issues, domain.IssueSummary{
			Issue:      category.Name,
			Count:      count,
			Percentage: analytics.RoundFloat(float64(count)/float64(len(negatives))*100, 1),
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Count > issues[j].Count
	})

	if len(issues) > maxTopIssues {
		issues = issues[:maxTopIssues]
	}
	return issues
}
