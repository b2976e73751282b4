package usecase

import (
	"context"
	"strings"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type keywordRule struct {
	keywords []string
	query    func() domain.CanonicalQuery
}

// Order matters: a department mention wins over status and role keywords.
var heuristicRules = []keywordRule{
	{keywords: []string{"departamento"}, query: domain.DepartmentPlaceholderQuery},
	{keywords: []string{"inactivo"}, query: func() domain.CanonicalQuery { return domain.StatusQuery(domain.EmployeeInactive) }},
	{keywords: []string{"vacaciones"}, query: func() domain.CanonicalQuery { return domain.StatusQuery(domain.EmployeeVacation) }},
	{keywords: []string{"auxiliar", "cargo"}, query: domain.PositionPlaceholderQuery},
}

// HeuristicClassifier is the deterministic keyword classifier used when no
// external model is available. It never fails.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

func (HeuristicClassifier) Classify(_ context.Context, question string) (domain.CanonicalQuery, error) {
	return classifyByKeywords(question), nil
}

func classifyByKeywords(question string) domain.CanonicalQuery {
	lower := strings.ToLower(question)
	for _, rule := range heuristicRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.query()
			}
		}
	}
	return domain.TotalQuery()
}
