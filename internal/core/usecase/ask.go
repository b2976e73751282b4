package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/core/ports"
)

// questionSignals are the two keyword sources a rule may inspect: the
// classified query and the literal question.
type questionSignals struct {
	query     domain.CanonicalQuery
	canonical string
	question  string
	scope     domain.Scope
}

type resolveRule struct {
	name    string
	matches func(questionSignals) bool
	count   func(context.Context, questionSignals) (int, error)
}

// AskUseCase answers natural-language head-count questions. Classification
// only picks the filter; the number always comes from a single CountStore call.
type AskUseCase struct {
	classifier ports.QueryClassifier
	store      ports.CountStore
	rules      []resolveRule
	logger     *zap.Logger
}

func NewAskUseCase(classifier ports.QueryClassifier, store ports.CountStore, logger *zap.Logger) *AskUseCase {
	if classifier == nil {
		classifier = NewFallbackClassifier(nil, nil, logger, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &AskUseCase{
		classifier: classifier,
		store:      store,
		logger:     logger,
	}
	uc.rules = uc.resolveRules()
	return uc
}

func (uc *AskUseCase) Ask(ctx context.Context, question string, scope domain.Scope) (*domain.QueryResult, error) {
	query, err := uc.classifier.Classify(ctx, question)
	if err != nil {
		// Classifiers wired through FallbackClassifier never fail.
		query = classifyByKeywords(question)
	}
	canonical := query.String()

	signals := questionSignals{
		query:     query,
		canonical: strings.ToLower(canonical),
		question:  strings.ToLower(question),
		scope:     scope,
	}

	rule := uc.match(signals)
	count, err := rule.count(ctx, signals)
	if err != nil {
		return nil, fmt.Errorf("count employees by %s: %w", rule.name, err)
	}

	uc.logger.Debug("question_resolved",
		zap.String("rule", rule.name),
		zap.String("query", canonical),
		zap.Int("result", count),
	)

	return &domain.QueryResult{
		Question:     question,
		SQLLikeQuery: canonical,
		Result:       strconv.Itoa(count),
	}, nil
}

func (uc *AskUseCase) match(signals questionSignals) resolveRule {
	for _, rule := range uc.rules {
		if rule.matches(signals) {
			return rule
		}
	}
	return uc.rules[len(uc.rules)-1]
}

// resolveRules is evaluated top to bottom, first match wins. The last rule
// always matches.
func (uc *AskUseCase) resolveRules() []resolveRule {
	return []resolveRule{
		{
			name: "position",
			matches: func(s questionSignals) bool {
				return strings.Contains(s.canonical, "cargo") || strings.Contains(s.question, "auxiliar")
			},
			count: uc.countByPosition,
		},
		{
			name: "department",
			matches: func(s questionSignals) bool {
				return strings.Contains(s.canonical, "departamento")
			},
			count: uc.countByDepartment,
		},
		{
			name: "status",
			matches: func(s questionSignals) bool {
				return strings.Contains(s.canonical, "estado")
			},
			count: func(ctx context.Context, s questionSignals) (int, error) {
				return uc.store.CountByStatus(ctx, s.scope, statusFromCanonical(s.canonical))
			},
		},
		{
			name:    "total",
			matches: func(questionSignals) bool { return true },
			count: func(ctx context.Context, s questionSignals) (int, error) {
				return uc.store.CountAll(ctx, s.scope)
			},
		},
	}
}

func (uc *AskUseCase) countByPosition(ctx context.Context, s questionSignals) (int, error) {
	text := ""
	if s.query.Kind == domain.QueryByPosition {
		text = s.query.Param()
	}
	if strings.TrimSpace(text) == "" && strings.Contains(s.question, "auxiliar") {
		text = "auxiliar"
	}
	if strings.TrimSpace(text) == "" {
		// An empty substring would match every employee.
		return 0, nil
	}
	return uc.store.CountByPosition(ctx, s.scope, text)
}

func (uc *AskUseCase) countByDepartment(ctx context.Context, s questionSignals) (int, error) {
	name := ""
	if s.query.Kind == domain.QueryByDepartment {
		name = s.query.Param()
	}
	if strings.TrimSpace(name) == "" {
		name = extractDepartmentName(s.question)
	}
	return uc.store.CountByDepartmentName(ctx, s.scope, name)
}

// statusFromCanonical also accepts "vacation" since the canonical form renders
// that status untranslated.
func statusFromCanonical(canonical string) domain.EmployeeStatus {
	switch {
	case strings.Contains(canonical, "inactivo"):
		return domain.EmployeeInactive
	case strings.Contains(canonical, "vacaciones"), strings.Contains(canonical, "vacation"):
		return domain.EmployeeVacation
	default:
		return domain.EmployeeActive
	}
}
