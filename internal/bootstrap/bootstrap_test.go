package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/core/domain"
	"github.com/kirillkom/talentoplus/internal/observability/metrics"
)

type nopStorage struct{}

func (nopStorage) Save(context.Context, string, io.Reader) error { return nil }
func (nopStorage) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type nopQueue struct{}

func (nopQueue) PublishImportRequested(context.Context, string) error { return nil }
func (nopQueue) SubscribeImportRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestWireWithoutAIUsesKeywordRules(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`e.status = \$2`).
		WithArgs("", "Inactive").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	observer := metrics.NewHTTPServerMetrics("api")
	app := wire(config.Config{}, zaptest.NewLogger(t), db, nopStorage{}, nopQueue{}, observer)

	result, err := app.AskUC.Ask(context.Background(), "¿Cuántos empleados están inactivos?", domain.Scope{})
	require.NoError(t, err)
	assert.Equal(t, "contar empleados en estado Inactivo", result.SQLLikeQuery)
	assert.Equal(t, "2", result.Result)

	scrape := httptest.NewRecorder()
	observer.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `talentoplus_ai_classifier_fallback_total{reason="not_configured"} 1`)
	assert.Contains(t, scrape.Body.String(), `talentoplus_ai_questions_total{kind="status",source="heuristic"} 1`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWireWithAIUsesGemini(t *testing.T) {
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k-1", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"DEPARTAMENTO:\"Tecnología\""}]}}]}`)
	}))
	defer gemini.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`LOWER\(d.name\) = LOWER\(\$2\)`).
		WithArgs("owner-a", "Tecnología").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	cfg := config.Config{AIAPIURL: gemini.URL, AIAPIKey: "k-1", AITimeout: time.Second, AIBreakerEnabled: true}
	app := wire(cfg, zaptest.NewLogger(t), db, nopStorage{}, nopQueue{}, nil)

	result, err := app.AskUC.Ask(context.Background(), "¿Cuántos trabajan en tecnología?", domain.Scope{OwnerID: "owner-a"})
	require.NoError(t, err)
	assert.Equal(t, `contar empleados por departamento "Tecnología"`, result.SQLLikeQuery)
	assert.Equal(t, "4", result.Result)
	require.NoError(t, mock.ExpectationsWereMet())
}
