package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/adapter/repository/snapshotfile"
	"github.com/simaogato/poolledger-backend/internal/domain"
	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
	"github.com/simaogato/poolledger-backend/internal/usecase/mirror"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := snapshotfile.NewStore(filepath.Join(t.TempDir(), "snapshot.json"))
	ledgerSvc, err := ledger.NewService(context.Background(), store, mirror.Nop{}, zap.NewNop())
	assert.NoError(t, err)
	return NewRouter(ledgerSvc, dashboard.NewService(ledgerSvc), zap.NewNop())
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSetup_Succeeds(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})

	assert.Equal(t, http.StatusOK, w.Code)
	var entry domain.LedgerEntry
	assert.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, domain.EntryTypeInitialSetup, entry.Type)
	assert.Equal(t, "100000", entry.BalanceAfter.String())
}

func TestSetup_RejectsNonPositiveAmount(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "-5"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "positive")
}

func TestInvestmentLifecycle_OverHTTP(t *testing.T) {
	r := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})

	// Add
	w, env := doJSON(t, r, http.MethodPost, "/api/investments", gin.H{
		"date": "2026-01-15", "amount": "50000", "notes": "Batch A",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var inv domain.Investment
	assert.NoError(t, json.Unmarshal(env.Data, &inv))
	assert.Equal(t, domain.InvestmentStatusActive, inv.Status)
	assert.Equal(t, "5000", inv.ExpectedReturn.String())

	// Record a short return
	w, env = doJSON(t, r, http.MethodPost, "/api/returns", gin.H{
		"date": "2026-02-15", "amount": "4000", "investmentId": inv.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var ret domain.Return
	assert.NoError(t, json.Unmarshal(env.Data, &ret))
	assert.True(t, ret.Warning)

	// Close
	w, env = doJSON(t, r, http.MethodPost, "/api/investments/"+inv.ID.String()+"/close", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var closeResp struct {
		Closed bool `json:"closed"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &closeResp))
	assert.True(t, closeResp.Closed)

	// Closing again reports the silent skip
	w, env = doJSON(t, r, http.MethodPost, "/api/investments/"+inv.ID.String()+"/close", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &closeResp))
	assert.False(t, closeResp.Closed)

	// Per-investment returns
	w, env = doJSON(t, r, http.MethodGet, "/api/investments/"+inv.ID.String()+"/returns", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var returns []domain.Return
	assert.NoError(t, json.Unmarshal(env.Data, &returns))
	assert.Len(t, returns, 1)
}

func TestInvestments_StatusFilter(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/investments", gin.H{"amount": "10000"})

	w, env := doJSON(t, r, http.MethodGet, "/api/investments?status=Active", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var invs []domain.Investment
	assert.NoError(t, json.Unmarshal(env.Data, &invs))
	assert.Len(t, invs, 1)

	w, _ = doJSON(t, r, http.MethodGet, "/api/investments?status=Bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManualTransaction_Validation(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})

	w, env := doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"type": "Personal Expense", "description": "", "amount": "500",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "description")

	w, _ = doJSON(t, r, http.MethodPost, "/api/transactions", gin.H{
		"type": "Personal Expense", "description": "Dinner", "amount": "500",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboard_SummaryAndLedger(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/investments", gin.H{"amount": "50000"})

	w, env := doJSON(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var sum dashboard.Summary
	assert.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, "50000", sum.AvailableBalance.String())
	assert.Equal(t, "5000", sum.ExpectedMonthlyIncome.String())

	w, env = doJSON(t, r, http.MethodGet, "/api/ledger", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var entries []domain.LedgerEntry
	assert.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Len(t, entries, 2)

	w, env = doJSON(t, r, http.MethodGet, "/api/ledger?recent=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, domain.EntryTypeCapitalGiven, entries[0].Type)
}

func TestReset_ClearsState(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})

	w, _ := doJSON(t, r, http.MethodPost, "/api/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var sum dashboard.Summary
	assert.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.False(t, sum.SetupComplete)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
