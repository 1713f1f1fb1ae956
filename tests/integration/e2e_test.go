//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/adapter/handler"
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

// newServer wires the full stack over a snapshot file at path, the same
// way cmd/server does minus the listener and the database mirror.
func newServer(t *testing.T, path string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := snapshotfile.NewStore(path)
	ledgerSvc, err := ledger.NewService(context.Background(), store, mirror.Nop{}, zap.NewNop())
	require.NoError(t, err, "service should boot from snapshot at %s", path)
	return handler.NewRouter(ledgerSvc, dashboard.NewService(ledgerSvc), zap.NewNop())
}

func call(t *testing.T, r *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out))
}

// TestEndToEndFlow drives the complete lifecycle: setup -> invest ->
// return -> expense -> close, checking the running balance and derived
// aggregates at each step.
func TestEndToEndFlow(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "snapshot.json")
	r := newServer(t, snapshotPath)

	// Step A: initialize the pool
	status, env := call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})
	require.Equal(t, http.StatusOK, status, "setup should succeed: %s", env.Message)

	var entry domain.LedgerEntry
	decode(t, env.Data, &entry)
	assert.Equal(t, domain.EntryTypeInitialSetup, entry.Type)
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(100000)))

	// Step B: give out capital
	status, env = call(t, r, http.MethodPost, "/api/investments", gin.H{
		"date": "2026-01-10", "amount": "50000", "notes": "Lending batch Jan",
	})
	require.Equal(t, http.StatusOK, status)

	var inv domain.Investment
	decode(t, env.Data, &inv)
	require.Equal(t, domain.InvestmentStatusActive, inv.Status)
	assert.True(t, inv.ExpectedReturn.Equal(decimal.NewFromInt(5000)))

	status, env = call(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	var sum dashboard.Summary
	decode(t, env.Data, &sum)
	assert.True(t, sum.AvailableBalance.Equal(decimal.NewFromInt(50000)))
	assert.True(t, sum.ExpectedMonthlyIncome.Equal(decimal.NewFromInt(5000)))

	// Step C: record a full monthly return
	status, env = call(t, r, http.MethodPost, "/api/returns", gin.H{
		"date": "2026-02-10", "amount": "5000", "investmentId": inv.ID.String(),
	})
	require.Equal(t, http.StatusOK, status)

	var ret domain.Return
	decode(t, env.Data, &ret)
	assert.False(t, ret.Warning, "a return meeting the expected amount carries no warning")

	// Step D: a personal expense tied to that return
	status, env = call(t, r, http.MethodPost, "/api/transactions", gin.H{
		"type":        "Personal Expense",
		"description": "February budget",
		"amount":      "2000",
		"sourceType":  "return",
		"sourceId":    ret.ID.String(),
	})
	require.Equal(t, http.StatusOK, status)

	var tx domain.ManualTransaction
	decode(t, env.Data, &tx)
	assert.Equal(t, "Personal Expense", tx.Type)

	// Step E: close the investment, capital comes back
	status, env = call(t, r, http.MethodPost, "/api/investments/"+inv.ID.String()+"/close", nil)
	require.Equal(t, http.StatusOK, status)
	var closeResp struct {
		Closed bool `json:"closed"`
	}
	decode(t, env.Data, &closeResp)
	require.True(t, closeResp.Closed)

	// 100000 - 50000 + 5000 - 2000 + 50000
	status, env = call(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env.Data, &sum)
	assert.True(t, sum.AvailableBalance.Equal(decimal.NewFromInt(103000)),
		"got %s", sum.AvailableBalance.String())
	assert.True(t, sum.ActiveCapital.IsZero())
	assert.True(t, sum.TotalReturns.Equal(decimal.NewFromInt(5000)))
	assert.True(t, sum.TotalWithdrawals.Equal(decimal.NewFromInt(2000)))

	// The ledger holds one entry per mutation, newest sum intact
	status, env = call(t, r, http.MethodGet, "/api/ledger", nil)
	require.Equal(t, http.StatusOK, status)
	var entries []domain.LedgerEntry
	decode(t, env.Data, &entries)
	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		want := entries[i-1].BalanceAfter.Add(entries[i].Amount)
		assert.True(t, entries[i].BalanceAfter.Equal(want),
			"entry %d breaks the running balance: got %s, expected %s",
			i, entries[i].BalanceAfter.String(), want.String())
	}
}

// TestSnapshotReload boots a second server over the same snapshot file
// and verifies the derived aggregates reproduce exactly.
func TestSnapshotReload(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "snapshot.json")
	r := newServer(t, snapshotPath)

	_, _ = call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})
	_, env := call(t, r, http.MethodPost, "/api/investments", gin.H{"amount": "30000", "notes": "Reload check"})
	var inv domain.Investment
	decode(t, env.Data, &inv)
	_, _ = call(t, r, http.MethodPost, "/api/returns", gin.H{
		"amount": "2500", "investmentId": inv.ID.String(),
	})

	status, env := call(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	var before dashboard.Summary
	decode(t, env.Data, &before)

	// Fresh process over the same file
	r2 := newServer(t, snapshotPath)
	status, env = call(t, r2, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	var after dashboard.Summary
	decode(t, env.Data, &after)

	assert.Equal(t, before.SetupComplete, after.SetupComplete)
	assert.True(t, after.AvailableBalance.Equal(before.AvailableBalance))
	assert.True(t, after.ActiveCapital.Equal(before.ActiveCapital))
	assert.True(t, after.TotalReturns.Equal(before.TotalReturns))
	assert.True(t, after.ExpectedMonthlyIncome.Equal(before.ExpectedMonthlyIncome))
	assert.True(t, after.BreakEvenProgress.Equal(before.BreakEvenProgress))

	status, env = call(t, r2, http.MethodGet, "/api/investments/"+inv.ID.String()+"/returns", nil)
	require.Equal(t, http.StatusOK, status)
	var returns []domain.Return
	decode(t, env.Data, &returns)
	require.Len(t, returns, 1)
	assert.True(t, returns[0].Warning, "2500 against an expected 3000 is below target")
}

// TestResetAndReinitialize verifies reset wipes everything and the pool
// can be set up again from scratch.
func TestResetAndReinitialize(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "snapshot.json")
	r := newServer(t, snapshotPath)

	_, _ = call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})
	_, _ = call(t, r, http.MethodPost, "/api/investments", gin.H{"amount": "40000"})

	status, _ := call(t, r, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, status)

	status, env := call(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	var sum dashboard.Summary
	decode(t, env.Data, &sum)
	assert.False(t, sum.SetupComplete)
	assert.True(t, sum.AvailableBalance.IsZero())
	assert.True(t, sum.TotalInvested.IsZero())

	status, env = call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "20000"})
	require.Equal(t, http.StatusOK, status)
	var entry domain.LedgerEntry
	decode(t, env.Data, &entry)
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(20000)))

	// The wipe also survives a restart
	r2 := newServer(t, snapshotPath)
	status, env = call(t, r2, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env.Data, &sum)
	assert.True(t, sum.SetupComplete)
	assert.True(t, sum.AvailableBalance.Equal(decimal.NewFromInt(20000)))
	assert.True(t, sum.TotalInvested.IsZero())
}

// TestNegativeScenarios covers rejected inputs over the wire.
func TestNegativeScenarios(t *testing.T) {
	r := newServer(t, filepath.Join(t.TempDir(), "snapshot.json"))
	_, _ = call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "100000"})

	t.Run("InvalidSetupAmount", func(t *testing.T) {
		status, env := call(t, r, http.MethodPost, "/api/setup", gin.H{"amount": "0"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("MalformedInvestmentID", func(t *testing.T) {
		status, _ := call(t, r, http.MethodPost, "/api/investments/not-a-uuid/close", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("NegativeReturn", func(t *testing.T) {
		_, env := call(t, r, http.MethodPost, "/api/investments", gin.H{"amount": "10000"})
		var inv domain.Investment
		decode(t, env.Data, &inv)

		status, _ := call(t, r, http.MethodPost, "/api/returns", gin.H{
			"amount": "-100", "investmentId": inv.ID.String(),
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("EmptyTransactionDescription", func(t *testing.T) {
		status, _ := call(t, r, http.MethodPost, "/api/transactions", gin.H{
			"type": "Personal Expense", "amount": "100",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
