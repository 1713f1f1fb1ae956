package dashboard

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// StateProvider supplies a point-in-time copy of the engine state
type StateProvider interface {
	State() domain.Snapshot
}

// Service computes the derived read-only aggregates over the current
// state. Everything here is a pure function of the snapshot, recomputed
// on every read and never cached.
type Service struct {
	Engine StateProvider
}

// NewService creates a new dashboard Service instance
func NewService(engine StateProvider) *Service {
	return &Service{Engine: engine}
}

// Summary represents the full derived-aggregate set
type Summary struct {
	SetupComplete         bool            `json:"setupComplete"`
	TotalMoneyPool        decimal.Decimal `json:"totalMoneyPool"`
	ActiveCapital         decimal.Decimal `json:"activeCapital"`
	TotalInvested         decimal.Decimal `json:"totalInvested"`
	TotalReturns          decimal.Decimal `json:"totalReturns"`
	TotalWithdrawals      decimal.Decimal `json:"totalWithdrawals"`
	AvailableBalance      decimal.Decimal `json:"availableBalance"`
	ExpectedMonthlyIncome decimal.Decimal `json:"expectedMonthlyIncome"`
	NetProfit             decimal.Decimal `json:"netProfit"`
	BreakEvenProgress     decimal.Decimal `json:"breakEvenProgress"`
	MonthsUntilRecovery   *int64          `json:"monthsUntilRecovery"`
}

// Summary computes all derived aggregates from the current state
func (s *Service) Summary() Summary {
	snap := s.Engine.State()
	return summarize(&snap)
}

func summarize(snap *domain.Snapshot) Summary {
	activeCapital := decimal.Zero
	totalInvested := decimal.Zero
	for _, inv := range snap.Investments {
		totalInvested = totalInvested.Add(inv.Amount)
		if inv.Status == domain.InvestmentStatusActive {
			activeCapital = activeCapital.Add(inv.Amount)
		}
	}

	totalReturns := decimal.Zero
	for _, ret := range snap.Returns {
		totalReturns = totalReturns.Add(ret.Amount)
	}

	totalWithdrawals := decimal.Zero
	for _, tx := range snap.ManualTransactions {
		totalWithdrawals = totalWithdrawals.Add(tx.Amount)
	}

	expectedIncome := activeCapital.Mul(domain.MonthlyReturnRate)

	breakEven := decimal.Zero
	if totalInvested.IsPositive() {
		breakEven = totalReturns.Div(totalInvested).Mul(hundred)
		if breakEven.GreaterThan(hundred) {
			breakEven = hundred
		}
	}

	var months *int64
	if expectedIncome.IsPositive() {
		m := totalInvested.Sub(totalReturns).Div(expectedIncome).Ceil().IntPart()
		months = &m
	}

	return Summary{
		SetupComplete:         snap.Settings.SetupComplete,
		TotalMoneyPool:        snap.TotalMoneyPool,
		ActiveCapital:         activeCapital,
		TotalInvested:         totalInvested,
		TotalReturns:          totalReturns,
		TotalWithdrawals:      totalWithdrawals,
		AvailableBalance:      snap.LastBalance(),
		ExpectedMonthlyIncome: expectedIncome,
		NetProfit:             totalReturns,
		BreakEvenProgress:     breakEven,
		MonthsUntilRecovery:   months,
	}
}

// Alert levels
const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
	AlertInfo    = "info"
	AlertSuccess = "success"
)

// Alert is an advisory message derived from the current state
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Alerts derives the advisory banners shown on the dashboard
func (s *Service) Alerts() []Alert {
	snap := s.Engine.State()
	sum := summarize(&snap)

	alerts := []Alert{}
	if sum.AvailableBalance.IsNegative() {
		alerts = append(alerts, Alert{
			Level:   AlertDanger,
			Message: fmt.Sprintf("Available balance is negative: ₱%s", sum.AvailableBalance.StringFixed(2)),
		})
	}
	if sum.ActiveCapital.IsPositive() && len(snap.Returns) > 0 {
		last := snap.Returns[len(snap.Returns)-1]
		if last.Warning {
			alerts = append(alerts, Alert{
				Level: AlertWarning,
				Message: fmt.Sprintf("Last return (₱%s) was below expected (₱%s)",
					last.Amount.StringFixed(2), last.Expected.StringFixed(2)),
			})
		}
	}
	if sum.ActiveCapital.IsPositive() && len(snap.Returns) == 0 {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Message: "No monthly returns recorded yet. Remember to log your returns!",
		})
	}
	if sum.MonthsUntilRecovery != nil && *sum.MonthsUntilRecovery > 0 {
		plural := ""
		if *sum.MonthsUntilRecovery > 1 {
			plural = "s"
		}
		alerts = append(alerts, Alert{
			Level:   AlertInfo,
			Message: fmt.Sprintf("~%d month%s remaining until capital fully recovered", *sum.MonthsUntilRecovery, plural),
		})
	}
	if sum.TotalInvested.IsPositive() && sum.BreakEvenProgress.GreaterThanOrEqual(hundred) {
		alerts = append(alerts, Alert{
			Level:   AlertSuccess,
			Message: "Capital fully recovered! All returns from here are pure profit.",
		})
	}
	return alerts
}

// ReturnPoint is one received-vs-expected data point per recorded return
type ReturnPoint struct {
	Month    string          `json:"month"`
	Received decimal.Decimal `json:"received"`
	Expected decimal.Decimal `json:"expected"`
}

// ProfitPoint tracks cumulative returns against total invested capital
type ProfitPoint struct {
	Month      string          `json:"month"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Invested   decimal.Decimal `json:"invested"`
}

// BalancePoint is the running balance after each ledger entry
type BalancePoint struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
	Capital decimal.Decimal `json:"capital"`
}

// ChartData bundles the three chart series computed from one state read
type ChartData struct {
	Returns []ReturnPoint  `json:"returns"`
	Profit  []ProfitPoint  `json:"profit"`
	Balance []BalancePoint `json:"balance"`
}

// Charts computes the chart series for the presentation layer
func (s *Service) Charts() ChartData {
	snap := s.Engine.State()
	sum := summarize(&snap)

	data := ChartData{
		Returns: make([]ReturnPoint, 0, len(snap.Returns)),
		Profit:  make([]ProfitPoint, 0, len(snap.Returns)),
		Balance: make([]BalancePoint, 0, len(snap.Transactions)),
	}

	cumulative := decimal.Zero
	for _, ret := range snap.Returns {
		month := ret.Date.Format("Jan 2006")
		data.Returns = append(data.Returns, ReturnPoint{
			Month:    month,
			Received: ret.Amount,
			Expected: ret.Expected,
		})
		cumulative = cumulative.Add(ret.Amount)
		data.Profit = append(data.Profit, ProfitPoint{
			Month:      month,
			Cumulative: cumulative,
			Invested:   sum.TotalInvested,
		})
	}

	for _, tx := range snap.Transactions {
		data.Balance = append(data.Balance, BalancePoint{
			Date:    tx.Date.Format("Jan 02"),
			Balance: tx.BalanceAfter,
			Capital: sum.ActiveCapital,
		})
	}
	return data
}

// RecentActivity returns the last n ledger entries, newest first
func (s *Service) RecentActivity(n int) []domain.LedgerEntry {
	snap := s.Engine.State()
	entries := snap.Transactions
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	out := make([]domain.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out
}

// InvestmentsByStatus lists investments filtered by status; an empty
// status returns all investments
func (s *Service) InvestmentsByStatus(status domain.InvestmentStatus) []domain.Investment {
	snap := s.Engine.State()
	if status == "" {
		return snap.Investments
	}
	out := []domain.Investment{}
	for _, inv := range snap.Investments {
		if inv.Status == status {
			out = append(out, inv)
		}
	}
	return out
}

// ReturnsForInvestment lists the returns recorded against one investment
func (s *Service) ReturnsForInvestment(investmentID uuid.UUID) []domain.Return {
	snap := s.Engine.State()
	out := []domain.Return{}
	for _, ret := range snap.Returns {
		if ret.InvestmentID == investmentID {
			out = append(out, ret)
		}
	}
	return out
}
