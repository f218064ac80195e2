package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/service"
)

// Handlers exposes the ledger service over HTTP.
type Handlers struct {
	svc *service.LedgerService
}

// NewHandlers constructs the HTTP handler set.
func NewHandlers(svc *service.LedgerService) *Handlers {
	return &Handlers{svc: svc}
}

type addMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type renameMemberRequest struct {
	Name string `json:"name"`
}

type contributionRequest struct {
	MemberID string `json:"member_id"`
	Amount   string `json:"amount"`
}

type participantRequest struct {
	MemberID string   `json:"member_id"`
	Weight   *float64 `json:"weight"`
	Included *bool    `json:"included"`
}

type addExpenseRequest struct {
	Description string `json:"description"`

	// Total is optional when contributions are given; it is then derived
	// as their sum.
	Total string `json:"total"`

	// PayerID is a shorthand for the common single-payer case: when set
	// and contributions are empty, the payer contributes the full total.
	PayerID string `json:"payer_id"`

	Contributions []contributionRequest `json:"contributions"`
	Participants  []participantRequest  `json:"participants"`
}

type balanceView struct {
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
}

type transferView struct {
	From        string `json:"from"`
	FromName    string `json:"from_name"`
	To          string `json:"to"`
	ToName      string `json:"to_name"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

func (h *Handlers) listMembers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"members": h.svc.Members()})
}

func (h *Handlers) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	member, err := h.svc.AddMember(r.Context(), req.Name, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

func (h *Handlers) renameMember(w http.ResponseWriter, r *http.Request) {
	var req renameMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	member, err := h.svc.RenameMember(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

func (h *Handlers) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveMember(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listExpenses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"expenses": h.svc.Expenses()})
}

func (h *Handlers) addExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	expense, err := expenseFromRequest(req)
	if err != nil {
		respondError(w, err)
		return
	}

	added, err := h.svc.AddExpense(r.Context(), expense)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

func (h *Handlers) removeExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveExpense(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) balances(w http.ResponseWriter, r *http.Request) {
	balances := h.svc.Balances()

	// Present in registration order.
	views := make([]balanceView, 0, len(balances))
	for _, m := range h.svc.Members() {
		views = append(views, balanceView{
			MemberID:     m.ID,
			Name:         m.Name,
			BalanceCents: balances[m.ID],
			Balance:      money.FormatCents(balances[m.ID]),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"balances": views})
}

func (h *Handlers) settlement(w http.ResponseWriter, r *http.Request) {
	transfers := h.svc.Settlement()
	settlementsComputed.Inc()
	respondJSON(w, http.StatusOK, map[string]any{
		"transfers": h.transferViews(transfers),
	})
}

func (h *Handlers) notifySettlement(w http.ResponseWriter, r *http.Request) {
	transfers, sent, err := h.svc.NotifySettlement(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	settlementsComputed.Inc()
	noticesSent.Add(float64(sent))
	respondJSON(w, http.StatusOK, map[string]any{
		"transfers":    h.transferViews(transfers),
		"notices_sent": sent,
	})
}

func (h *Handlers) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Export()
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) importSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if err := h.svc.Import(r.Context(), data); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) transferViews(transfers []models.Transfer) []transferView {
	names := make(map[string]string)
	for _, m := range h.svc.Members() {
		names[m.ID] = m.Name
	}

	views := make([]transferView, len(transfers))
	for i, t := range transfers {
		views[i] = transferView{
			From:        t.From,
			FromName:    names[t.From],
			To:          t.To,
			ToName:      names[t.To],
			AmountCents: t.AmountCents,
			Amount:      money.FormatCents(t.AmountCents),
		}
	}
	return views
}

// expenseFromRequest converts boundary decimal strings into the internal
// cent-based model and expands the single-payer shorthand.
func expenseFromRequest(req addExpenseRequest) (models.Expense, error) {
	expense := models.Expense{Description: req.Description}

	if req.Total != "" {
		total, err := money.ParseCents(req.Total)
		if err != nil {
			return models.Expense{}, fmt.Errorf("%w: total %q", ledger.ErrValidation, req.Total)
		}
		expense.TotalCents = total
	}

	for _, c := range req.Contributions {
		amount, err := money.ParseCents(c.Amount)
		if err != nil {
			return models.Expense{}, fmt.Errorf("%w: contribution amount %q", ledger.ErrValidation, c.Amount)
		}
		expense.Contributions = append(expense.Contributions, models.Contribution{
			MemberID:    c.MemberID,
			AmountCents: amount,
		})
	}

	if req.PayerID != "" && len(expense.Contributions) == 0 {
		if expense.TotalCents == 0 {
			return models.Expense{}, fmt.Errorf("%w: payer_id requires a total", ledger.ErrValidation)
		}
		expense.Contributions = []models.Contribution{
			{MemberID: req.PayerID, AmountCents: expense.TotalCents},
		}
	}

	for _, p := range req.Participants {
		share := models.Share{MemberID: p.MemberID, Weight: 1, Included: true}
		if p.Weight != nil {
			share.Weight = *p.Weight
		}
		if p.Included != nil {
			share.Included = *p.Included
		}
		expense.Shares = append(expense.Shares, share)
	}

	return expense, nil
}

// respondError maps engine errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, money.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
