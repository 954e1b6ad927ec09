package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrack/internal/core"
)

type subscriptionRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"` // decimal string, dot or comma separator
	Currency  string `json:"currency"`
	Cycle     string `json:"cycle"`
	StartDate string `json:"start_date"`
}

type subscriptionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Cycle       string `json:"cycle"`
	StartDate   string `json:"start_date"`
	NextDueDate string `json:"next_due_date"`
}

type summaryResponse struct {
	Count        int   `json:"count"`
	MonthlyCents int64 `json:"monthly_cents"`
	AnnualCents  int64 `json:"annual_cents"`
}

type calendarResponse struct {
	Day    string                 `json:"day"`
	Events []subscriptionResponse `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// nowParam reads the optional "now" query parameter, defaulting to today.
// Every due-date derivation on the read path goes through this so responses
// are reproducible when the caller pins the date.
func nowParam(r *http.Request) (core.Date, error) {
	v := strings.TrimSpace(r.URL.Query().Get("now"))
	if v == "" {
		return core.DateOf(time.Now()), nil
	}
	return core.ParseDate(v)
}

func toResponse(sub core.Subscription, now core.Date) subscriptionResponse {
	return subscriptionResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		AmountCents: sub.Amount.Cents,
		Currency:    sub.Currency,
		Cycle:       string(sub.Cycle),
		StartDate:   sub.StartDate.ISO(),
		NextDueDate: core.NextDueDate(sub.StartDate, sub.Cycle, now).ISO(),
	}
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSubscription(w, r)
	case http.MethodGet:
		s.handleListSubscriptions(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	now, err := nowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid now, expected YYYY-MM-DD")
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Parse request error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	start, err := core.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid start_date, expected YYYY-MM-DD")
		return
	}

	// Subscriptions begin in the past or today; a future start date is a
	// client mistake, not a scheduling feature.
	if start.After(now.Time) {
		writeError(w, http.StatusUnprocessableEntity, "start_date cannot be after today")
		return
	}

	sub := core.Subscription{
		ID:        core.NewID(),
		Name:      strings.TrimSpace(req.Name),
		Amount:    core.Money{Cents: cents},
		Currency:  strings.TrimSpace(req.Currency),
		Cycle:     core.Cycle(req.Cycle),
		StartDate: start,
	}

	if err := s.svc.Create(r.Context(), sub); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create subscription error", "error", err, "name", sub.Name)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}

	s.invalidateReadCaches()
	writeJSON(w, http.StatusCreated, toResponse(sub, now))
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	now, err := nowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid now, expected YYYY-MM-DD")
		return
	}

	key := now.ISO()
	if subs, found := s.listCache.Get(key); found {
		slog.DebugContext(r.Context(), "List cache hit", "now", key)
		writeList(w, subs, now)
		return
	}

	subs, err := s.svc.List(r.Context(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "List subscriptions error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}

	s.listCache.Set(key, subs)
	writeList(w, subs, now)
}

func writeList(w http.ResponseWriter, subs []core.Subscription, now core.Date) {
	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toResponse(sub, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubscriptionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/subscriptions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing subscription id")
		return
	}

	// Removing an unknown id is a no-op and still returns 204.
	if err := s.svc.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Remove subscription error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to remove subscription")
		return
	}

	s.invalidateReadCaches()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now, err := nowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid now, expected YYYY-MM-DD")
		return
	}

	key := now.ISO()
	if sum, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "now", key)
		writeSummary(w, sum)
		return
	}

	sum, err := s.svc.Summary(r.Context(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	s.summaryCache.Set(key, sum)
	writeSummary(w, sum)
}

func writeSummary(w http.ResponseWriter, sum core.Summary) {
	writeJSON(w, http.StatusOK, summaryResponse{
		Count:        sum.Count,
		MonthlyCents: sum.Monthly.Cents,
		AnnualCents:  sum.Annual.Cents,
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	day, err := core.ParseDate(r.URL.Query().Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
		return
	}

	now, err := nowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid now, expected YYYY-MM-DD")
		return
	}

	horizon := s.horizonDays
	if v := strings.TrimSpace(r.URL.Query().Get("horizon")); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 {
			writeError(w, http.StatusBadRequest, "invalid horizon, expected a non-negative integer")
			return
		}
		horizon = h
	}

	events, err := s.svc.EventsOnDay(r.Context(), day, now, horizon)
	if err != nil {
		slog.ErrorContext(r.Context(), "Calendar error", "error", err, "day", day.ISO())
		writeError(w, http.StatusInternalServerError, "failed to read calendar")
		return
	}

	resp := calendarResponse{Day: day.ISO(), Events: make([]subscriptionResponse, 0, len(events))}
	for _, sub := range events {
		resp.Events = append(resp.Events, toResponse(sub, now))
	}
	writeJSON(w, http.StatusOK, resp)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyName) ||
		errors.Is(err, core.ErrEmptyCurrency) ||
		errors.Is(err, core.ErrInvalidCycle) ||
		errors.Is(err, core.ErrInvalidDate)
}
