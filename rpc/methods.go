package rpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ArbiterXofficial/arbiterx-quotes/aggregator"
	"github.com/ArbiterXofficial/arbiterx-quotes/metrics"
	"github.com/ArbiterXofficial/arbiterx-quotes/models"
)

// QuoteHandler dispatches the JSON action requests the front end sends to
// the service root.
type QuoteHandler struct {
	agg *aggregator.Aggregator
}

// NewQuoteHandler creates the action dispatch handler.
func NewQuoteHandler(agg *aggregator.Aggregator) *QuoteHandler {
	return &QuoteHandler{agg: agg}
}

// actionRequest is the common envelope for all actions. The swap fields are
// only read for getQuote and the chain field only for getSupportedTokens.
type actionRequest struct {
	Action string `json:"action"`
	models.SwapRequest
	Chain string `json:"chain"`
}

type quoteResponse struct {
	Success bool `json:"success"`
	*models.QuoteResult
}

type chainsResponse struct {
	Success bool               `json:"success"`
	Chains  []models.ChainInfo `json:"chains"`
}

type tokensResponse struct {
	Success bool               `json:"success"`
	Tokens  []models.TokenInfo `json:"tokens"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ServeAction handles POST / with a JSON body of the form
// {"action": "...", ...params}.
func (h *QuoteHandler) ServeAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	switch req.Action {
	case "getQuote":
		h.getQuote(w, r, &req.SwapRequest)
	case "getSupportedChains":
		writeJSON(w, http.StatusOK, chainsResponse{
			Success: true,
			Chains:  h.agg.SupportedChains(),
		})
	case "getSupportedTokens":
		writeJSON(w, http.StatusOK, tokensResponse{
			Success: true,
			Tokens:  h.agg.SupportedTokens(req.Chain),
		})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown action"})
	}
}

func (h *QuoteHandler) getQuote(w http.ResponseWriter, r *http.Request, req *models.SwapRequest) {
	route := "same_chain"
	if !strings.EqualFold(req.FromChain, req.ToChain) {
		route = "cross_chain"
	}

	result, err := h.agg.GetQuote(r.Context(), req)
	if err != nil {
		if errors.Is(err, aggregator.ErrInvalidRequest) {
			metrics.QuoteRequestsTotal.WithLabelValues(route, "invalid").Inc()
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		metrics.QuoteRequestsTotal.WithLabelValues(route, "error").Inc()
		Logger.Error().Err(err).Msg("getQuote failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	metrics.QuoteRequestsTotal.WithLabelValues(route, "success").Inc()
	writeJSON(w, http.StatusOK, quoteResponse{Success: true, QuoteResult: result})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	// quotes go stale fast, never cache them
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		Logger.Error().Err(err).Msg("failed to encode response")
	}
}
