// Package chat orchestrates the conversational entry point: it routes
// each turn by intent to search, compare or finance, keeps a bounded
// per-session transcript, and falls back to the completion provider
// when the deterministic pass resolves nothing useful.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/domain/finance"
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/repository/history"
	"github.com/drivelane/showroom/internal/transport/openai"
	comparesvc "github.com/drivelane/showroom/internal/usecase/compare"
	financesvc "github.com/drivelane/showroom/internal/usecase/finance"
	searchsvc "github.com/drivelane/showroom/internal/usecase/search"
)

// Financing assumptions used when the shopper gives none.
const (
	defaultAPR        = 6.9
	defaultTermMonths = 60
)

const systemPrompt = "You are a helpful vehicle shopping assistant. " +
	"Answer briefly and only about vehicles, pricing and financing."

// Response is one chat turn's outcome. Exactly one of the payload
// fields is set, matching Intent.
type Response struct {
	SessionID  string              `json:"session_id"`
	Intent     query.Intent        `json:"intent"`
	Reply      string              `json:"reply"`
	Confidence float64             `json:"confidence"`
	Search     *searchsvc.Response `json:"search,omitempty"`
	Comparison *comparesvc.Result  `json:"comparison,omitempty"`
	Quote      *financesvc.Quote   `json:"quote,omitempty"`
}

// Service handles conversational turns.
type Service struct {
	parser    QueryParser
	search    Searcher
	compare   Comparer
	finance   Financier
	history   History
	completer Completer
	logger    *zap.Logger
}

// New creates a chat service. A nil completer disables the LLM
// fallback; deterministic replies are returned instead.
func New(
	parser QueryParser,
	search Searcher,
	compare Comparer,
	finance Financier,
	hist History,
	completer Completer,
	logger *zap.Logger,
) *Service {
	return &Service{
		parser:    parser,
		search:    search,
		compare:   compare,
		finance:   finance,
		history:   hist,
		completer: completer,
		logger:    logger,
	}
}

// Respond handles one turn. An empty sessionID starts a new session.
func (s *Service) Respond(ctx context.Context, sessionID, text string) (Response, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res := s.parser.Parse(text)
	resp := Response{SessionID: sessionID, Intent: res.Intent, Confidence: res.Confidence}

	var (
		reply    string
		resolved bool
		err      error
	)
	switch res.Intent {
	case query.IntentCompare:
		reply, resolved, err = s.handleCompare(ctx, text, &resp)
	case query.IntentFinance:
		reply, resolved, err = s.handleFinance(ctx, text, &resp)
	default:
		reply, resolved, err = s.handleSearch(ctx, text, &resp)
	}
	if err != nil {
		return Response{}, err
	}

	if !resolved {
		if llmReply, ok := s.fallback(ctx, sessionID, text); ok {
			reply = llmReply
		}
	}
	resp.Reply = reply

	s.record(ctx, sessionID, text, reply)
	return resp, nil
}

func (s *Service) handleSearch(
	ctx context.Context, text string, resp *Response,
) (string, bool, error) {
	out, err := s.search.Search(ctx, text)
	if err != nil {
		return "", false, fmt.Errorf("search: %w", err)
	}
	resp.Search = &out

	if len(out.Vehicles) == 0 {
		return "I could not find any vehicles matching that. Try a make, model or body type.",
			false, nil
	}

	names := make([]string, 0, len(out.Vehicles))
	for i, v := range out.Vehicles {
		if i == 3 {
			break
		}
		names = append(names, v.DisplayName())
	}
	reply := fmt.Sprintf("Found %d matching vehicles, including %s.",
		len(out.Vehicles), strings.Join(names, ", "))
	return reply, true, nil
}

func (s *Service) handleCompare(
	ctx context.Context, text string, resp *Response,
) (string, bool, error) {
	out, err := s.compare.CompareText(ctx, text)
	if err != nil {
		return "", false, fmt.Errorf("compare: %w", err)
	}
	resp.Comparison = &out

	if !out.Resolved {
		return "I could not tell which two vehicles to compare. Name both, like \"Camry vs Accord\".",
			false, nil
	}

	reply := fmt.Sprintf("The %s lists at $%.0f and the %s at $%.0f, a difference of $%.0f.",
		out.First.Vehicle.DisplayName(), out.First.Vehicle.MSRP,
		out.Second.Vehicle.DisplayName(), out.Second.Vehicle.MSRP,
		out.Differences.Price)
	return reply, true, nil
}

func (s *Service) handleFinance(
	ctx context.Context, text string, resp *Response,
) (string, bool, error) {
	out, err := s.search.Search(ctx, text)
	if err != nil {
		return "", false, fmt.Errorf("search: %w", err)
	}
	resp.Search = &out

	if len(out.Vehicles) == 0 {
		return "Tell me which vehicle you want financing numbers for.", false, nil
	}

	v := out.Vehicles[0]
	quote, err := s.finance.Aggregate(ctx, finance.Params{
		Price:      v.MSRP,
		APR:        defaultAPR,
		TermMonths: defaultTermMonths,
	})
	if err != nil {
		return "", false, fmt.Errorf("finance: %w", err)
	}
	resp.Quote = &quote

	reply := fmt.Sprintf(
		"For the %s over %d months at %.1f%% APR: purchase $%.0f/mo, lease $%.0f/mo, subscription $%.0f/mo.",
		v.DisplayName(), defaultTermMonths, defaultAPR,
		quote.Purchase.MonthlyPayment, quote.Lease.MonthlyPayment,
		quote.Subscription.MonthlyPayment)
	return reply, true, nil
}

// fallback asks the completion provider to draft a reply over the
// recent transcript. Any failure degrades to the deterministic reply.
func (s *Service) fallback(ctx context.Context, sessionID, text string) (string, bool) {
	if s.completer == nil {
		return "", false
	}

	msgs := make([]openai.Message, 0, 8)
	if recent, err := s.history.Recent(ctx, sessionID); err == nil {
		for _, m := range recent {
			msgs = append(msgs, openai.Message{Role: m.Role, Content: m.Content})
		}
	}
	msgs = append(msgs, openai.Message{Role: history.RoleUser, Content: text})

	reply, err := s.completer.Complete(ctx, systemPrompt, msgs)
	if err != nil {
		s.logger.Warn("completion fallback failed", zap.Error(err))
		return "", false
	}
	return reply, true
}

func (s *Service) record(ctx context.Context, sessionID, text, reply string) {
	if err := s.history.Append(ctx, sessionID, history.Message{
		Role: history.RoleUser, Content: text,
	}); err != nil {
		s.logger.Warn("failed to append history", zap.Error(err))
		return
	}
	if err := s.history.Append(ctx, sessionID, history.Message{
		Role: history.RoleAssistant, Content: reply,
	}); err != nil {
		s.logger.Warn("failed to append history", zap.Error(err))
	}
}
