package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/domain/finance"
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
	"github.com/drivelane/showroom/internal/repository/history"
	"github.com/drivelane/showroom/internal/transport/openai"
	comparesvc "github.com/drivelane/showroom/internal/usecase/compare"
	financesvc "github.com/drivelane/showroom/internal/usecase/finance"
	searchsvc "github.com/drivelane/showroom/internal/usecase/search"
)

type stubParser struct {
	result query.Result
}

func (s stubParser) Parse(string) query.Result { return s.result }

type stubSearcher struct {
	resp searchsvc.Response
	err  error
}

func (s stubSearcher) Search(context.Context, string) (searchsvc.Response, error) {
	return s.resp, s.err
}

type stubComparer struct {
	result comparesvc.Result
	err    error
}

func (s stubComparer) CompareText(context.Context, string) (comparesvc.Result, error) {
	return s.result, s.err
}

type stubFinancier struct {
	quote financesvc.Quote
	err   error
}

func (s stubFinancier) Aggregate(_ context.Context, p finance.Params) (financesvc.Quote, error) {
	return s.quote, s.err
}

type memHistory struct {
	msgs map[string][]history.Message
}

func newMemHistory() *memHistory {
	return &memHistory{msgs: make(map[string][]history.Message)}
}

func (m *memHistory) Append(_ context.Context, sessionID string, msg history.Message) error {
	m.msgs[sessionID] = append(m.msgs[sessionID], msg)
	return nil
}

func (m *memHistory) Recent(_ context.Context, sessionID string) ([]history.Message, error) {
	return m.msgs[sessionID], nil
}

type stubCompleter struct {
	reply string
	err   error
	seen  []openai.Message
}

func (s *stubCompleter) Complete(_ context.Context, _ string, msgs []openai.Message) (string, error) {
	s.seen = msgs
	return s.reply, s.err
}

func camry() vehicle.Vehicle {
	return vehicle.Vehicle{
		ID: "camry", Year: 2025, Make: "Toyota", Model: "Camry", Trim: "LE Hybrid",
		MSRP: 30000,
	}
}

func TestRespond_SearchIntent(t *testing.T) {
	hist := newMemHistory()
	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch, Confidence: 0.8}},
		stubSearcher{resp: searchsvc.Response{Vehicles: []vehicle.Vehicle{camry()}}},
		stubComparer{},
		stubFinancier{},
		hist,
		nil,
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "", "hybrid sedan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.SessionID == "" {
		t.Error("empty session id should be replaced with a generated one")
	}
	if resp.Intent != query.IntentSearch {
		t.Errorf("intent = %s, want search", resp.Intent)
	}
	if resp.Search == nil || len(resp.Search.Vehicles) != 1 {
		t.Error("search payload missing")
	}
	if !strings.Contains(resp.Reply, "Found 1") {
		t.Errorf("reply = %q, want a found summary", resp.Reply)
	}
}

func TestRespond_FinanceIntent(t *testing.T) {
	quote := financesvc.Quote{
		Purchase:     finance.Calculation{Scenario: finance.ScenarioPurchase, MonthlyPayment: 592},
		Lease:        finance.Calculation{Scenario: finance.ScenarioLease, MonthlyPayment: 359},
		Subscription: finance.Calculation{Scenario: finance.ScenarioSubscription, MonthlyPayment: 550},
	}
	svc := New(
		stubParser{query.Result{Intent: query.IntentFinance}},
		stubSearcher{resp: searchsvc.Response{Vehicles: []vehicle.Vehicle{camry()}}},
		stubComparer{},
		stubFinancier{quote: quote},
		newMemHistory(),
		nil,
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "s1", "how much is the camry monthly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.SessionID != "s1" {
		t.Errorf("session id = %q, want s1", resp.SessionID)
	}
	if resp.Quote == nil {
		t.Fatal("quote payload missing")
	}
	if !strings.Contains(resp.Reply, "$592/mo") {
		t.Errorf("reply = %q, want the purchase monthly", resp.Reply)
	}
}

func TestRespond_CompareIntent(t *testing.T) {
	result := comparesvc.Result{
		Resolved: true,
		First:    comparesvc.Side{Vehicle: camry()},
		Second: comparesvc.Side{Vehicle: vehicle.Vehicle{
			ID: "accord", Year: 2025, Make: "Honda", Model: "Accord", Trim: "Hybrid",
			MSRP: 32000,
		}},
		Differences: comparesvc.Differences{Price: 2000},
	}
	svc := New(
		stubParser{query.Result{Intent: query.IntentCompare}},
		stubSearcher{},
		stubComparer{result: result},
		stubFinancier{},
		newMemHistory(),
		nil,
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "s1", "camry vs accord")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Comparison == nil || !resp.Comparison.Resolved {
		t.Fatal("comparison payload missing")
	}
	if !strings.Contains(resp.Reply, "difference of $2000") {
		t.Errorf("reply = %q, want the price difference", resp.Reply)
	}
}

func TestRespond_FallbackUsesCompleter(t *testing.T) {
	completer := &stubCompleter{reply: "Try telling me a budget."}
	hist := newMemHistory()
	hist.msgs["s1"] = []history.Message{{Role: history.RoleUser, Content: "hello"}}

	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch}},
		stubSearcher{resp: searchsvc.Response{}},
		stubComparer{},
		stubFinancier{},
		hist,
		completer,
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "s1", "hmm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != "Try telling me a budget." {
		t.Errorf("reply = %q, want the completer's draft", resp.Reply)
	}
	// Prior transcript plus the current turn.
	if len(completer.seen) != 2 {
		t.Errorf("completer saw %d messages, want 2", len(completer.seen))
	}
}

func TestRespond_CompleterFailureDegrades(t *testing.T) {
	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch}},
		stubSearcher{resp: searchsvc.Response{}},
		stubComparer{},
		stubFinancier{},
		newMemHistory(),
		&stubCompleter{err: errors.New("provider down")},
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "s1", "hmm")
	if err != nil {
		t.Fatalf("completion failure must not surface: %v", err)
	}
	if !strings.Contains(resp.Reply, "could not find") {
		t.Errorf("reply = %q, want the deterministic fallback", resp.Reply)
	}
}

func TestRespond_NilCompleter(t *testing.T) {
	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch}},
		stubSearcher{resp: searchsvc.Response{}},
		stubComparer{},
		stubFinancier{},
		newMemHistory(),
		nil,
		zap.NewNop(),
	)

	resp, err := svc.Respond(context.Background(), "s1", "hmm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Reply, "could not find") {
		t.Errorf("reply = %q, want the deterministic fallback", resp.Reply)
	}
}

func TestRespond_RecordsTranscript(t *testing.T) {
	hist := newMemHistory()
	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch}},
		stubSearcher{resp: searchsvc.Response{Vehicles: []vehicle.Vehicle{camry()}}},
		stubComparer{},
		stubFinancier{},
		hist,
		nil,
		zap.NewNop(),
	)

	if _, err := svc.Respond(context.Background(), "s1", "hybrid sedan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := hist.msgs["s1"]
	if len(msgs) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != history.RoleUser || msgs[0].Content != "hybrid sedan" {
		t.Errorf("first message = %+v, want the user turn", msgs[0])
	}
	if msgs[1].Role != history.RoleAssistant {
		t.Errorf("second message role = %s, want assistant", msgs[1].Role)
	}
}

func TestRespond_SearchErrorSurfaces(t *testing.T) {
	svc := New(
		stubParser{query.Result{Intent: query.IntentSearch}},
		stubSearcher{err: errors.New("index gone")},
		stubComparer{},
		stubFinancier{},
		newMemHistory(),
		nil,
		zap.NewNop(),
	)

	if _, err := svc.Respond(context.Background(), "s1", "hybrid sedan"); err == nil {
		t.Fatal("expected the search error to surface")
	}
}
