package chat

import (
	"context"

	"github.com/drivelane/showroom/internal/domain/finance"
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/repository/history"
	"github.com/drivelane/showroom/internal/transport/openai"
	comparesvc "github.com/drivelane/showroom/internal/usecase/compare"
	financesvc "github.com/drivelane/showroom/internal/usecase/finance"
	searchsvc "github.com/drivelane/showroom/internal/usecase/search"
)

// QueryParser yields the structured parse used for routing.
type QueryParser interface {
	Parse(text string) query.Result
}

// Searcher runs the search entry point.
type Searcher interface {
	Search(ctx context.Context, text string) (searchsvc.Response, error)
}

// Comparer runs the comparison entry point.
type Comparer interface {
	CompareText(ctx context.Context, text string) (comparesvc.Result, error)
}

// Financier produces financing quotes.
type Financier interface {
	Aggregate(ctx context.Context, p finance.Params) (financesvc.Quote, error)
}

// History is the bounded per-session transcript store.
type History interface {
	Append(ctx context.Context, sessionID string, msg history.Message) error
	Recent(ctx context.Context, sessionID string) ([]history.Message, error)
}

// Completer drafts a free-form reply when deterministic routing
// resolves nothing useful.
type Completer interface {
	Complete(ctx context.Context, system string, msgs []openai.Message) (string, error)
}
