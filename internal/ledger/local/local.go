// Package local serves ledger.Gateway straight from a repository, so the
// backend can run batch imports and exports through ledger.Service without a
// network hop.
package local

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type Gateway struct {
	repo ledger.Repository
}

var _ ledger.Gateway = (*Gateway)(nil)

func New(repo ledger.Repository) *Gateway {
	return &Gateway{repo: repo}
}

func (g *Gateway) Create(ctx context.Context, e ledger.Entry) (int64, error) {
	if err := g.repo.CreateEntry(ctx, &e); err != nil {
		return 0, err
	}

	return e.No, nil
}

func (g *Gateway) Update(ctx context.Context, e ledger.Entry) error {
	return g.repo.UpdateEntry(ctx, &e)
}

func (g *Gateway) Delete(ctx context.Context, no int64) error {
	return g.repo.DeleteEntry(ctx, no)
}

func (g *Gateway) FetchByID(ctx context.Context, no int64) (*ledger.Entry, error) {
	return g.repo.GetEntry(ctx, no)
}

func (g *Gateway) FetchByQuery(ctx context.Context, q ledger.QueryParams) ([]ledger.Entry, error) {
	return g.repo.ListEntries(ctx, q)
}

func (g *Gateway) TypeCodes(ctx context.Context) ([]ledger.ReferenceCode, error) {
	return g.repo.ListCodes(ctx, ledger.GroupType)
}

func (g *Gateway) PaymentCodes(ctx context.Context) ([]ledger.ReferenceCode, error) {
	return g.repo.ListCodes(ctx, ledger.GroupPayment)
}

func (g *Gateway) Expenditure(ctx context.Context, start, end time.Time) ([]ledger.Expenditure, error) {
	return g.repo.SumExpenditure(ctx, start, end)
}
