package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/SarthakSwaroop/Finance/internal/quote"
	"github.com/shopspring/decimal"
)

// Engine derives current financial state from the immutable transaction
// log. Nothing here is ever cached or written back: the log plus a fresh
// oracle fetch is the single source of truth, so every read replays the
// user's full history.
type Engine struct {
	store  Store
	oracle quote.Oracle
}

// NewEngine creates an engine over the given store and price oracle.
func NewEngine(store Store, oracle quote.Oracle) *Engine {
	return &Engine{store: store, oracle: oracle}
}

// FundsAvailable returns starting cash plus the signed sum over all of the
// user's transactions. Purchases carry a negative unit price and sales a
// positive one, so the sum needs no branching.
func (e *Engine) FundsAvailable(ctx context.Context, userID int64) (decimal.Decimal, error) {
	cash, err := e.store.StartingCash(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	txs, err := e.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	funds := cash
	for _, tx := range txs {
		funds = funds.Add(tx.Quantity.Mul(tx.Price))
	}
	return funds, nil
}

// Holdings returns the quantity held per symbol: purchases add, sales
// subtract. Symbols that net out to zero are omitted. A negative net
// quantity means the log itself is corrupt and is reported as
// ErrDataIntegrity, never silently clamped.
func (e *Engine) Holdings(ctx context.Context, userID int64) (map[string]decimal.Decimal, error) {
	txs, err := e.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return replayHoldings(txs)
}

func replayHoldings(txs []models.Transaction) (map[string]decimal.Decimal, error) {
	held := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		signed := tx.Quantity.Mul(decimal.NewFromInt(int64(-tx.Type.Direction())))
		held[tx.Symbol] = held[tx.Symbol].Add(signed)
	}
	for symbol, qty := range held {
		if qty.IsNegative() {
			return nil, fmt.Errorf("%w: %s held quantity is %s", ErrDataIntegrity, symbol, qty)
		}
		if qty.IsZero() {
			delete(held, symbol)
		}
	}
	return held, nil
}

// AverageCostBasis returns the mean unit price across the user's purchase
// transactions for symbol. Sales never move the average. The second return
// is false when the user has no purchases for the symbol.
func (e *Engine) AverageCostBasis(ctx context.Context, userID int64, symbol string) (decimal.Decimal, bool, error) {
	txs, err := e.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	sum := decimal.Zero
	count := int64(0)
	for _, tx := range txs {
		if tx.Symbol != symbol || tx.Type != models.Purchase {
			continue
		}
		sum = sum.Add(tx.Price.Abs())
		count++
	}
	if count == 0 {
		return decimal.Decimal{}, false, nil
	}
	return sum.Div(decimal.NewFromInt(count)), true, nil
}

// WalletValue prices every held position with a fresh oracle fetch and
// returns the full statement. A position whose quote fails is flagged
// unpriced and left out of the total rather than valued at zero.
func (e *Engine) WalletValue(ctx context.Context, userID int64) (models.WalletStatement, error) {
	funds, err := e.FundsAvailable(ctx, userID)
	if err != nil {
		return models.WalletStatement{}, err
	}
	held, err := e.Holdings(ctx, userID)
	if err != nil {
		return models.WalletStatement{}, err
	}

	symbols := make([]string, 0, len(held))
	for symbol := range held {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	statement := models.WalletStatement{
		Rows:  make([]models.HoldingRow, 0, len(symbols)),
		Funds: funds,
		Total: funds,
	}
	for _, symbol := range symbols {
		row := models.HoldingRow{Symbol: symbol, Quantity: held[symbol]}
		q, err := e.oracle.Lookup(ctx, symbol)
		if err != nil {
			row.Unpriced = true
		} else {
			row.Price = q.Price
			row.Value = held[symbol].Mul(q.Price)
			statement.Total = statement.Total.Add(row.Value)
		}
		statement.Rows = append(statement.Rows, row)
	}
	return statement, nil
}

// History returns the user's transactions newest first, each annotated
// with its unsigned total value and a purchase/sale label, along with the
// funds available after the full log.
func (e *Engine) History(ctx context.Context, userID int64) ([]models.HistoryRow, decimal.Decimal, error) {
	txs, err := e.store.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}
	funds, err := e.FundsAvailable(ctx, userID)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}

	rows := make([]models.HistoryRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, models.HistoryRow{
			Symbol:    tx.Symbol,
			Type:      tx.Type,
			Quantity:  tx.Quantity,
			Price:     tx.Price,
			Total:     tx.Quantity.Mul(tx.Price.Abs()),
			CreatedAt: tx.CreatedAt,
		})
	}
	return rows, funds, nil
}
