package trading

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/SarthakSwaroop/Finance/internal/ledger"
	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/SarthakSwaroop/Finance/internal/quote"
	"github.com/shopspring/decimal"
)

type tradeKind int

const (
	kindBuy tradeKind = iota
	kindSell
)

// Result carries the outcome of a processed trade back to the caller.
type Result struct {
	Transaction models.Transaction
	Quote       quote.Quote
	Err         error
}

type request struct {
	ctx      context.Context
	kind     tradeKind
	userID   int64
	symbol   string
	quantity decimal.Decimal
	resultCh chan Result
}

// Processor executes trades on a worker pool. Each trade is a single-shot
// two-phase operation: quote (outside any lock), then validate+append under
// the user's lock. A validation failure leaves the store untouched; the
// only write is the final append.
type Processor struct {
	workers   int
	queue     chan request
	stopCh    chan struct{}
	wg        sync.WaitGroup
	locks     *userLocks
	store     ledger.Store
	validator *ledger.Validator
	oracle    quote.Oracle
}

// NewProcessor creates a processor with the given worker count.
func NewProcessor(workers int, store ledger.Store, validator *ledger.Validator, oracle quote.Oracle) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		workers:   workers,
		queue:     make(chan request, 100),
		stopCh:    make(chan struct{}),
		locks:     newUserLocks(),
		store:     store,
		validator: validator,
		oracle:    oracle,
	}
}

// Start launches the worker pool.
func (p *Processor) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("started %d trade workers", p.workers)
}

// Stop drains the workers and waits for them to exit.
func (p *Processor) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	log.Println("trade processor stopped")
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			return
		case req := <-p.queue:
			req.resultCh <- p.process(req)
		}
	}
}

// Buy purchases quantity shares of symbol at the current quoted price.
func (p *Processor) Buy(ctx context.Context, userID int64, symbol string, quantity decimal.Decimal) (Result, error) {
	return p.submit(request{ctx: ctx, kind: kindBuy, userID: userID, symbol: symbol, quantity: quantity})
}

// Sell sells quantity shares of symbol at the current quoted price.
func (p *Processor) Sell(ctx context.Context, userID int64, symbol string, quantity decimal.Decimal) (Result, error) {
	return p.submit(request{ctx: ctx, kind: kindSell, userID: userID, symbol: symbol, quantity: quantity})
}

func (p *Processor) submit(req request) (Result, error) {
	req.resultCh = make(chan Result, 1)
	select {
	case p.queue <- req:
	case <-req.ctx.Done():
		return Result{}, req.ctx.Err()
	}
	select {
	case res := <-req.resultCh:
		return res, res.Err
	case <-req.ctx.Done():
		return Result{}, req.ctx.Err()
	}
}

// process runs one trade. The oracle call happens before the user's lock
// is taken so the critical section stays small; the funds/holdings check
// and the append are atomic with respect to other trades by the same user.
func (p *Processor) process(req request) Result {
	q, err := p.oracle.Lookup(req.ctx, req.symbol)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ledger.ErrQuoteUnavailable, err)}
	}

	p.locks.Lock(req.userID)
	defer p.locks.Unlock(req.userID)

	var tx models.Transaction
	switch req.kind {
	case kindBuy:
		tx, err = p.validator.ValidateBuy(req.ctx, req.userID, req.symbol, req.quantity, q.Price)
	case kindSell:
		tx, err = p.validator.ValidateSellAt(req.ctx, req.userID, req.symbol, req.quantity, q.Price)
	}
	if err != nil {
		return Result{Quote: q, Err: err}
	}

	appended, err := p.store.AppendTransaction(req.ctx, tx)
	if err != nil {
		return Result{Quote: q, Err: fmt.Errorf("append transaction: %w", err)}
	}
	return Result{Transaction: appended, Quote: q}
}
