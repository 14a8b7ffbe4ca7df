package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/SarthakSwaroop/Finance/internal/auth"
	"github.com/SarthakSwaroop/Finance/internal/ledger"
	"github.com/SarthakSwaroop/Finance/internal/quote"
	"github.com/SarthakSwaroop/Finance/internal/trading"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Handler wires the core into gin routes. It owns no business rules:
// validation and ledger math live in internal/ledger, trade serialization
// in internal/trading.
type Handler struct {
	store        ledger.Store
	engine       *ledger.Engine
	processor    *trading.Processor
	oracle       quote.Oracle
	tokens       *auth.TokenManager
	startingCash decimal.Decimal
}

// New constructs the handler set.
func New(store ledger.Store, engine *ledger.Engine, processor *trading.Processor, oracle quote.Oracle, tokens *auth.TokenManager, startingCash decimal.Decimal) *Handler {
	return &Handler{
		store:        store,
		engine:       engine,
		processor:    processor,
		oracle:       oracle,
		tokens:       tokens,
		startingCash: startingCash,
	}
}

// Register attaches all routes to the router.
func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/register", h.RegisterUser)
		api.POST("/login", h.Login)
		api.GET("/check", h.CheckUsername)

		authed := api.Group("", h.RequireAuth)
		{
			authed.GET("/quote/:symbol", h.Quote)
			authed.POST("/trades/buy", h.Buy)
			authed.POST("/trades/sell", h.Sell)
			authed.GET("/history", h.History)
			authed.GET("/portfolio", h.Portfolio)
			authed.GET("/positions/:symbol", h.Position)
		}
	}

	router.GET("/ws/prices", h.RequireAuth, h.PriceStream)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

// tradeError maps ledger errors to HTTP statuses. Everything in the
// taxonomy is recoverable at the request boundary.
func tradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientHoldings),
		errors.Is(err, ledger.ErrQuoteUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrDataIntegrity):
		log.Printf("ledger integrity failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger integrity failure"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
