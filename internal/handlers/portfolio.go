package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Quote handles GET /api/quote/:symbol with a fresh oracle lookup.
func (h *Handler) Quote(c *gin.Context) {
	q, err := h.oracle.Lookup(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "there is no such stock"})
		return
	}
	c.JSON(http.StatusOK, q)
}

// Portfolio handles GET /api/portfolio: every held position priced fresh,
// plus funds available and total net worth.
func (h *Handler) Portfolio(c *gin.Context) {
	statement, err := h.engine.WalletValue(c.Request.Context(), currentUser(c))
	if err != nil {
		tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// Position handles GET /api/positions/:symbol: quantity held, average
// purchase price, and a fresh quote for one symbol. This backs the sell
// form's pre-fill.
func (h *Handler) Position(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	userID := currentUser(c)

	held, err := h.engine.Holdings(c.Request.Context(), userID)
	if err != nil {
		tradeError(c, err)
		return
	}

	resp := gin.H{"symbol": symbol, "quantity": held[symbol]}

	if avg, ok, err := h.engine.AverageCostBasis(c.Request.Context(), userID, symbol); err != nil {
		tradeError(c, err)
		return
	} else if ok {
		resp["avg_purchase_price"] = avg
	}

	if q, err := h.oracle.Lookup(c.Request.Context(), symbol); err == nil {
		resp["price"] = q.Price
	} else {
		resp["unpriced"] = true
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/history: the full transaction log newest
// first, with the resulting funds available.
func (h *Handler) History(c *gin.Context) {
	rows, funds, err := h.engine.History(c.Request.Context(), currentUser(c))
	if err != nil {
		tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history": rows,
		"funds":   funds,
		"count":   len(rows),
	})
}
