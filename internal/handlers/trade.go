package handlers

import (
	"net/http"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/gin-gonic/gin"
)

// Buy handles POST /api/trades/buy. The price is discovered by a fresh
// quote on the server; the client only names symbol and share count.
func (h *Handler) Buy(c *gin.Context) {
	var req models.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.processor.Buy(c.Request.Context(), currentUser(c), req.Symbol, req.Shares)
	if err != nil {
		tradeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "purchase executed",
		"transaction": result.Transaction,
		"total_cost":  result.Transaction.Quantity.Mul(result.Transaction.Price.Abs()),
	})
}

// Sell handles POST /api/trades/sell.
func (h *Handler) Sell(c *gin.Context) {
	var req models.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.processor.Sell(c.Request.Context(), currentUser(c), req.Symbol, req.Shares)
	if err != nil {
		tradeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "sale executed",
		"transaction":    result.Transaction,
		"total_proceeds": result.Transaction.Quantity.Mul(result.Transaction.Price),
	})
}
