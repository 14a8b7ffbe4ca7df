package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// PriceUpdate is one pushed quote on the price stream.
type PriceUpdate struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Unpriced  bool            `json:"unpriced,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// PriceStream handles GET /ws/prices?symbols=AAPL,MSFT. Without an
// explicit list it streams the symbols the user currently holds. Every
// update is a fresh oracle fetch; a failed lookup is pushed as unpriced
// rather than repeating the last price.
func (h *Handler) PriceStream(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		held, err := h.engine.Holdings(c.Request.Context(), currentUser(c))
		if err != nil {
			tradeError(c, err)
			return
		}
		for symbol := range held {
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no symbols to stream"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			for _, symbol := range symbols {
				update := PriceUpdate{Symbol: symbol, Timestamp: time.Now()}
				q, err := h.oracle.Lookup(c.Request.Context(), symbol)
				if err != nil {
					update.Unpriced = true
				} else {
					update.Price = q.Price
				}
				if err := conn.WriteJSON(update); err != nil {
					log.Println("websocket write error:", err)
					return
				}
			}
		}
	}
}

func splitSymbols(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol != "" {
			out = append(out, symbol)
		}
	}
	return out
}
