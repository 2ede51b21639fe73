package telegram

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Webhook receives updates pushed by Telegram. The URL path carries a
// secret derived from the bot token, and the optional header secret is
// checked on top of it.
type Webhook struct {
	client       *Client
	handler      *UpdateHandler
	pathSecret   string
	headerSecret string
}

func NewWebhook(client *Client, handler *UpdateHandler, token, headerSecret string) *Webhook {
	return &Webhook{
		client:       client,
		handler:      handler,
		pathSecret:   tokenSecret(token),
		headerSecret: headerSecret,
	}
}

func tokenSecret(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h[:16])
}

// Register points Telegram at baseURL and drops any pending update backlog.
func (w *Webhook) Register(baseURL string) error {
	url := fmt.Sprintf("%s/webhook/bot/%s", baseURL, w.pathSecret)
	if err := w.client.SetWebhook(url, w.headerSecret); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	log.Printf("[Webhook] registered at %s", url)
	return nil
}

func (w *Webhook) Unregister() {
	if err := w.client.DeleteWebhook(); err != nil {
		log.Printf("[Webhook] delete webhook: %v", err)
	}
}

func (w *Webhook) HandleWebhook(c *gin.Context) {
	if c.Param("secret") != w.pathSecret {
		c.Status(http.StatusNotFound)
		return
	}
	if w.headerSecret != "" {
		if c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != w.headerSecret {
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var upd Update
	if err := json.Unmarshal(body, &upd); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	go w.handler.Handle(upd)

	c.Status(http.StatusOK)
}
