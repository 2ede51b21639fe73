package telegram

import (
	"log"
	"time"
)

// Telegram caps bots around 30 messages per second; 20 per batch with a
// pause stays comfortably under it.
const (
	broadcastBatchSize = 20
	broadcastPause     = 1100 * time.Millisecond
)

// Sender delivers one message to many users in rate-limited batches.
// Blocked or deleted chats are logged and skipped.
type Sender struct {
	client *Client
}

func NewSender(client *Client) *Sender {
	return &Sender{client: client}
}

// SendToMany blocks until every recipient is attempted; run it in a
// goroutine. Returns the number of successful deliveries.
func (s *Sender) SendToMany(userIDs []int64, text string) int {
	sent := 0
	for i, id := range userIDs {
		if i > 0 && i%broadcastBatchSize == 0 {
			time.Sleep(broadcastPause)
		}
		if _, err := s.client.SendMessage(id, text, "HTML", nil); err != nil {
			log.Printf("sender: send to %d: %v", id, err)
			continue
		}
		sent++
	}
	log.Printf("sender: broadcast delivered to %d/%d users", sent, len(userIDs))
	return sent
}
