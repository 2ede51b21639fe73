package telegram

import (
	"log"
	"time"
)

const pollTimeout = 30 // seconds, long poll

// Poller pulls updates with getUpdates when no public webhook URL is
// available, typically in local development.
type Poller struct {
	client  *Client
	handler *UpdateHandler
	stopCh  chan struct{}
}

func NewPoller(client *Client, handler *UpdateHandler) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
		stopCh:  make(chan struct{}),
	}
}

func (p *Poller) Start() {
	// A leftover webhook blocks getUpdates.
	if err := p.client.DeleteWebhook(); err != nil {
		log.Printf("[Poller] delete webhook: %v", err)
	}
	go p.loop()
	log.Println("[Poller] started")
}

func (p *Poller) Stop() {
	close(p.stopCh)
	log.Println("[Poller] stopped")
}

func (p *Poller) loop() {
	var offset int64
	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		updates, err := p.client.GetUpdates(offset, pollTimeout)
		if err != nil {
			log.Printf("[Poller] get updates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, upd := range updates {
			offset = upd.UpdateID + 1
			go p.handler.Handle(upd)
		}
	}
}
