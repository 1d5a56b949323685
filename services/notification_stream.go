package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StreamPollInterval is how often the notification stream checks for new messages.
var StreamPollInterval = 500 * time.Millisecond

// StreamNotifications pushes a session's notifications as server-sent events.
func (s *ViewService) StreamNotifications(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	notices := sess.Notices()
	var lastSeq uint64
	if id := c.Get("Last-Event-ID"); id != "" {
		fmt.Sscan(id, &lastSeq)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	done := c.Context().Done()
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(StreamPollInterval)
		defer ticker.Stop()
		keepalive := time.NewTicker(15 * time.Second)
		defer keepalive.Stop()

		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				fresh := notices.Since(lastSeq)
				if len(fresh) == 0 {
					continue
				}
				for _, n := range fresh {
					payload, _ := json.Marshal(n)
					fmt.Fprintf(w, "id: %d\nevent: notification\ndata: %s\n\n", n.Seq, payload)
					lastSeq = n.Seq
				}
				if err := w.Flush(); err != nil {
					log.Printf("[SSE] 🔌 Session %s disconnected", sess.ID)
					return
				}

			case <-keepalive.C:
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-done:
				return
			}
		}
	})

	return nil
}
