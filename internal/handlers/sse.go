package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/labstack/echo/v4"
)

const keepAliveInterval = 25 * time.Second

func startSSE(c echo.Context) {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()
}

func writeSSE(c echo.Context, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

func writeKeepAlive(c echo.Context) error {
	if _, err := fmt.Fprint(c.Response(), ": ping\n\n"); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

// streamEvents relays hub events until the client goes away. The hub closes
// events once the request context is done.
func streamEvents(c echo.Context, events <-chan live.Event) error {
	startSSE(c)
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeSSE(c, ev.Kind, ev.Payload); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := writeKeepAlive(c); err != nil {
				return nil
			}
		case <-c.Request().Context().Done():
			return nil
		}
	}
}
