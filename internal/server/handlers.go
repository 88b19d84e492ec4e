package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyrosense/sentinel/internal/app"
	"github.com/pyrosense/sentinel/internal/bus"
)

func getApp(c *gin.Context) *app.App {
	return c.MustGet("app").(*app.App)
}

func getStatus(c *gin.Context) {
	a := getApp(c)

	loop := a.Loop()
	if loop == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"state": "init"})
		return
	}

	body := gin.H{
		"state":   loop.CurrentState().String(),
		"session": loop.Session(),
	}
	if last, ok := loop.Snapshot(); ok {
		body["last_detection"] = last
	}

	c.JSON(http.StatusOK, body)
}

func getMetrics(c *gin.Context) {
	a := getApp(c)
	c.JSON(http.StatusOK, a.Metrics.Snapshot())
}

// streamEvents serves the detection stream as newline-delimited JSON until
// the client disconnects.
func streamEvents(c *gin.Context) {
	a := getApp(c)

	sub, cancel := a.Bus.Subscribe(16)
	defer cancel()

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-sub:
			if !ok {
				return false
			}
			ev, err := bus.Decode(payload)
			if err != nil {
				return false
			}
			if err := json.NewEncoder(w).Encode(ev); err != nil {
				return false
			}
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
