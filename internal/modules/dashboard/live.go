package dashboard

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	livePushInterval = 15 * time.Second
	liveWriteTimeout = 10 * time.Second
)

// LiveFeed pushes dashboard snapshots over a websocket so the overview page
// refreshes without polling.
type LiveFeed struct {
	service  *Service
	upgrader websocket.Upgrader
}

func NewLiveFeed(service *Service) *LiveFeed {
	return &LiveFeed{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Auth happens on the upgrade request; origins are already
			// filtered by the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (f *LiveFeed) Serve(c *gin.Context) {
	orgID := c.GetString("org_id")

	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("dashboard live: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain control frames so pongs and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	ticker := time.NewTicker(livePushInterval)
	defer ticker.Stop()

	if err := f.push(c, conn, orgID); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.push(c, conn, orgID); err != nil {
				return
			}
		}
	}
}

func (f *LiveFeed) push(c *gin.Context, conn *websocket.Conn, orgID string) error {
	view, err := f.service.View(c.Request.Context(), orgID, 0)
	if err != nil {
		log.Printf("dashboard live: snapshot failed: %v", err)
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout)) //nolint:errcheck
	return conn.WriteJSON(view)
}
