package dashboard

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/crossplay/xwordgen/pkg/runstore"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes run history and a live step feed over HTTP.
type Server struct {
	addr  string
	hub   *Hub
	store *runstore.Store
}

// NewServer wires a dashboard server around an already-running Hub and
// a run history store.
func NewServer(addr string, hub *Hub, store *runstore.Store) *Server {
	return &Server{addr: addr, hub: hub, store: store}
}

func (s *Server) router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	api := router.Group("/api")
	{
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}

	router.GET("/ws/runs/:id", s.handleWatchRun)

	return router
}

// ListenAndServe starts the server and blocks until it receives
// SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("dashboard: failed to start server: %v", err)
		}
	}()

	log.Printf("dashboard: listening on %s", s.addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("dashboard: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.store.ListRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := s.store.GetRun(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleWatchRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade failed: %v", err)
		return
	}

	cl := &client{runID: id, send: make(chan []byte, 16)}
	s.hub.register <- cl
	defer func() { s.hub.unregister <- cl }()

	go discardIncoming(conn)

	for data := range cl.send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	conn.Close()
}

// discardIncoming drains client messages so the websocket's read side
// stays unblocked; this feed is server-to-client only.
func discardIncoming(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
