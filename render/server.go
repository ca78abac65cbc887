package render

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/coloring-rl/types"
)

// number of frames kept by the server
const historySize = 256

// Server exposes the rendered frames over HTTP so a run can be watched
// from a browser or curl while it trains
type Server struct {
	Addr   string
	ctx    context.Context
	server *http.Server

	lock   *sync.Mutex
	frames []Frame
	count  int
}

var _ types.Renderer = &Server{}

func NewServer(ctx context.Context, addr string) *Server {
	s := &Server{
		Addr:   addr,
		ctx:    ctx,
		lock:   new(sync.Mutex),
		frames: make([]Frame, 0, historySize),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/frame", s.handleFrame)
	r.GET("/frames", s.handleFrames)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Handler returns the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() {
	go func() {
		s.server.ListenAndServe()
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
}

func (s *Server) Render(step int, message string, colors []int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.frames) == historySize {
		s.frames = s.frames[1:]
	}
	s.frames = append(s.frames, newFrame(s.count, step, message, colors))
	s.count += 1
}

func (s *Server) handleFrame(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.frames) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frames rendered"})
		return
	}
	c.JSON(http.StatusOK, s.frames[len(s.frames)-1])
}

// frames with index greater or equal to ?since=
func (s *Server) handleFrames(c *gin.Context) {
	since := 0
	if v := c.Query("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since"})
			return
		}
		since = n
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]Frame, 0)
	for _, f := range s.frames {
		if f.Index >= since {
			out = append(out, f)
		}
	}
	c.JSON(http.StatusOK, gin.H{"total": s.count, "frames": out})
}
