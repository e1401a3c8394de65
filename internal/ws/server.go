package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"todoboard/internal/service"
)

// Server accepts websocket connections and runs one session per connection.
// Sessions share nothing but the todo service; the storage layer coordinates
// concurrent access on its own.
type Server struct {
	addr   string
	todos  service.TodoService
	logger *logrus.Logger

	upgrader websocket.Upgrader
	srv      *http.Server
}

func NewServer(addr string, todos service.TodoService, logger *logrus.Logger) *Server {
	s := &Server{
		addr:   addr,
		todos:  todos,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConnection)
	s.srv = &http.Server{Handler: mux}

	return s
}

// Start binds the listen address and begins accepting connections in the
// background. Bind failures are returned synchronously so startup can abort.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("websocket server: %v", err)
		}
	}()

	s.logger.Infof("websocket server listening on %s", ln.Addr())
	return nil
}

// Shutdown closes the listener. Open sessions end when their clients
// disconnect; they hold no state needing cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("upgrade: %v", err)
		return
	}

	sess := newSession(conn, s.todos, s.logger.WithField("remote", conn.RemoteAddr().String()))
	sess.run(r.Context())
}
