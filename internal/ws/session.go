package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"todoboard/internal/service"
)

const (
	// Time allowed to write a reply to the peer.
	writeWait = 10 * time.Second

	// Upper bound on one command's storage work.
	dispatchTimeout = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// session binds one connection to the todo service for its lifetime. The
// transport handle is the only state it owns; the protocol carries nothing
// across messages.
type session struct {
	conn   *websocket.Conn
	todos  service.TodoService
	logger *logrus.Entry
}

func newSession(conn *websocket.Conn, todos service.TodoService, logger *logrus.Entry) *session {
	return &session{
		conn:   conn,
		todos:  todos,
		logger: logger,
	}
}

// run reads frames until the peer goes away. Each frame is handled to
// completion before the next read, so replies stay 1:1 with requests and in
// order for this connection.
func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	s.logger.Info("client connected")
	s.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warnf("read: %v", err)
			}
			break
		}

		reply := s.handle(ctx, raw)
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, reply.Encode()); err != nil {
			s.logger.Warnf("write reply: %v", err)
			break
		}
	}

	s.logger.Info("client disconnected")
}

// handle turns one inbound frame into exactly one reply. A failure of any
// kind, panics included, produces an error reply; the connection stays open.
func (s *session) handle(ctx context.Context, raw []byte) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("panic handling message: %v", r)
			reply = errInternal(fmt.Sprint(r))
		}
	}()

	cmd, derr := Decode(raw)
	if derr != nil {
		return errUnknownType(derr.Raw)
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	return s.dispatch(ctx, cmd)
}

func (s *session) dispatch(ctx context.Context, cmd Command) Reply {
	switch cmd := cmd.(type) {
	case ListTodos:
		todos, err := s.todos.ListTodos(ctx)
		if err != nil {
			return s.internalError("list todos", err)
		}
		return okTodos(todos)

	case CreateTodo:
		todo, err := s.todos.CreateTodo(ctx, cmd.Task, cmd.UserID)
		if errors.Is(err, service.ErrMissingTodoFields) {
			return errValidation(err.Error())
		}
		if err != nil {
			return s.internalError("create todo", err)
		}
		return okTodoCreated(todo)

	case CreateUser:
		user, err := s.todos.CreateUser(ctx, cmd.Username, cmd.Password)
		if errors.Is(err, service.ErrMissingUserFields) {
			return errValidation(err.Error())
		}
		if err != nil {
			return s.internalError("create user", err)
		}
		return okUserCreated(user)

	default:
		return errInternal(fmt.Sprintf("unhandled command %T", cmd))
	}
}

func (s *session) internalError(op string, err error) Reply {
	s.logger.Errorf("%s: %v", op, err)
	return errInternal(err.Error())
}
