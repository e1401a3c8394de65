package ws

import (
	"encoding/json"

	"todoboard/internal/domain"
)

// Message types recognized on the wire.
const (
	typeListTodos  = "seeTodo"
	typeCreateTodo = "createTodo"
	typeCreateUser = "createUser"
)

// Reply messages, kept byte-identical to the upstream protocol.
const (
	msgTodoCreated   = "Todo Created!!!"
	msgUserCreated   = "User Created!!!"
	msgUnknownType   = "Unknown message type"
	msgInternalError = "Internal server error"
)

// Command is a decoded client request.
type Command interface {
	isCommand()
}

// ListTodos asks for every todo with its owning user embedded.
type ListTodos struct{}

// CreateTodo creates a todo, provisioning the owner if it does not exist yet.
type CreateTodo struct {
	Task   string
	UserID string
}

// CreateUser explicitly registers a user.
type CreateUser struct {
	Username string
	Password string
}

func (ListTodos) isCommand()  {}
func (CreateTodo) isCommand() {}
func (CreateUser) isCommand() {}

// DecodeError reports a frame that could not be mapped to a command. It keeps
// the raw payload so the reply can echo what was received.
type DecodeError struct {
	Raw []byte
}

func (e *DecodeError) Error() string {
	return "unknown message type"
}

type frame struct {
	Type     string `json:"type"`
	Task     string `json:"task"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Decode parses one inbound frame into a typed command. A recognized type
// with missing fields is not a decode failure; the dispatcher validates
// field presence and replies with a structured error instead.
func Decode(raw []byte) (Command, *DecodeError) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &DecodeError{Raw: raw}
	}

	switch f.Type {
	case typeListTodos:
		return ListTodos{}, nil
	case typeCreateTodo:
		return CreateTodo{Task: f.Task, UserID: f.UserID}, nil
	case typeCreateUser:
		return CreateUser{Username: f.Username, Password: f.Password}, nil
	default:
		return nil, &DecodeError{Raw: raw}
	}
}

// Reply is one outbound frame.
type Reply struct {
	payload any
}

type createdTodoReply struct {
	Success string       `json:"success"`
	Todo    *domain.Todo `json:"todo"`
}

type createdUserReply struct {
	Success string       `json:"success"`
	User    *domain.User `json:"user"`
}

type errorReply struct {
	Error    string `json:"error"`
	Received string `json:"received,omitempty"`
	Details  string `json:"details,omitempty"`
}

func okTodos(todos []domain.Todo) Reply {
	return Reply{payload: todos}
}

func okTodoCreated(todo *domain.Todo) Reply {
	return Reply{payload: createdTodoReply{Success: msgTodoCreated, Todo: todo}}
}

func okUserCreated(user *domain.User) Reply {
	return Reply{payload: createdUserReply{Success: msgUserCreated, User: user}}
}

func errValidation(msg string) Reply {
	return Reply{payload: errorReply{Error: msg}}
}

func errUnknownType(raw []byte) Reply {
	return Reply{payload: errorReply{Error: msgUnknownType, Received: string(raw)}}
}

func errInternal(details string) Reply {
	return Reply{payload: errorReply{Error: msgInternalError, Details: details}}
}

// Encode serializes a reply frame. The payload shapes above cannot fail to
// marshal; anything else degrades to an internal-error frame.
func (r Reply) Encode() []byte {
	data, err := json.Marshal(r.payload)
	if err != nil {
		data, _ = json.Marshal(errorReply{Error: msgInternalError, Details: err.Error()})
	}
	return data
}
