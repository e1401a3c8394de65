package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"todoboard/internal/domain"
	"todoboard/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task TEXT NOT NULL,
	user_id TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL
);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	todo.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (task, user_id, created_at)
VALUES (?, ?, ?)`,
		todo.Task,
		todo.UserID,
		todo.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

// ListWithUsers returns every todo joined with its owning user, oldest first.
func (r *TodoRepository) ListWithUsers(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT t.id, t.task, t.user_id, t.created_at, u.id, u.username, u.password, u.created_at
FROM todos t
JOIN users u ON u.id = t.user_id
ORDER BY t.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var (
			todo domain.Todo
			user domain.User
		)
		if err := rows.Scan(
			&todo.ID,
			&todo.Task,
			&todo.UserID,
			&todo.CreatedAt,
			&user.ID,
			&user.Username,
			&user.Password,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todo.User = &user
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}
