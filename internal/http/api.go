package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todoboard/internal/service"
)

// Handler wires the request/response API to the todo service.
type Handler struct {
	todos service.TodoService
}

func NewHandler(todos service.TodoService) *Handler {
	return &Handler{todos: todos}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/health", h.health)
	router.GET("/", h.listUsers)
	router.POST("/", h.createUser)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.todos.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get endpoint",
		"user":    users,
	})
}

// createUser registers a throwaway user with randomized credentials, matching
// the upstream endpoint's behavior.
func (h *Handler) createUser(c *gin.Context) {
	if _, err := h.todos.CreateUser(c.Request.Context(), uuid.NewString(), uuid.NewString()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user created"})
}
