package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/auth"
	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler выпускает bearer-токены по паре логин/пароль.
type LoginHandler struct {
	guard  *auth.Guard
	logger *log.Entry
}

// NewLoginHandler конструирует handler входа.
func NewLoginHandler(guard *auth.Guard, logger *log.Entry) *LoginHandler {
	if logger == nil {
		logger = log.WithField("component", "login-handler")
	}
	return &LoginHandler{
		guard:  guard,
		logger: logger,
	}
}

// Login обрабатывает POST /login.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Пустые поля приравниваются к неверным учётным данным, чтобы ответ
	// не отличался от случая несуществующего пользователя.
	if req.Username == "" || req.Password == "" {
		respondError(c, h.logger, domain.ErrInvalidCredentials)
		return
	}

	token, err := h.guard.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
