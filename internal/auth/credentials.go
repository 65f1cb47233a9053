package auth

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

// Guard проверяет учётные данные и выпускает токены. Источник учётных
// записей подключаемый: проверка пароля не зависит от того, откуда
// пришёл хеш.
type Guard struct {
	store  domain.CredentialStore
	tokens *TokenManager
	logger *log.Entry
}

// NewGuard конструирует Auth Guard.
func NewGuard(store domain.CredentialStore, tokens *TokenManager, logger *log.Entry) *Guard {
	if logger == nil {
		logger = log.WithField("component", "auth-guard")
	}
	return &Guard{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Login проверяет пару логин/пароль и возвращает подписанный токен.
// Неизвестный пользователь и неверный пароль дают одну и ту же ошибку,
// чтобы не раскрывать, какие учётные записи существуют.
func (g *Guard) Login(ctx context.Context, username, password string) (string, error) {
	cred, err := g.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := g.tokens.Issue(cred.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate проверяет bearer-токен и возвращает имя пользователя.
func (g *Guard) Authenticate(raw string) (string, error) {
	return g.tokens.Verify(raw)
}

// HashPassword возвращает bcrypt-хеш пароля (для seed и тестов).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
