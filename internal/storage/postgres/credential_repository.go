package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository создаёт PostgreSQL-реализацию CredentialStore.
func NewCredentialRepository(store *Store) *credentialRepository {
	return &credentialRepository{db: store.DB()}
}

// Lookup возвращает учётную запись или ErrUserNotFound.
func (r *credentialRepository) Lookup(ctx context.Context, username string) (domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cred domain.Credential
	err := r.db.QueryRowContext(ctx, `
		SELECT username, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&cred.Username, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Credential{}, domain.ErrUserNotFound
		}
		return domain.Credential{}, fmt.Errorf("select user: %w", err)
	}

	return cred, nil
}

// EnsureUser добавляет учётную запись, если её ещё нет. Существующий хеш
// не перезаписывается: seed из конфигурации не должен затирать ротацию пароля.
func (r *credentialRepository) EnsureUser(ctx context.Context, cred domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, cred.Username, cred.PasswordHash); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	return nil
}

var _ domain.CredentialStore = (*credentialRepository)(nil)
