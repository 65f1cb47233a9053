package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
)

// credentialStoreInMemory хранит учётные записи в памяти.
// Наполняется на старте из конфигурации (seed-пользователь).
type credentialStoreInMemory struct {
	mu    sync.RWMutex
	users map[string]domain.Credential
}

// NewCredentialStore создаёт in-memory хранилище учётных записей.
func NewCredentialStore(seed ...domain.Credential) *credentialStoreInMemory {
	store := &credentialStoreInMemory{
		users: make(map[string]domain.Credential, len(seed)),
	}
	for _, cred := range seed {
		if cred.Username != "" {
			store.users[cred.Username] = cred
		}
	}
	return store
}

// Lookup возвращает учётную запись или ErrUserNotFound.
func (s *credentialStoreInMemory) Lookup(_ context.Context, username string) (domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.users[username]
	if !ok {
		return domain.Credential{}, domain.ErrUserNotFound
	}
	return cred, nil
}

// Put добавляет или заменяет учётную запись.
func (s *credentialStoreInMemory) Put(cred domain.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[cred.Username] = cred
}

var _ domain.CredentialStore = (*credentialStoreInMemory)(nil)
