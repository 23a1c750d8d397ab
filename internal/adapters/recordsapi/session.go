package recordsapi

import (
	"strings"
	"sync"

	"nicu-progress/internal/ports/auth"
)

// Session guarda los tokens del usuario logueado. Se inyecta en el Client
// (no hay estado global) y es segura para uso concurrente.
type Session struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Set(pair auth.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = strings.TrimSpace(pair.Access)
	s.refresh = strings.TrimSpace(pair.Refresh)
}

func (s *Session) SetAccess(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = strings.TrimSpace(token)
}

func (s *Session) Tokens() auth.TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return auth.TokenPair{Access: s.access, Refresh: s.refresh}
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// Logout borra ambos tokens.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
}
