package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string // username del clínico
	TokenType string // access | refresh
	ExpiresAt time.Time
}

// TokenPair es lo que devuelve un login exitoso.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
