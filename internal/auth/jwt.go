package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "mini-catalog"

// TokenMaker carries a logged-in session between HTTP requests.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenMaker returns a maker whose tokens expire after ttl. A zero ttl
// issues tokens without expiry, matching sessions that last until logout.
func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for a logged-in session.
func (t *TokenMaker) Issue(s *Session) (string, error) {
	id, ok := s.Identity()
	if !ok {
		return "", ErrNotLoggedIn
	}

	now := t.now()
	claims := Claims{
		Username: id.Username,
		Name:     id.Name,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.UserID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates tokenStr and returns the logged-in session it carries.
func (t *TokenMaker) Parse(tokenStr string) (*Session, error) {
	var c Claims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Subject == "" || c.Role == "" {
		return nil, errors.New("invalid token")
	}

	s := &Session{}
	_ = s.Login(Identity{UserID: c.Subject, Username: c.Username, Name: c.Name, Role: c.Role})
	return s, nil
}
