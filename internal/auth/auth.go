// Package auth consumes the identity provider's bearer tokens. It does not
// issue tokens; sessions live elsewhere.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doanvu/school-eval-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Identify parses a bearer token into the caller's identity. Expected
// claims: "sub" (user id) and "roles".
func (v *Verifier) Identify(token string) (models.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	uid, err := userID(claims)
	if err != nil {
		return models.Identity{}, err
	}
	roles := NormalizeRoles(claims["roles"])
	if len(roles) == 0 {
		return models.Identity{}, ErrInvalidToken
	}
	return models.Identity{UserID: uid, Roles: roles}, nil
}

func userID(claims jwt.MapClaims) (int64, error) {
	switch v := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, ErrInvalidToken
		}
		return id, nil
	case float64:
		return int64(v), nil
	default:
		return 0, ErrInvalidToken
	}
}

// NormalizeRoles accepts the claim shapes identity providers actually emit:
// a single string, a comma-joined string, or an array. Unknown role names
// are dropped.
func NormalizeRoles(claim any) []models.Role {
	var raw []string
	switch v := claim.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}

	var out []models.Role
	seen := map[models.Role]bool{}
	for _, s := range raw {
		role := models.Role(strings.ToLower(strings.TrimSpace(s)))
		switch role {
		case models.Student, models.Parent, models.Teacher, models.Manager:
			if !seen[role] {
				seen[role] = true
				out = append(out, role)
			}
		}
	}
	return out
}
