package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token. Un token de sesión no sirve para resetear contraseña y viceversa.
const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

// Claims incluye los claims estándar JWT más la identidad de la aplicación.
// Role y Tags viajan en el token para que la capa de autorización decida sin
// releer la DB; reflejan el estado al momento de emisión (pueden quedar
// desactualizados hasta el próximo login).
type Claims struct {
	jwt.RegisteredClaims
	UserID  string   `json:"user_id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"` // "super-admin" | "admin" | "sales-rep"
	Tags    []string `json:"tags"`
	Purpose string   `json:"purpose"`
}

// Identity campos de usuario que se embeben en el token.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
	Tags   []string
}

// Generate genera un token de sesión firmado HS256 con la identidad completa.
func Generate(secret, issuer string, id Identity, expMinutes int) (string, error) {
	return generate(secret, issuer, id, PurposeSession, expMinutes)
}

// GenerateReset genera un token de corta vida para reset de contraseña.
// Solo lleva UserID y Email; el resto de claims no aplica a este flujo.
func GenerateReset(secret, issuer, userID, email string, expMinutes int) (string, error) {
	return generate(secret, issuer, Identity{UserID: userID, Email: email}, PurposePasswordReset, expMinutes)
}

func generate(secret, issuer string, id Identity, purpose string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:  id.UserID,
		Name:    id.Name,
		Email:   id.Email,
		Role:    id.Role,
		Tags:    id.Tags,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
