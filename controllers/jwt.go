package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"strconv"

	"wtg/config"
)

// security guarda a seção de segurança do config.json, injetada no bootstrap.
// Variáveis de ambiente têm precedência (override de operação sem redeploy).
var security config.SecurityConfig

func SetSecurityConfig(s config.SecurityConfig) {
	security = s
}

func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("WTG_JWT_SECRET", "")
	}
	if secret == "" {
		secret = security.JwtSecret
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

func tokenValidHours() int {
	def := security.TokenValidHours
	if def <= 0 {
		def = 24
	}
	return getenvInt("TOKEN_VALID_HOURS", def)
}

func activationCodeLen() int {
	if security.ActivationCodeLen > 0 {
		return security.ActivationCodeLen
	}
	return 6
}

func signHS256JWT(secret string, claims map[string]any) (string, error) {
	// Header
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	headB, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	// Payload
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	sig := enc.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
