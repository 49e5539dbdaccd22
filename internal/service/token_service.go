package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrewhigh08/account-service/internal/config"
	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/port"
)

// TokenService implements port.TokenIssuer using HMAC SHA-256 signing.
// TokenService реализует port.TokenIssuer с использованием подписи HMAC SHA-256.
//
// Three independent secrets are used so that an access token can never
// be replayed as a refresh or activation token and vice versa.
// Используются три независимых секрета, чтобы access токен никогда
// нельзя было использовать как refresh или activation токен и наоборот.
type TokenService struct {
	accessSecret     []byte        // Access token signing secret / Секрет подписи access токенов
	refreshSecret    []byte        // Refresh token signing secret / Секрет подписи refresh токенов
	activationSecret []byte        // Activation token signing secret / Секрет подписи activation токенов
	accessTTL        time.Duration // Access token time-to-live / Время жизни access токена
	refreshTTL       time.Duration // Refresh token time-to-live / Время жизни refresh токена
	activationTTL    time.Duration // Activation token time-to-live / Время жизни activation токена
}

// NewTokenService creates a new TokenService from JWT configuration.
// NewTokenService создаёт новый TokenService из конфигурации JWT.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		accessSecret:     []byte(cfg.AccessSecret),
		refreshSecret:    []byte(cfg.RefreshSecret),
		activationSecret: []byte(cfg.ActivationSecret),
		accessTTL:        time.Duration(cfg.AccessTokenTTL) * time.Minute,
		refreshTTL:       time.Duration(cfg.RefreshTokenTTL) * 24 * time.Hour,
		activationTTL:    time.Duration(cfg.ActivationTokenTTL) * time.Hour,
	}
}

// IssuePair mints an access and refresh token sharing a single freshly
// generated JWT ID, and returns that ID alongside the pair.
// IssuePair выпускает access и refresh токены с одним свежесгенерированным
// JWT ID и возвращает этот ID вместе с парой.
//
// The shared ID is what ties a refresh token to its session row: a rotated
// session keeps the token string but a stale ID, which refresh detects.
// Общий ID связывает refresh токен со строкой его сессии: ротированная
// сессия сохраняет строку токена, но устаревший ID, что выявляется при refresh.
func (s *TokenService) IssuePair(userID int64) (*port.TokenPair, string, error) {
	jti, err := generateJTI()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate JTI: %w", err)
	}

	accessToken, err := s.sign(userID, jti, s.accessTTL, s.accessSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userID, jti, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &port.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, jti, nil
}

// IssueActivationToken mints a single-purpose token for email activation.
// IssueActivationToken выпускает одноцелевой токен для активации email.
func (s *TokenService) IssueActivationToken(userID int64) (string, string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate JTI: %w", err)
	}

	token, err := s.sign(userID, jti, s.activationTTL, s.activationSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign activation token: %w", err)
	}

	return token, jti, nil
}

// VerifyAccess validates an access token and returns its claims.
// VerifyAccess проверяет access токен и возвращает его claims.
func (s *TokenService) VerifyAccess(tokenString string) (*port.Claims, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
// VerifyRefresh проверяет refresh токен и возвращает его claims.
func (s *TokenService) VerifyRefresh(tokenString string) (*port.Claims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

// VerifyActivation validates an activation token and returns its claims.
// VerifyActivation проверяет activation токен и возвращает его claims.
func (s *TokenService) VerifyActivation(tokenString string) (*port.Claims, error) {
	return s.verify(tokenString, s.activationSecret)
}

// sign builds and signs a token with the given TTL and secret.
// sign формирует и подписывает токен с заданными TTL и секретом.
func (s *TokenService) sign(userID int64, jti string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()

	claims := port.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "account-service",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify parses a token against the given secret.
// verify разбирает токен с проверкой по заданному секрету.
//
// Any parse failure, including expiry and a signature made with one of the
// other secrets, maps to the same client-facing message.
// Любая ошибка разбора, включая истечение срока и подпись другим секретом,
// сводится к одному и тому же сообщению для клиента.
func (s *TokenService) verify(tokenString string, secret []byte) (*port.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &port.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method / Проверяем метод подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, apperror.Unauthorized("Token inválido")
	}

	claims, ok := token.Claims.(*port.Claims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("Token inválido")
	}

	return claims, nil
}

// generateJTI generates a unique JWT ID.
// generateJTI генерирует уникальный JWT ID.
func generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
