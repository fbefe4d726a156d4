package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Jwt struct {
	Secret       string
	AccessExpiry time.Duration
}

type Option func(*Jwt)

func WithAccessExpiry(expiry time.Duration) Option {
	return func(j *Jwt) {
		j.AccessExpiry = expiry
	}
}

func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{
		Secret:       secret,
		AccessExpiry: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

type Claims struct {
	CustomClaims interface{} `json:"custom_claims,inline"`
	jwt.RegisteredClaims
}

type AuthToken struct {
	Token  string
	Expiry time.Time
}

func (j Jwt) CreateTokenStr(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		slog.Error("Failed sign JWT Claim string!", "err", err)
		return "", err
	}
	return ss, nil
}

// CreateAccessToken mints a signed token carrying the given claim data,
// typically the public profile returned on login.
func (j Jwt) CreateAccessToken(claimData interface{}) (AuthToken, error) {
	claims := Claims{
		claimData,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(j.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute * 5)),
			Issuer:    "freshmart",
			Subject:   "freshmart",
			ID:        uuid.New().String(),
			Audience:  []string{"public"},
		},
	}
	accessToken, err := j.CreateTokenStr(claims)
	return AuthToken{Token: accessToken, Expiry: claims.ExpiresAt.Time}, err
}

func (j Jwt) ParseTokenStr(tokenStr string) (*jwt.Token, error) {
	signingKey := []byte(j.Secret)
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		slog.Error("Failed parse JWT string!", "err", err)
		return token, err
	}
	claims := token.Claims.(jwt.MapClaims)
	customClaims := new(Claims)
	err = LoadFromMap(customClaims, claims)
	if err == nil && token.Valid {
		return token, nil
	}
	slog.Error("Failed parse token claims!", "err", err)
	return token, errors.New("failed_parse_token_claims")
}

func LoadFromMap[T any](c *T, m map[string]interface{}) error {
	data, err := json.Marshal(m)
	if err == nil {
		err = json.Unmarshal(data, c)
	}
	return err
}
