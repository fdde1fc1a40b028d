package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MediaClaims 媒体访问令牌载荷
// 旧实现只做 base64 JSON 编码，不具备任何防篡改能力，这里改为 HS256 签名
type MediaClaims struct {
	ResourceID string `json:"resource_id"`
	IPAddress  string `json:"ip_address,omitempty"`
	Nonce      string `json:"nonce"`
	jwt.RegisteredClaims
}

// MediaTokenSigner 媒体令牌签发器，密钥由构造注入
type MediaTokenSigner struct {
	secret []byte
}

func NewMediaTokenSigner(secret string) *MediaTokenSigner {
	return &MediaTokenSigner{secret: []byte(secret)}
}

// Sign 为资源签发限时访问令牌
func (s *MediaTokenSigner) Sign(resourceID, ipAddress string, expiresAt time.Time) (string, error) {
	claims := &MediaClaims{
		ResourceID: resourceID,
		IPAddress:  ipAddress,
		Nonce:      uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "Vanguard",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify 校验令牌并返回载荷，过期或被篡改时返回错误
func (s *MediaTokenSigner) Verify(tokenString string) (*MediaClaims, error) {
	claims := &MediaClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("媒体令牌解析失败: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("媒体令牌无效或已过期")
	}

	return claims, nil
}
