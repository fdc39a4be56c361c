package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
)

// InterfaceJWTService defines the JWT service interface
type InterfaceJWTService interface {
	GenerateToken(userID uint, role models.OperatorRole, username string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(username, password string) (*LoginResult, error)
}

// LoginResult represents a successful login
type LoginResult struct {
	Token     string              `json:"token"`
	UserID    uint                `json:"user_id"`
	Role      models.OperatorRole `json:"role"`
	UserName  string              `json:"user_name"`
	Name      string              `json:"name"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// JWTService provides token issuance and validation
type JWTService struct {
	secretKey string
	issuer    string
	audience  string
	expiry    time.Duration
	DB        *gorm.DB
}

// JWTClaims defines the claims embedded in issued tokens
type JWTClaims struct {
	UserID   uint                `json:"user_id"`
	Role     models.OperatorRole `json:"role"`
	UserName string              `json:"user_name"`
	jwt.RegisteredClaims
}

// dummyHash is compared against when the username is unknown, so login
// failures take comparable time whether the user exists or not.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    cfg.JWTIssuer,
		audience:  cfg.JWTAudience,
		expiry:    time.Duration(cfg.JWTExpiry) * time.Hour,
		DB:        db,
	}
}

// GenerateToken issues a signed token carrying identity and role claims
func (s *JWTService) GenerateToken(userID uint, role models.OperatorRole, username string) (string, error) {
	expirationTime := time.Now().Add(s.expiry)

	claims := &JWTClaims{
		UserID:   userID,
		Role:     role,
		UserName: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken parses and validates a token string
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims extracts the typed claims from a token string
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	jwtClaims := &JWTClaims{}
	if userID, ok := claims["user_id"].(float64); ok {
		jwtClaims.UserID = uint(userID)
	}
	if role, ok := claims["role"].(string); ok {
		jwtClaims.Role = models.OperatorRole(role)
	}
	if username, ok := claims["user_name"].(string); ok {
		jwtClaims.UserName = username
	}
	if issuer, ok := claims["iss"].(string); ok {
		jwtClaims.Issuer = issuer
	}

	return jwtClaims, nil
}

// Login verifies credentials and issues a token. The failure is uniform:
// unknown username and wrong password produce the same error, and a dummy
// hash comparison runs when the user is missing.
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	var operator models.Operator
	err := s.DB.Where("user_name = ? AND is_deleted = ?", username, false).First(&operator).Error
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, code.NewError(code.ErrOperatorUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		return nil, code.NewError(code.ErrOperatorUnauthorized)
	}

	token, err := s.GenerateToken(operator.ID, operator.Role, operator.UserName)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		UserID:    operator.ID,
		Role:      operator.Role,
		UserName:  operator.UserName,
		Name:      operator.Name,
		ExpiresAt: time.Now().Add(s.expiry),
	}, nil
}
