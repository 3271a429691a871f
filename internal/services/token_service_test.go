package services

import (
	"testing"
	"time"

	"finledger/internal/config"
	"finledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TokenServiceSuite defines the test suite for TokenServiceInterface
type TokenServiceSuite struct {
	suite.Suite
	jwtConfig *config.JWTConfig
	service   TokenServiceInterface
	testUser  *models.User
}

// SetupSuite generates a keypair once for the whole suite
func (s *TokenServiceSuite) SetupSuite() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.jwtConfig = &config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "finledger-test",
	}
}

// SetupTest runs before each test in the suite
func (s *TokenServiceSuite) SetupTest() {
	s.service = NewTokenService(s.jwtConfig)
	s.testUser = &models.User{
		ID:       uuid.New(),
		Username: "alice",
	}
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) TestGenerateAndValidateRoundTrip() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.testUser)
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(s.testUser.ID.String(), claims.UserID)
	s.Equal("alice", claims.Username)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal("finledger-test", claims.Issuer)
}

func (s *TokenServiceSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceSuite) TestValidateAccessToken_EmptyToken() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Garbage() {
	_, err := s.service.ValidateAccessToken("not.a.jwt")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Expired() {
	expiredConfig := *s.jwtConfig
	expiredConfig.AccessTokenDuration = -time.Minute
	expiredService := NewTokenService(&expiredConfig)

	token, _, err := expiredService.GenerateAccessToken(s.testUser)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongIssuer() {
	otherConfig := *s.jwtConfig
	otherConfig.Issuer = "someone-else"
	otherService := NewTokenService(&otherConfig)

	token, _, err := otherService.GenerateAccessToken(s.testUser)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongKey() {
	otherPrivate, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	otherConfig := *s.jwtConfig
	otherConfig.PrivateKey = otherPrivate
	otherConfig.PublicKey = otherPublic
	otherService := NewTokenService(&otherConfig)

	token, _, err := otherService.GenerateAccessToken(s.testUser)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestExtractTokenFromHeader() {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"standard bearer", "Bearer abc123", "abc123", false},
		{"lowercase bearer", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing prefix", "abc123", "", true},
		{"prefix only", "Bearer ", "", true},
		{"wrong scheme", "Basic abc123", "", true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			token, err := s.service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				s.ErrorIs(err, ErrInvalidAuthHeader)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.want, token)
		})
	}
}
