package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/validator"

	"github.com/medboard/hospital-api/internal/model"
	"github.com/medboard/hospital-api/internal/service/staff"
)

type Config struct {
	Secret      string
	ExpiryHours int
}

// Service issues login tokens. Routes do not enforce them: the system
// runs unauthenticated and the token is advisory context for the UI.
type Service struct {
	staff    *staff.Service
	cfg      Config
	sessions *cache.Cache
	validate *validator.Validator
}

func NewService(staffSvc *staff.Service, cfg Config, v *validator.Validator) *Service {
	if cfg.ExpiryHours <= 0 {
		cfg.ExpiryHours = 24
	}
	expiry := time.Duration(cfg.ExpiryHours) * time.Hour
	return &Service{
		staff:    staffSvc,
		cfg:      cfg,
		sessions: cache.New(expiry, 2*expiry),
		validate: v,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	member, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.Unauthorized(nil)
	}

	expiry := time.Duration(s.cfg.ExpiryHours) * time.Hour
	claims := jwt.MapClaims{
		"staff_id":    member.ID,
		"email":       member.Email,
		"role":        member.Role,
		"hospital_id": member.HospitalID,
		"exp":         time.Now().Add(expiry).Unix(),
		"iat":         time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.sessions.Set(token, &model.TokenClaims{
		StaffID:    member.ID,
		Email:      member.Email,
		Role:       member.Role,
		HospitalID: member.HospitalID,
	}, cache.DefaultExpiration)

	return &model.LoginResponse{
		Token:      token,
		Role:       member.Role,
		HospitalID: member.HospitalID,
	}, nil
}

// Session resolves a previously issued token from the session cache.
func (s *Service) Session(token string) (*model.TokenClaims, bool) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, false
	}
	return v.(*model.TokenClaims), true
}
