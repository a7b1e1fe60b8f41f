package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/config"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateSeller(ctx context.Context, req dto.CreateSellerRequest) (*dto.SellerResponse, error)
	ListSellers(ctx context.Context) ([]dto.SellerResponse, error)
	UpdateSeller(ctx context.Context, id uuid.UUID, req dto.UpdateSellerRequest) (*dto.SellerResponse, error)
	DeleteSeller(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.SellerRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.SellerRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	seller, err := s.repo.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, apierror.Forbidden("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Forbidden("invalid credentials")
	}

	seller.LastSeen = time.Now()
	_ = s.repo.Update(ctx, seller)

	return s.buildTokens(seller)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Forbidden("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Forbidden("malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, apierror.Forbidden("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apierror.Forbidden("malformed token")
	}

	seller, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, apierror.Forbidden("seller not found")
	}
	return s.buildTokens(seller)
}

func (s *authService) buildTokens(seller *model.Seller) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(seller, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(seller, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         sellerToResponse(seller),
	}, nil
}

func (s *authService) generateToken(seller *model.Seller, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": seller.ID.String(),
		"login":   seller.Login,
		"role":    seller.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CreateSeller(ctx context.Context, req dto.CreateSellerRequest) (*dto.SellerResponse, error) {
	if existing, err := s.repo.FindByLogin(ctx, req.Login); err == nil && existing != nil {
		return nil, apierror.Conflict("login already in use")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = model.RoleSeller
	}
	seller := &model.Seller{
		Firstname:    req.Firstname,
		Phone:        req.Phone,
		Login:        req.Login,
		PasswordHash: string(hash),
		Role:         role,
		Status:       req.Status,
	}
	if err := s.repo.Create(ctx, seller); err != nil {
		return nil, err
	}
	resp := sellerToResponse(seller)
	return &resp, nil
}

func (s *authService) ListSellers(ctx context.Context) ([]dto.SellerResponse, error) {
	sellers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SellerResponse, len(sellers))
	for i := range sellers {
		resp[i] = sellerToResponse(&sellers[i])
	}
	return resp, nil
}

func (s *authService) UpdateSeller(ctx context.Context, id uuid.UUID, req dto.UpdateSellerRequest) (*dto.SellerResponse, error) {
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("seller not found")
	}
	if req.Firstname != "" {
		seller.Firstname = req.Firstname
	}
	if req.Phone != "" {
		seller.Phone = req.Phone
	}
	if req.Role != "" {
		seller.Role = req.Role
	}
	if req.Status != "" {
		seller.Status = req.Status
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		seller.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, seller); err != nil {
		return nil, err
	}
	resp := sellerToResponse(seller)
	return &resp, nil
}

func (s *authService) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("seller not found")
	}
	return s.repo.Delete(ctx, id)
}

func sellerToResponse(s *model.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:        s.ID.String(),
		Firstname: s.Firstname,
		Phone:     s.Phone,
		Login:     s.Login,
		Role:      s.Role,
		Status:    s.Status,
	}
}
