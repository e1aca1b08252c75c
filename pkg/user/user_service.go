package user

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)
		CheckActive(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		sendMail       mailing.Sender
		appURL         string
	}
)

// NewUserService wires the account flows. A nil sender disables the welcome mail.
func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, sendMail mailing.Sender, appURL string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		sendMail:       sendMail,
		appURL:         appURL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if exists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	if s.sendMail != nil {
		go s.sendWelcome(user.Email, user.Name)
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsNotMatched
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsNotMatched
	}
	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrUserInactive
	}

	token, err := s.jwtService.GenerateTokenUser(strconv.FormatUint(uint64(user.ID), 10), domain.RoleUser)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		Role:  domain.RoleUser,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// CheckActive fails with ErrUserNotFound or ErrUserInactive for token
// subjects that may no longer sign in.
func (s *userService) CheckActive(ctx context.Context, userID string) error {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	user, err := s.userRepository.GetUserByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if !user.IsActive {
		return domain.ErrUserInactive
	}
	return nil
}

func (s *userService) sendWelcome(email, name string) {
	body, err := mailing.WelcomeBody(name, s.appURL)
	if err != nil {
		log.Errorf("render welcome mail: %v", err)
		return
	}
	if err := s.sendMail(email, "Welcome to Recipe Catalog", body); err != nil {
		log.Errorf("send welcome mail to %s: %v", email, err)
	}
}

// normalizeEmail lowercases the domain part only; the local part may be case sensitive.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}
