package userapp

import (
	"context"
	"strconv"
	"time"

	"localinfo/internal/core/apperr"
	"localinfo/internal/core/converter"
	userEntity "localinfo/internal/core/user"
	"localinfo/internal/ports/transaction"
	userPort "localinfo/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long a login token stays valid.
const TokenTTL = 24 * time.Hour

const Issuer = "localinfo"

type UserService struct {
	UserRepository userPort.UserRepository
	tx             transaction.Manager
	jwtKey         []byte
	logger         *zap.Logger
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, tx transaction.Manager, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		tx:             tx,
		jwtKey:         jwtKey,
		logger:         logger,
		now:            time.Now,
	}
}

// LoginUser checks the credentials and issues a signed JWT.
func (s *UserService) LoginUser(ctx context.Context, email string, password string) (*userPort.LoginResponse, error) {
	user, found, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.Uint("user_id", user.ID))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	expiresAt := s.now().Add(TokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, err
	}
	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	claims := &jwt.StandardClaims{
		Id:        jti.String(),
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		Issuer:    Issuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser validates the request, hashes the password and stores the user.
func (s *UserService) RegisterUser(ctx context.Context, req userPort.RegisterRequest) (*userPort.UserResponse, error) {
	user, err := userEntity.New(req.Name, req.Nickname, req.Email, req.Password, req.Roles, converter.ToRegion(req))
	if err != nil {
		return nil, err
	}
	if err := s.hashPassword(user, req.Password); err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.UserRepository.EmailTaken(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
		user, err = s.UserRepository.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return converter.ToUserResponse(user), nil
}

func (s *UserService) FindUser(ctx context.Context, id uint) (*userPort.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.ToUserResponse(user), nil
}

func (s *UserService) FindUsers(ctx context.Context) ([]*userPort.UserResponse, error) {
	users, err := s.UserRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*userPort.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, converter.ToUserResponse(u))
	}
	return res, nil
}

// EditUser replaces the profile of an existing user with the request.
func (s *UserService) EditUser(ctx context.Context, id uint, req userPort.RegisterRequest) (*userPort.UserResponse, error) {
	edited, err := userEntity.New(req.Name, req.Nickname, req.Email, req.Password, req.Roles, converter.ToRegion(req))
	if err != nil {
		return nil, err
	}
	if err := s.hashPassword(edited, req.Password); err != nil {
		return nil, err
	}

	var user *userEntity.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.findUser(ctx, id)
		if err != nil {
			return err
		}
		if current.Email != edited.Email {
			taken, err := s.UserRepository.EmailTaken(ctx, edited.Email)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("email %s is already registered", edited.Email)
			}
		}

		current.Name = edited.Name
		current.Nickname = edited.Nickname
		current.Email = edited.Email
		current.Password = edited.Password
		current.Roles = edited.Roles
		current.Region = edited.Region
		user, err = s.UserRepository.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user edited", zap.Uint("user_id", id))
	return converter.ToUserResponse(user), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.findUser(ctx, id); err != nil {
			return err
		}
		return s.UserRepository.SoftDelete(ctx, id, s.now())
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *UserService) hashPassword(user *userEntity.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

func (s *UserService) findUser(ctx context.Context, id uint) (*userEntity.User, error) {
	user, found, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}
