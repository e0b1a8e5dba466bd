package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/jwt"
	"inn/infras/otel"
	"inn/internal/domains/auth/model/dto"
	userModel "inn/internal/domains/user/model"
	userDto "inn/internal/domains/user/model/dto"
	userRepo "inn/internal/domains/user/repository"
	"inn/shared/constant"
	gDto "inn/shared/dto"
	"inn/shared/failure"
	"inn/shared/password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Token(ctx context.Context, req dto.TokenRequest) (dto.TokenResponse, error)
	ResolveToken(ctx context.Context, tokenString string) (userModel.User, *jwt.Claims, error)
	GetUsers(ctx context.Context, req gDto.QueryParams) (userDto.GetUsersResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	usernameFilter := usernameFilter(req.Username)

	exists, err := s.userRepo.Exist(ctx, usernameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("username already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(req.Username, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Token(ctx context.Context, req dto.TokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Token")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("token request for unknown username")

		return res, failure.Unauthorized("invalid credentials")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("token request with wrong password")

		return res, failure.Unauthorized("invalid credentials")
	}

	if !user.Active {
		return res, failure.Unauthorized("inactive user")
	}

	token, err := s.jwtService.Issue(user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")

		return res, fmt.Errorf("failed to issue token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

// ResolveToken verifies the bearer token and loads the subject user, which
// must still exist and be active.
func (s *serviceImpl) ResolveToken(ctx context.Context, tokenString string) (user userModel.User, claims *jwt.Claims, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err = s.jwtService.Validate(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return user, nil, failure.Unauthorized("token has expired")
		case errors.Is(err, jwt.ErrInvalidClaim):
			return user, nil, failure.Unauthorized("invalid token type")
		default:
			return user, nil, failure.Unauthorized("invalid credentials")
		}
	}

	user, err = s.userRepo.Get(ctx, usernameFilter(claims.Subject))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user for token")

		return user, nil, fmt.Errorf("failed to get user for token: %w", err)
	}

	if user.ID == constant.Empty {
		return user, nil, failure.Unauthorized("invalid credentials")
	}

	if !user.Active {
		return user, nil, failure.Unauthorized("inactive user")
	}

	return user, claims, nil
}

func (s *serviceImpl) GetUsers(ctx context.Context, req gDto.QueryParams) (res userDto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.userRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.userRepo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func usernameFilter(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.TrimSpace(username),
				Table:    userModel.TableName,
			},
		},
	}
}
