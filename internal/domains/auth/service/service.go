package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/infras/jwt"
	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/auth/model/dto"
	userModel "tonyspizza/internal/domains/user/model"
	userDto "tonyspizza/internal/domains/user/model/dto"
	userRepo "tonyspizza/internal/domains/user/repository"
	"tonyspizza/shared"
	"tonyspizza/shared/cache"
	"tonyspizza/shared/constant"
	gDto "tonyspizza/shared/dto"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/password"
	"tonyspizza/shared/timezone"
)

const (
	cacheRevokedSession = "session:revoked"

	msgInvalidCredentials = "Please enter a correct username and password."
	msgInactiveAccount    = "This account is inactive."
	msgUsernameTaken      = "A user with that username already exists."
	msgSessionInvalid     = "session is no longer valid"
)

// Auth is the identity provider: it turns credentials into sessions and
// session tokens back into identities.
type Auth interface {
	Authenticate(ctx context.Context, req dto.Credentials) (dto.Session, error)
	CurrentIdentity(ctx context.Context, token string) (dto.Identity, error)
	Register(ctx context.Context, req dto.SignupRequest) (dto.Session, error)
	Logout(ctx context.Context, token string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func filterByUsername(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    username,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Authenticate(ctx context.Context, req dto.Credentials) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := filterByUsername(req.Username)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("user_id", user.ID).Msg("failed to verify password")

			return res, fmt.Errorf("failed to verify password: %w", err)
		}

		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.BadRequestFromString(msgInactiveAccount) // nolint:wrapcheck
	}

	res, err = s.issue(user)
	if err != nil {
		return res, err
	}

	lastLogin := userDto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	if _, updateErr := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.Username), shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); updateErr != nil {
		log.Warn().Err(updateErr).Str("user_id", user.ID).Msg("failed to update last login")
	}

	return res, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.SignupRequest) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, filterByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.FieldError("username", msgUsernameTaken) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password1)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		// a concurrent signup can take the name between the check and the insert
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.FieldError("username", msgUsernameTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return s.issue(user)
}

// CurrentIdentity resolves a session token. Expired, tampered and revoked
// tokens, and tokens of deleted or deactivated users, are Unauthorized.
func (s *serviceImpl) CurrentIdentity(ctx context.Context, token string) (res dto.Identity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CurrentIdentity")
	defer scope.End()

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return res, failure.Unauthorized(err.Error()) // nolint:wrapcheck
	}

	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheRevokedSession, claims.TokenID()))
	if err != nil {
		// revocation list unavailable, the signature and expiry checks still hold
		log.Warn().Err(err).Msg("failed to check session revocation")
	}

	if revoked {
		return res, failure.Unauthorized(msgSessionInvalid) // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session user")

		return res, fmt.Errorf("failed to get session user: %w", err)
	}

	if user.ID == "" || !user.Active {
		return res, failure.Unauthorized(msgSessionInvalid) // nolint:wrapcheck
	}

	return dto.Identity{
		UserID:   user.ID,
		Username: user.Username,
		TokenID:  claims.TokenID(),
	}, nil
}

// Logout revokes the token until it would have expired on its own.
// An already invalid token is not an error.
func (s *serviceImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}

	ttl := 1
	if claims.ExpiresAt != nil {
		ttl = max(int(time.Until(claims.ExpiresAt.Time).Seconds())+1, 1)
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedSession, claims.TokenID()), claims.UserID, ttl); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke session")

		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (s *serviceImpl) issue(user userModel.User) (res dto.Session, err error) {
	session, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return res, fmt.Errorf("failed to generate session token: %w", err)
	}

	res.FromJWT(session, user)

	return res, nil
}
