package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vitalink/internal/config"
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/gateway"
	"vitalink/internal/logger"
	"vitalink/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const minPasswordLength = 8

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthAPI is the slice of the gateway auth client this service consumes.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (*gateway.AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*gateway.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthService drives the session state machine:
// Anonymous -> CredentialsVerified (pending OTP) -> Authenticated.
// The pending state exists exactly when a challenge is stored for the email;
// the authenticated state is a signed session token.
type AuthService interface {
	SignUp(ctx context.Context, email, password, confirmPassword string) (*domain.ProvisionalIdentity, error)
	CompleteProfile(ctx context.Context, identity domain.ProvisionalIdentity, firstName, lastName string, health domain.HealthProfile) (*domain.Profile, error)
	SignIn(ctx context.Context, email, password string) error
	VerifyOtp(ctx context.Context, email, code string) (*VerifyResult, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	Logout(ctx context.Context, userID string) error
}

// VerifyResult is the outcome of a successful second factor: a session token
// plus the fully assembled profile.
type VerifyResult struct {
	Token   string
	Profile domain.Profile
}

// otpChallenge is the pending-login record stored per email. Exactly one is
// outstanding per email; storing a new one replaces the old. The store entry
// expires, so stale challenges cannot be verified.
type otpChallenge struct {
	Code        string    `json:"code"`
	AccessToken string    `json:"accessToken"`
	IssuedAt    time.Time `json:"issuedAt"`
}

type authServiceImpl struct {
	authAPI    AuthAPI
	userRepo   repository.UserRepository
	pointsRepo repository.PointsRepository
	sender     domain.CodeSender
	cache      domain.Cache
	authCfg    config.AuthConfig
}

func NewAuthService(
	authAPI AuthAPI,
	userRepo repository.UserRepository,
	pointsRepo repository.PointsRepository,
	sender domain.CodeSender,
	cache domain.Cache,
	authCfg config.AuthConfig,
) AuthService {
	return &authServiceImpl{
		authAPI:    authAPI,
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
		sender:     sender,
		cache:      cache,
		authCfg:    authCfg,
	}
}

// SignUp validates the password locally before any network call, then
// delegates account creation to the backend. The returned identity is
// provisional: the account is unusable until CompleteProfile has run.
func (s *authServiceImpl) SignUp(ctx context.Context, email, password, confirmPassword string) (*domain.ProvisionalIdentity, error) {
	if len(password) < minPasswordLength {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}
	if password != confirmPassword {
		return nil, domain.NewValidationError("password confirmation does not match")
	}

	authUser, err := s.authAPI.SignUp(ctx, email, password)
	if err != nil {
		return nil, domain.NewAuthError("sign-up failed", err)
	}

	logger.Get().Info("Account created", zap.String("userID", authUser.ID))
	return &domain.ProvisionalIdentity{ID: authUser.ID, Email: authUser.Email}, nil
}

// CompleteProfile creates the user row, the health profile row and the zero
// points ledger entry, in that order. When a later write fails, the earlier
// rows are deleted again so a retry starts from a clean slate, and the
// returned error names the write that failed.
func (s *authServiceImpl) CompleteProfile(ctx context.Context, identity domain.ProvisionalIdentity, firstName, lastName string, health domain.HealthProfile) (*domain.Profile, error) {
	user := domain.User{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.userRepo.CreateUser(ctx, &user); err != nil {
		return nil, domain.NewPersistenceError("users insert", err)
	}

	health.UserID = identity.ID
	if err := s.userRepo.CreateHealthProfile(ctx, &health); err != nil {
		s.compensateProfile(ctx, identity.ID, false)
		return nil, domain.NewPersistenceError("user_health_profiles insert", err)
	}

	if err := s.pointsRepo.InitPoints(ctx, identity.ID); err != nil {
		s.compensateProfile(ctx, identity.ID, true)
		return nil, domain.NewPersistenceError("user_points insert", err)
	}

	logger.Get().Info("Profile completed", zap.String("userID", identity.ID))
	return &domain.Profile{User: user, Health: health}, nil
}

// compensateProfile deletes the rows an aborted CompleteProfile left behind.
// Failures here are logged, not surfaced; the caller already has the primary
// error.
func (s *authServiceImpl) compensateProfile(ctx context.Context, userID string, healthCreated bool) {
	appLogger := logger.Get()
	if healthCreated {
		if err := s.userRepo.DeleteHealthProfile(ctx, userID); err != nil {
			appLogger.Error("Compensation failed: health profile row left behind",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		appLogger.Error("Compensation failed: user row left behind",
			zap.String("userID", userID), zap.Error(err))
	}
}

// SignIn verifies credentials against the backend, then issues the OTP
// challenge. The pending-OTP state is only entered once the challenge is
// stored; an OTP delivery failure terminates the backend session and the
// flow restarts.
func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) error {
	session, err := s.authAPI.SignInWithPassword(ctx, email, password)
	if err != nil {
		return domain.NewAuthError("invalid email or password", err)
	}

	code, err := s.sender.SendCode(ctx, email)
	if err != nil {
		s.signOutQuietly(ctx, session.AccessToken)
		return domain.NewAuthError("failed to deliver one-time passcode", err)
	}

	challenge := otpChallenge{
		Code:        code,
		AccessToken: session.AccessToken,
		IssuedAt:    time.Now().UTC(),
	}
	raw, err := json.Marshal(challenge)
	if err != nil {
		s.signOutQuietly(ctx, session.AccessToken)
		return domain.NewInternalError("failed to encode challenge", err)
	}
	if err := s.cache.Set(ctx, s.challengeKey(email), string(raw), s.authCfg.OTPTTL); err != nil {
		s.signOutQuietly(ctx, session.AccessToken)
		return domain.NewAuthError("failed to store one-time passcode challenge", err)
	}

	logger.Get().Info("OTP challenge issued", zap.String("email", email))
	return nil
}

// VerifyOtp completes the second factor. The code must match the single
// outstanding challenge for the email, or the development bypass code when
// that is explicitly enabled in configuration. Any failure terminates the
// backend session; the caller restarts from SignIn.
func (s *authServiceImpl) VerifyOtp(ctx context.Context, email, code string) (*VerifyResult, error) {
	raw, err := s.cache.Get(ctx, s.challengeKey(email))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewAuthError("no pending sign-in for this email", nil)
		}
		return nil, domain.NewInternalError("failed to read challenge", err)
	}

	var challenge otpChallenge
	if err := json.Unmarshal([]byte(raw), &challenge); err != nil {
		return nil, domain.NewInternalError("failed to decode challenge", err)
	}

	matched := code == challenge.Code
	if !matched && s.authCfg.AllowDevOTP && code == s.authCfg.DevOTPCode {
		logger.Get().Warn("Development bypass code used", zap.String("email", email))
		matched = true
	}
	if !matched {
		s.signOutQuietly(ctx, challenge.AccessToken)
		s.deleteChallengeQuietly(ctx, email)
		return nil, domain.NewAuthError("incorrect one-time passcode", nil)
	}

	// Challenge is consumed on success; a second verify must restart.
	s.deleteChallengeQuietly(ctx, email)

	profile, err := s.loadProfile(ctx, challenge.AccessToken)
	if err != nil {
		return nil, err
	}

	token, err := s.createToken(profile.User)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue session token", err)
	}

	// Keep the backend access token so Logout can revoke it later.
	if err := s.cache.Set(ctx, s.sessionKey(profile.User.ID), challenge.AccessToken, s.authCfg.TokenTTL); err != nil {
		logger.Get().Warn("Failed to store backend session token",
			zap.String("userID", profile.User.ID), zap.Error(err))
	}

	logger.Get().Info("Session authenticated", zap.String("userID", profile.User.ID))
	return &VerifyResult{Token: token, Profile: *profile}, nil
}

// loadProfile assembles identity, health profile and points as one atomic
// read: the three fetches run together and any failure fails the whole load.
func (s *authServiceImpl) loadProfile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	claims, err := parseBackendUserID(accessToken)
	if err != nil {
		s.signOutQuietly(ctx, accessToken)
		return nil, domain.NewAuthError("backend session is not usable", err)
	}

	var (
		user   *domain.User
		health *domain.HealthProfile
		points int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.GetUserByID(gctx, claims)
		return err
	})
	g.Go(func() error {
		var err error
		health, err = s.userRepo.GetHealthProfile(gctx, claims)
		return err
	})
	g.Go(func() error {
		var err error
		points, err = s.pointsRepo.GetPoints(gctx, claims)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load profile", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user profile not found")
	}

	user.Points = points
	profile := domain.Profile{User: *user}
	if health != nil {
		profile.Health = *health
	}
	return &profile, nil
}

// ValidateToken checks a session token and returns its claims.
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWTToken
		}
		return []byte(s.authCfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

// Logout revokes the backend session and drops the server-side session
// record. Persisted data is untouched.
func (s *authServiceImpl) Logout(ctx context.Context, userID string) error {
	accessToken, err := s.cache.Get(ctx, s.sessionKey(userID))
	if err == nil && accessToken != "" {
		s.signOutQuietly(ctx, accessToken)
	}
	if err := s.cache.Delete(ctx, s.sessionKey(userID)); err != nil {
		return domain.NewInternalError("failed to drop session", err)
	}
	logger.Get().Info("Session ended", zap.String("userID", userID))
	return nil
}

func (s *authServiceImpl) createToken(user domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authCfg.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func (s *authServiceImpl) signOutQuietly(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := s.authAPI.SignOut(ctx, accessToken); err != nil {
		logger.Get().Warn("Backend sign-out failed", zap.Error(err))
	}
}

func (s *authServiceImpl) deleteChallengeQuietly(ctx context.Context, email string) {
	if err := s.cache.Delete(ctx, s.challengeKey(email)); err != nil {
		logger.Get().Warn("Failed to delete OTP challenge", zap.String("email", email), zap.Error(err))
	}
}

func (s *authServiceImpl) challengeKey(email string) string {
	return cacheKey("auth", "challenge", email)
}

func (s *authServiceImpl) sessionKey(userID string) string {
	return cacheKey("auth", "session", userID)
}

// parseBackendUserID extracts the subject from the backend access token
// without verifying its signature; the token was just issued to us by the
// backend over the authenticated channel.
func parseBackendUserID(accessToken string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidJWTToken
	}
	return sub, nil
}
