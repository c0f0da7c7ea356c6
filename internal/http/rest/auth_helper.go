package rest

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/qhub/qhub_api/internal/model"
	"github.com/qhub/qhub_api/util"
	"github.com/qhub/qhub_api/util/values"
)

// ErrTokenExpired marks an otherwise well-formed token whose expiry has
// passed, so callers can map it to a distinct status.
var ErrTokenExpired = errors.New("token expired")

// TokenClaims is the subset of the JWT payload the API cares about.
type TokenClaims struct {
	UserID   string
	Username string
	Type     string
	Exp      int64
}

func parseExpiry(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid token expiry %q, defaulting to %s: %v", raw, fallback, err)
		return fallback
	}
	return d
}

func (api *API) createAccessToken(userID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"typ":      "access",
		"iat":      now.Unix(),
		"exp":      now.Add(parseExpiry(api.Config.JwtExpires, 15*time.Minute)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", errors.Wrap(err, "signing access token")
	}
	return signed, nil
}

func (api *API) createRefreshToken(userID, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(parseExpiry(api.Config.RefreshExpiry, 168*time.Hour))
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"typ":      "refresh",
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(api.Config.RefreshSecret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "signing refresh token")
	}
	return signed, expiresAt, nil
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hashed), nil
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CreateNewUser registers a new account after checking username and email
// are not already taken.
func (api *API) CreateNewUser(ctx context.Context, req model.RegisterRequest) (model.LoginUserResponse, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.LoginUserResponse{}, values.BadRequestBody, "invalid registration details", err
	}

	emailTaken, err := api.EmailExists(ctx, req.Email)
	if err != nil {
		return model.LoginUserResponse{}, values.Error, "unable to check email", err
	}
	if emailTaken {
		return model.LoginUserResponse{}, values.Conflict, "email already in use", errors.New("email already in use")
	}

	usernameTaken, err := api.UsernameExists(ctx, req.Username)
	if err != nil {
		return model.LoginUserResponse{}, values.Error, "unable to check username", err
	}
	if usernameTaken {
		return model.LoginUserResponse{}, values.Conflict, "username already in use", errors.New("username already in use")
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return model.LoginUserResponse{}, values.Error, "unable to process password", err
	}

	user := model.User{
		ID:           util.GenerateUUID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := api.CreateNewUserRepo(ctx, user); err != nil {
		return model.LoginUserResponse{}, values.Error, "unable to create user", err
	}

	return model.LoginUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}, values.Created, "User registered successfully", nil
}

// LoginUser verifies credentials and issues an access/refresh token pair.
func (api *API) LoginUser(ctx context.Context, req model.LoginRequest) (model.LoginResponse, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.LoginResponse{}, values.BadRequestBody, "invalid login details", err
	}

	user, err := api.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.LoginResponse{}, values.NotAuthorised, "invalid email or password", err
		}
		return model.LoginResponse{}, values.Error, "unable to look up user", err
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		return model.LoginResponse{}, values.NotAuthorised, "invalid email or password", errors.New("password mismatch")
	}

	accessToken, err := api.createAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return model.LoginResponse{}, values.Error, "unable to create token", err
	}

	refreshToken, expiresAt, err := api.createRefreshToken(user.ID.String(), user.Username)
	if err != nil {
		return model.LoginResponse{}, values.Error, "unable to create refresh token", err
	}

	if err := api.StoreAuthToken(ctx, user.ID, "refresh", refreshToken, expiresAt); err != nil {
		log.Printf("storing refresh token for %s: %v", user.ID, err)
	}

	return model.LoginResponse{
		User: &model.LoginUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, values.Success, "Login successful", nil
}

// RefreshAccessToken exchanges a valid, unrevoked refresh token for a new
// access token.
func (api *API) RefreshAccessToken(ctx context.Context, refreshToken string) (model.LoginResponse, string, string, error) {
	if !util.NotBlank(refreshToken) {
		return model.LoginResponse{}, values.BadRequestBody, "refresh token is required", errors.New("empty refresh token")
	}

	claims, err := api.verifyToken(refreshToken, true)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return model.LoginResponse{}, values.TokenExpired, "refresh token expired", err
		}
		return model.LoginResponse{}, values.NotAuthorised, "invalid refresh token", err
	}

	valid, err := api.AuthTokenIsValid(ctx, refreshToken)
	if err != nil {
		return model.LoginResponse{}, values.Error, "unable to validate refresh token", err
	}
	if !valid {
		return model.LoginResponse{}, values.NotAuthorised, "refresh token revoked", errors.New("refresh token revoked or unknown")
	}

	user, err := api.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return model.LoginResponse{}, values.NotAuthorised, "user not found", err
	}

	accessToken, err := api.createAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return model.LoginResponse{}, values.Error, "unable to create token", err
	}

	return model.LoginResponse{
		User: &model.LoginUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, values.Success, "Token refreshed successfully", nil
}
