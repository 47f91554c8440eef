package usecase

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

const (
	// TokenIssuer is set as iss of issued tokens and required on verification
	TokenIssuer = "safetydocs"

	// MinSecretLength is the minimum HS256 key length in bytes
	MinSecretLength = 32

	tokenSkew = 30 * time.Second
)

// Authenticator resolves a bearer token to the actor of a request
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Actor, error)
	// IsNoAuthn is true when tokens are ignored
	IsNoAuthn() bool
}

// JWTAuthenticator verifies HS256 tokens whose subject is a user id
type JWTAuthenticator struct {
	repo   interfaces.Repository
	secret []byte
	now    func() time.Time
}

func NewJWTAuthenticator(repo interfaces.Repository, secret []byte) (*JWTAuthenticator, error) {
	if len(secret) < MinSecretLength {
		return nil, goerr.New("JWT secret is too short", goerr.V("min_length", MinSecretLength))
	}
	return &JWTAuthenticator{repo: repo, secret: secret, now: time.Now}, nil
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Actor, error) {
	if token == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "token is empty")
	}

	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithClock(jwt.ClockFunc(a.now)),
		jwt.WithAcceptableSkew(tokenSkew),
	)
	if err != nil {
		return nil, goerr.Wrap(ErrUnauthenticated, "invalid token", goerr.V("error", err.Error()))
	}
	if tok.Subject() == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "token has no subject")
	}

	return resolveActor(ctx, a.repo, types.UserID(tok.Subject()))
}

func (a *JWTAuthenticator) IsNoAuthn() bool {
	return false
}

// IssueToken signs a token for userID valid for ttl
func IssueToken(secret []byte, userID types.UserID, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) < MinSecretLength {
		return "", goerr.New("JWT secret is too short", goerr.V("min_length", MinSecretLength))
	}
	if userID == "" {
		return "", goerr.New("user id is required")
	}

	tok, err := jwt.NewBuilder().
		Issuer(TokenIssuer).
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// NoAuthnUseCase runs every request as one fixed user (for development)
type NoAuthnUseCase struct {
	repo   interfaces.Repository
	userID types.UserID
}

func NewNoAuthnUseCase(repo interfaces.Repository, userID types.UserID) *NoAuthnUseCase {
	return &NoAuthnUseCase{repo: repo, userID: userID}
}

func (uc *NoAuthnUseCase) Authenticate(ctx context.Context, _ string) (*auth.Actor, error) {
	return resolveActor(ctx, uc.repo, uc.userID)
}

func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}

// denyAuthenticator is used when no authenticator is configured
type denyAuthenticator struct{}

func (denyAuthenticator) Authenticate(context.Context, string) (*auth.Actor, error) {
	return nil, goerr.Wrap(ErrUnauthenticated, "authentication is not configured")
}

func (denyAuthenticator) IsNoAuthn() bool {
	return false
}

func resolveActor(ctx context.Context, repo interfaces.Repository, id types.UserID) (*auth.Actor, error) {
	user, err := repo.User().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrUnauthenticated, "unknown user", goerr.V(UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}
	if !user.Active {
		return nil, goerr.Wrap(ErrInactiveUser, "user is deactivated", goerr.V(UserIDKey, id))
	}
	return &auth.Actor{UserID: user.ID, Role: user.Role}, nil
}
