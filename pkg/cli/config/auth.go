package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/interfaces"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Auth struct {
	jwtSecret string
	noAuthUID string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HS256 secret used to verify bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("SAFETYDOCS_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run every request as the given user ID (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("SAFETYDOCS_NO_AUTH"),
			Destination: &x.noAuthUID,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt-secret.len", len(x.jwtSecret)),
		slog.String("no-auth", x.noAuthUID),
	)
}

// Secret returns the JWT secret, also used to redact it from logs
func (x *Auth) Secret() string {
	return x.jwtSecret
}

// NoAuthUID returns the user every request runs as in no-auth mode
func (x *Auth) NoAuthUID() types.UserID {
	return types.UserID(x.noAuthUID)
}

// IsNoAuthMode returns true if no-auth mode is enabled
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuthUID != ""
}

// Configure returns the request authenticator. No-auth mode takes
// precedence over a configured secret.
func (x *Auth) Configure(repo interfaces.Repository) (usecase.Authenticator, error) {
	if x.noAuthUID != "" {
		if x.jwtSecret != "" {
			slog.Warn("--no-auth is set, ignoring --jwt-secret")
		}
		return usecase.NewNoAuthnUseCase(repo, x.NoAuthUID()), nil
	}

	if x.jwtSecret == "" {
		return nil, goerr.Wrap(ErrMissingOption, "authentication is required: set --jwt-secret or use --no-auth")
	}

	authn, err := usecase.NewJWTAuthenticator(repo, []byte(x.jwtSecret))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure JWT authentication")
	}
	return authn, nil
}
