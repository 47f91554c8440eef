package config_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/cli/config"
	"github.com/secmon-lab/safetydocs/pkg/repository/memory"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
)

func TestAuthConfigure(t *testing.T) {
	repo := memory.New()

	t.Run("nothing configured", func(t *testing.T) {
		_, err := config.NewAuthForTest("", "").Configure(repo)
		gt.Error(t, err).Is(config.ErrMissingOption)
	})

	t.Run("no-auth wins", func(t *testing.T) {
		cfg := config.NewAuthForTest(strings.Repeat("x", usecase.MinSecretLength), "dev")
		gt.Bool(t, cfg.IsNoAuthMode()).True()

		authn, err := cfg.Configure(repo)
		gt.NoError(t, err).Required()
		gt.Bool(t, authn.IsNoAuthn()).True()
	})

	t.Run("jwt", func(t *testing.T) {
		authn, err := config.NewAuthForTest(strings.Repeat("x", usecase.MinSecretLength), "").Configure(repo)
		gt.NoError(t, err).Required()
		gt.Bool(t, authn.IsNoAuthn()).False()
	})

	t.Run("short secret", func(t *testing.T) {
		_, err := config.NewAuthForTest("short", "").Configure(repo)
		gt.Error(t, err)
	})
}

func TestRepositoryConfigure(t *testing.T) {
	ctx := t.Context()

	repo, err := config.NewRepositoryForTest("memory").Configure(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest("firestore").Configure(ctx)
	gt.Error(t, err).Is(config.ErrMissingOption)

	_, err = config.NewRepositoryForTest("postgres").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}
