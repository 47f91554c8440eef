package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdToken() *cli.Command {
	var secret string
	var userID string
	var ttl time.Duration

	return &cli.Command{
		Name:  "token",
		Usage: "Print a signed bearer token for local use",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "jwt-secret",
				Usage:       "HS256 secret shared with the server",
				Required:    true,
				Sources:     cli.EnvVars("SAFETYDOCS_JWT_SECRET"),
				Destination: &secret,
			},
			&cli.StringFlag{
				Name:        "user-id",
				Aliases:     []string{"u"},
				Usage:       "User ID put into the sub claim",
				Required:    true,
				Destination: &userID,
			},
			&cli.DurationFlag{
				Name:        "ttl",
				Usage:       "Token lifetime",
				Value:       24 * time.Hour,
				Destination: &ttl,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			token, err := usecase.IssueToken([]byte(secret), types.UserID(userID), ttl, time.Now())
			if err != nil {
				return goerr.Wrap(err, "failed to issue token")
			}
			_, err = fmt.Fprintln(c.Root().Writer, token)
			return err
		},
	}
}
