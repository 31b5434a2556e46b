package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/yatube/post-service/internal/dto"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"github.com/yatube/post-service/internal/service"
)

var errMissingCredentials = errors.New("--username and --password are required")

func createAdminCmd() *cobra.Command {
	var input dto.SignUpRequest

	cmd := &cobra.Command{
		Use:   "createadmin",
		Short: "Create a staff account that may manage groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Username == "" || input.Password == "" {
				return errMissingCredentials
			}
			return createAdmin(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVar(&input.Username, "username", "", "admin username")
	cmd.Flags().StringVar(&input.Password, "password", "", "admin password")

	return cmd
}

func createAdmin(ctx context.Context, input dto.SignUpRequest) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	services := service.New(a.logger, repository.New(a.storage, redisrepo.NewNoop()), nil)
	author, err := services.Author.CreateAdmin(ctx, input)
	if err != nil {
		a.logger.Sugar().Errorf("failed to create admin(%s): %s", input.Username, err.Error())
		return err
	}

	a.logger.Sugar().Infof("admin(%s) created with id %s", author.Username, author.ID)
	return nil
}
