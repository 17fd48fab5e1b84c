package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/smarterworkco/GPT-UI/internal/service"
	"github.com/spf13/cobra"
)

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  "Create accounts directly in the configured database",
	}

	cmd.AddCommand(UserCreateCmd())

	return cmd
}

func UserCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user and their business",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserCreate,
	}

	cmd.Flags().String("email", "", "Email address (required)")
	cmd.Flags().String("password", "", "Password (required)")
	cmd.Flags().String("business", "", "Business name (defaults to \"<username>'s Business\")")
	cmd.Flags().String("industry", "", "Business industry")
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	if rt.pool == nil {
		return fmt.Errorf("BIZHUB_DATABASE_URL is not set; accounts in the in-memory store do not outlive this command")
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	businessName, _ := cmd.Flags().GetString("business")
	industry, _ := cmd.Flags().GetString("industry")
	outputFormat, _ := cmd.Flags().GetString("output")

	authSvc := service.NewAuthService(rt.repo, service.NewTokenIssuer(rt.cfg.JWTSecret, rt.cfg.TokenTTL))
	res, err := authSvc.Register(ctx, service.RegisterInput{
		Username:     args[0],
		Email:        email,
		Password:     password,
		BusinessName: businessName,
		Industry:     industry,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if outputFormat == "json" {
		jsonBytes, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "User created: %s (id %d), business %q (id %d)\n",
			res.User.Username, res.User.ID, res.Business.Name, res.Business.ID)
	}
	return nil
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the demo account and documents",
		Long:  "Create the demo user, business and sample documents if they do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rt, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			authSvc := service.NewAuthService(rt.repo, service.NewTokenIssuer(rt.cfg.JWTSecret, rt.cfg.TokenTTL))
			biz, err := repository.Seed(ctx, rt.repo, authSvc.HashPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Demo account %q ready (business id %d)\n", repository.DemoUsername, biz.ID)
			return nil
		},
	}
}
