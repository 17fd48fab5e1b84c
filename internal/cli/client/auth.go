package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/spf13/cobra"
)

type authResponse struct {
	Token    string           `json:"token"`
	User     *domain.User     `json:"user"`
	Business *domain.Business `json:"business"`
}

// LoginCmd creates the login command
func LoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Long:  "Authenticates with a username or email and stores the token in the global config (~/.config/bizhub/config.json)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, username, password)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username or email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

// RegisterCmd creates the register command
func RegisterCmd() *cobra.Command {
	var username, email, password, businessName, industry string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAnonymousClient(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				password, err = prompt(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
			}

			var res authResponse
			err = api.Post("/api/auth/register", map[string]string{
				"username":     username,
				"email":        email,
				"password":     password,
				"businessName": businessName,
				"industry":     industry,
			}, &res)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			return saveSession(cmd, api, &res)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&businessName, "business", "", "Business name")
	cmd.Flags().StringVar(&industry, "industry", "", "Business industry")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// LogoutCmd creates the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := DeleteGlobalConfig(); err != nil {
				return fmt.Errorf("failed to logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")
			return nil
		},
	}
}

// StatusCmd creates the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagToken, _ := cmd.Flags().GetString("token")
			flagURL, _ := cmd.Flags().GetString("api-url")
			source, token, apiURL := GetCredentialSource(flagToken, flagURL)

			if wantJSON(cmd) {
				status := map[string]any{
					"authenticated": source != SourceNone,
					"source":        string(source),
				}
				if source != SourceNone {
					status["token"] = maskToken(token)
					status["api_url"] = apiURL
				}
				return printJSON(cmd.OutOrStdout(), status)
			}

			out := cmd.OutOrStdout()
			if source == SourceNone {
				fmt.Fprintln(out, "Not authenticated")
				fmt.Fprintln(out, "Run 'bizhub login' to authenticate")
				return nil
			}
			fmt.Fprintf(out, "Authenticated: yes\n")
			fmt.Fprintf(out, "Source: %s\n", source)
			fmt.Fprintf(out, "Token: %s\n", maskToken(token))
			fmt.Fprintf(out, "API URL: %s\n", apiURL)
			return nil
		},
	}
}

func runLogin(cmd *cobra.Command, username, password string) error {
	var err error
	in := bufio.NewReader(cmd.InOrStdin())
	if username == "" {
		if username, err = prompt(cmd, in, "Username or email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = prompt(cmd, in, "Password: "); err != nil {
			return err
		}
	}

	api, err := newAnonymousClient(cmd)
	if err != nil {
		return err
	}

	var res authResponse
	if err := api.Post("/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return saveSession(cmd, api, &res)
}

func saveSession(cmd *cobra.Command, api *APIClient, res *authResponse) error {
	if res.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	cfg := &GlobalConfig{Token: res.Token, APIURL: api.BaseURL()}
	if res.User != nil {
		cfg.Username = res.User.Username
	}
	if err := SaveGlobalConfig(cfg); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"user":     res.User,
			"business": res.Business,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged in as %s\n", cfg.Username)
	if res.Business != nil {
		fmt.Fprintf(out, "Business: %s\n", res.Business.Name)
	}
	return nil
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	input, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s is required", strings.TrimSuffix(strings.TrimSpace(label), ":"))
	}
	return input, nil
}

func maskToken(token string) string {
	if len(token) < 12 {
		return "***"
	}
	return token[:6] + "..." + token[len(token)-4:]
}
