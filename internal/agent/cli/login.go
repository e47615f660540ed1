package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-places/internal/agent/config"
)

// NewSignupCmd — регистрация. Токен сразу сохраняется, отдельный login не нужен.
//
//	places signup --name Max --email max@example.com --image me.png
func NewSignupCmd(app *App) *cobra.Command {
	var name, email, image string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Регистрация нового пользователя (с аватаром)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.client().Signup(name, email, password, image)
			if err != nil {
				return err
			}
			if err := app.remember(resp.UserID, resp.Email, resp.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "signup ok, user_id=%s\n", resp.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&image, "image", "", "avatar image (png/jpg/jpeg)")
	pw.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("image")

	return cmd
}

// NewLoginCmd — вход; токен сохраняется в локальный файл.
//
//	places login --email max@example.com --password secret1
func NewLoginCmd(app *App) *cobra.Command {
	var email string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (токен сохраняется локально)",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.client().Login(email, password)
			if err != nil {
				return err
			}
			if err := app.remember(resp.UserID, resp.Email, resp.Token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	pw.register(cmd)
	cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd удаляет сохранённый токен. На сервере ничего не делается:
// токен сам истечёт через час.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Clear(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
