// Package cli реализует консольный клиент сервера places.
//
// Пакет отвечает за:
//   - root-команду и подкоманды (signup, login, logout, users, get, list, create, update, delete);
//   - загрузку сохранённого токена из ~/.places/credentials.json;
//   - вывод результата пользователю.
//
// Точка входа — Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-places/internal/agent/api"
	"github.com/IvanChernomyrdin/go-places/internal/agent/config"
)

const defaultServerURL = "http://localhost:5000"

var errNotLoggedIn = errors.New("no token, run: places login")

// App — состояние, общее для всех команд.
type App struct {
	// ServerURL — базовый адрес сервера.
	ServerURL string
	// Insecure — не проверять TLS-сертификат сервера.
	Insecure bool

	CredsPath string
	Creds     *config.Credentials
}

// client создаёт API-клиента под текущие настройки.
func (a *App) client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// token — сохранённый токен или errNotLoggedIn.
func (a *App) token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", errNotLoggedIn
	}
	return a.Creds.Token, nil
}

// remember сохраняет результат signup/login.
func (a *App) remember(userID, email, token string) error {
	a.Creds = &config.Credentials{
		Token:  token,
		UserID: userID,
		Email:  email,
		Server: a.ServerURL,
	}
	return config.Save(a.CredsPath, a.Creds)
}

// NewRootCmd создаёт root-команду и регистрирует подкоманды.
//
// Если --server не задан явно, используется адрес, на котором выполнялся вход.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{ServerURL: defaultServerURL}

	cmd := &cobra.Command{
		Use:   "places",
		Short: "places CLI — места с геометками и фотографиями",
		Long: `places CLI.

Примеры:
  places signup --name Max --email max@example.com --image me.png
  places login --email max@example.com
  places create --title "Empire State" --description "Tall building" --address "20 W 34th St, New York" --image e.jpg
  places list
  places update <place-id> --title "New" --description "Updated text"
  places delete <place-id>
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds

			if !cmd.Flags().Changed("server") && creds.Server != "" {
				app.ServerURL = creds.Server
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "credentials file (default ~/.places/credentials.json)")

	cmd.AddCommand(
		NewSignupCmd(app),
		NewLoginCmd(app),
		NewLogoutCmd(app),
		NewUsersCmd(app),
		NewGetCmd(app),
		NewListCmd(app),
		NewCreateCmd(app),
		NewUpdateCmd(app),
		NewDeleteCmd(app),
		NewVersionCmd(buildVersion, buildDate),
	)

	return cmd
}

// Execute запускает CLI; при ошибке печатает её в stderr и выходит с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
