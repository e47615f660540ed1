package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

func printPlaces(w io.Writer, places []models.Place) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tADDRESS\tLAT\tLNG\tIMAGE")
	for _, p := range places {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.6f\t%.6f\t%s\n", p.ID, p.Title, p.Address, p.Location.Lat, p.Location.Lng, p.Image)
	}
	tw.Flush()
}

func printPlace(w io.Writer, p models.Place) {
	fmt.Fprintf(w, "id:          %s\n", p.ID)
	fmt.Fprintf(w, "title:       %s\n", p.Title)
	fmt.Fprintf(w, "description: %s\n", p.Description)
	fmt.Fprintf(w, "address:     %s\n", p.Address)
	fmt.Fprintf(w, "location:    %.6f, %.6f\n", p.Location.Lat, p.Location.Lng)
	fmt.Fprintf(w, "image:       %s\n", p.Image)
	fmt.Fprintf(w, "creator:     %s\n", p.Creator)
}

// NewUsersCmd — список пользователей.
func NewUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Список пользователей",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.client().Users()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPLACES")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, len(u.Places))
			}
			return tw.Flush()
		},
	}
}

// NewGetCmd — одно место по id.
func NewGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <place-id>",
		Short: "Показать место",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.client().Place(args[0])
			if err != nil {
				return err
			}
			printPlace(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

// NewListCmd — места пользователя. Без аргумента — свои.
func NewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [user-id]",
		Short: "Места пользователя (по умолчанию свои)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := app.Creds.UserID
			if len(args) == 1 {
				uid = args[0]
			}
			if uid == "" {
				return errNotLoggedIn
			}

			places, err := app.client().PlacesByUser(uid)
			if err != nil {
				return err
			}
			printPlaces(cmd.OutOrStdout(), places)
			return nil
		},
	}
}

// NewCreateCmd — новое место; адрес геокодирует сервер.
func NewCreateCmd(app *App) *cobra.Command {
	var title, description, address, image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать место",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := app.client().CreatePlace(token, title, description, address, image)
			if err != nil {
				return err
			}
			printPlace(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&description, "description", "", "description (min 5 chars)")
	cmd.Flags().StringVar(&address, "address", "", "address to geocode")
	cmd.Flags().StringVar(&image, "image", "", "image file (png/jpg/jpeg)")
	for _, f := range []string{"title", "description", "address", "image"} {
		cmd.MarkFlagRequired(f)
	}

	return cmd
}

// NewUpdateCmd — новые title и description (оба обязательны, как и на сервере).
func NewUpdateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "update <place-id>",
		Short: "Изменить заголовок и описание места",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			if title == "" || description == "" {
				return errors.New("--title and --description are required")
			}

			p, err := app.client().UpdatePlace(token, args[0], title, description)
			if err != nil {
				return err
			}
			printPlace(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

// NewDeleteCmd удаляет место.
func NewDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <place-id>",
		Short: "Удалить место",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			msg, err := app.client().DeletePlace(token, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
