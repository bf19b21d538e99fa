package cli

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/gcal"
	"github.com/spf13/cobra"
)

func newGCalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcal",
		Short: "Sync the week with Google Calendar",
	}
	cmd.AddCommand(
		newGCalAuthCmd(app),
		newGCalPublishCmd(app),
	)
	return cmd
}

func newGCalAuthCmd(app *App) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar",
		Long: `Reads OAuth client secrets from <gcal.credentials_dir>/credentials.json,
prints the consent URL and stores the resulting token next to it.
After consenting, copy the "code" parameter from the page you are
redirected to and paste it here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := gcal.NewAuthorizer(app.Config.GCal.CredentialsDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if code == "" {
				fmt.Fprintf(out, "Open this URL and approve access:\n\n  %s\n\nAuthorization code: ", auth.AuthURL())
				sc := bufio.NewScanner(cmd.InOrStdin())
				if !sc.Scan() {
					return fmt.Errorf("no authorization code entered")
				}
				code = strings.TrimSpace(sc.Text())
			}
			if code == "" {
				return fmt.Errorf("no authorization code entered")
			}

			if err := auth.Exchange(cmd.Context(), code); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s token saved to %s\n",
				formatter.StyleGreen.Render("✔ Authorized;"),
				filepath.Join(auth.Dir, gcal.TokenFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code (skips the prompt)")
	return cmd
}

func newGCalPublishCmd(app *App) *cobra.Command {
	var flags weekFlags

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Create or move the week's events in Google Calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			res, err := app.Planner.Publish(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPublishResult(res))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
