package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/directory"
)

var errAccessDenied = errors.New("access denied")

func printNotice(w io.Writer, n core.Notice) {
	mark := map[core.NoticeLevel]string{
		core.NoticeSuccess: "✓",
		core.NoticeError:   "✗",
		core.NoticeWarning: "!",
		core.NoticeInfo:    "i",
	}[n.Level]
	fmt.Fprintf(w, "%s %s %s\n", mark, n.Title, n.Message)
}

func printOutcome(w io.Writer, o core.Outcome) {
	printNotice(w, o.Notice)
	if o.Redirect != "" {
		fmt.Fprintf(w, "  → %s (after %s)\n", o.Redirect, o.Delay)
	}
}

// fail prints the notice for err and returns err so the exit code is set.
func fail(w io.Writer, err error) error {
	printNotice(w, core.NoticeFor(err))
	return err
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password, as string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Example: `  rolegate login --email organizer@test.com --password 123456
  rolegate login --as admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if as != "" {
				var ok bool
				if email, password, ok = directory.Credentials(as); !ok {
					return fmt.Errorf("unknown demo account %q (want user, organizer or admin)", as)
				}
			}

			res, err := a.gate.Auth.Login(email, password)
			if err != nil {
				return fail(out, err)
			}
			printOutcome(out, res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&as, "as", "", "quick login as a demo account (user, organizer, admin)")
	cmd.MarkFlagsMutuallyExclusive("as", "email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := a.gate.Auth.Logout()
			if err != nil {
				return fail(cmd.OutOrStdout(), err)
			}
			printOutcome(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			s, err := a.gate.Sessions.Inspect()
			switch {
			case errors.Is(err, core.ErrStorageUnavailable):
				return fail(out, err)
			case err != nil:
				printNotice(out, core.NoticeFor(err))
				return nil
			}

			fmt.Fprintf(out, "%s %s <%s>\n", s.Role.Icon(), s.Name, s.Email)
			fmt.Fprintf(out, "role:    %s\n", s.RoleName)
			fmt.Fprintf(out, "expires: %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newCanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "can <role>",
		Aliases: []string{"guard"},
		Short:   "Check whether the current session has at least a role",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			required, err := core.ParseRole(args[0])
			if err != nil {
				return err
			}
			s, err := a.gate.Sessions.Load()
			if err != nil {
				return fail(out, err)
			}

			guard := a.gate.Permissions.Protect(s, required)
			if !guard.Allowed {
				printOutcome(out, *guard.Outcome)
				return errAccessDenied
			}
			fmt.Fprintf(out, "✓ allowed: %s\n", required)
			return nil
		},
	}
}

func newPlanCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print what the site shows for the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			s, err := a.gate.Sessions.Load()
			if err != nil {
				return fail(out, err)
			}
			plan := a.gate.Plan(s)

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			case "text":
				core.Apply(plan, &textPresenter{w: out})
				return nil
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or json")
	return cmd
}

// textPresenter writes one line per presenter call.
type textPresenter struct {
	w io.Writer
}

func (p *textPresenter) SetVisible(region core.Region, visible bool) {
	state := "hidden"
	if visible {
		state = "shown"
	}
	fmt.Fprintf(p.w, "%-28s %s\n", region, state)
}

func (p *textPresenter) SetContent(region core.Region, content any) {
	switch c := content.(type) {
	case core.Identity:
		fmt.Fprintf(p.w, "%-28s %s %s (%s)\n", region, c.RoleIcon, c.Name, c.RoleName)
		for _, item := range c.Menu {
			fmt.Fprintf(p.w, "%-28s   %s\n", "", item.Label)
		}
	default:
		fmt.Fprintf(p.w, "%-28s %v\n", region, c)
	}
}
