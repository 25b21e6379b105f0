package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"FRIDGE_PASSWORD"}},
		},
		Action: action(func(ctx context.Context, c *cli.Context, e *env) error {
			if err := e.manager.Login(ctx, c.String("email"), c.String("password")); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Signed in as %s\n", e.manager.Session().User.Email)
			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"FRIDGE_PASSWORD"}},
			&cli.StringFlag{Name: "name"},
		},
		Action: action(func(ctx context.Context, c *cli.Context, e *env) error {
			if err := e.manager.Register(ctx, c.String("email"), c.String("password"), c.String("name")); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Registered and signed in as %s\n", e.manager.Session().User.Email)
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: action(func(ctx context.Context, c *cli.Context, e *env) error {
			e.manager.Logout(ctx)
			fmt.Fprintln(e.out, "Signed out")
			return nil
		}),
	}
}

type whoami struct {
	State     string     `json:"state"`
	ID        string     `json:"id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: action(func(ctx context.Context, c *cli.Context, e *env) error {
			s := e.manager.Session()
			out := whoami{State: s.State.String()}
			if s.User != nil {
				out.ID, out.Email, out.Name = s.User.ID, s.User.Email, s.User.Name
			}
			if claims, err := e.manager.Claims(); err == nil && claims.ExpiresAt != nil {
				exp := claims.ExpiresAt.Time
				out.ExpiresAt = &exp
			}

			return render(e, out, func(w io.Writer) {
				if !s.Authenticated() {
					fmt.Fprintln(w, "Not signed in")
					return
				}
				fmt.Fprintf(w, "%s <%s> (%s)\n", orDash(out.Name), out.Email, out.ID)
				if out.ExpiresAt != nil {
					fmt.Fprintf(w, "Token expires %s\n", out.ExpiresAt.Local().Format(time.RFC1123))
				}
			})
		}),
	}
}
