// ABOUTME: Login, register, logout, and whoami commands
// ABOUTME: Passwords are prompted without echo when not passed by flag

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
)

var (
	loginWhatsApp string
	loginPassword string

	registerNome          string
	registerWhatsApp      string
	registerPassword      string
	registerDiaVencimento int
	registerDiaFechamento int
)

// readPassword prompts on stderr and reads a password from stdin
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your WhatsApp number",
	Long: `Log in and store the session token locally.

The password is prompted without echo unless --password is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long: `Show the profile stored with the session.

The stored token is not checked against the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runWhoami(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginWhatsApp, "whatsapp", "", "WhatsApp number (any formatting)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	loginCmd.MarkFlagRequired("whatsapp")

	registerCmd.Flags().StringVar(&registerNome, "nome", "", "Full name")
	registerCmd.Flags().StringVar(&registerWhatsApp, "whatsapp", "", "WhatsApp number with country and area code")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password, at least 6 characters (prompted when omitted)")
	registerCmd.Flags().IntVar(&registerDiaVencimento, "dia-vencimento", 10, "Credit card due day (1-31)")
	registerCmd.Flags().IntVar(&registerDiaFechamento, "dia-fechamento", 3, "Credit card closing day (1-31)")
	registerCmd.MarkFlagRequired("nome")
	registerCmd.MarkFlagRequired("whatsapp")
}

// runLogin authenticates and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathLogin) {
		return exitError
	}

	password := loginPassword
	if password == "" {
		if password, err = readPassword("Password: "); err != nil {
			return setupError(w, fmt.Errorf("reading password: %w", err))
		}
	}

	req := client.LoginRequest{WhatsApp: loginWhatsApp, Password: password}
	profile, err := d.auth.Login(ctx, req, d.nav.Current().ReturnURL())
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(profile))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", profile.Nome)
	}
	return exitOK
}

// runRegister creates an account and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathRegister) {
		return exitError
	}

	password := registerPassword
	if password == "" {
		if password, err = readPassword("Password: "); err != nil {
			return setupError(w, fmt.Errorf("reading password: %w", err))
		}
	}

	profile, err := d.auth.Register(ctx, client.RegisterRequest{
		Nome:          registerNome,
		WhatsApp:      registerWhatsApp,
		Password:      password,
		DiaVencimento: registerDiaVencimento,
		DiaFechamento: registerDiaFechamento,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(profile))
	} else {
		fmt.Fprintf(w, "Account created. Logged in as %s\n", profile.Nome)
	}
	return exitOK
}

// runLogout clears the session; logging out twice is not an error
func runLogout(w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	d.auth.Logout()
	fmt.Fprintln(w, "Logged out")
	return exitOK
}

type whoamiOutput struct {
	Authenticated bool             `json:"authenticated"`
	Profile       *session.Profile `json:"profile,omitempty"`
}

// runWhoami prints the stored profile; exit code 2 when logged out
func runWhoami(w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}

	state, profile := d.auth.Current()
	out := whoamiOutput{Authenticated: state == session.Authenticated, Profile: profile}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(out))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(out))
	}
	if !out.Authenticated {
		return exitError
	}
	return exitOK
}

func formatWhoamiHuman(out whoamiOutput) string {
	if !out.Authenticated {
		return "Not logged in"
	}
	if out.Profile == nil {
		return "Logged in (profile unavailable)"
	}

	p := out.Profile
	s := fmt.Sprintf("Name:      %s\nWhatsApp:  %s", p.Nome, p.WhatsApp)
	if p.DiaVencimento != 0 {
		s += fmt.Sprintf("\nDue day:   %d", p.DiaVencimento)
	}
	if p.DiaFechamento != 0 {
		s += fmt.Sprintf("\nClose day: %d", p.DiaFechamento)
	}
	return s
}
