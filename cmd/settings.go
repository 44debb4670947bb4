// ABOUTME: Settings commands: API keys, notifications, and favorite addresses
// ABOUTME: All settings routes are keyed by the logged-in user's id

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
)

var (
	apiKeyInput  client.APIKeyConfig
	notifInput   client.NotificationConfig
	addressInput client.FavoriteAddress
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change account settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Run:   settingsRun(runSettingsShow),
}

var apiKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Manage bring-your-own API keys",
}

var apiKeySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the key used for a provider",
	Run:   settingsRun(runAPIKeySet),
}

var apiKeyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a key with the provider without saving it",
	Run:   settingsRun(runAPIKeyValidate),
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Configure briefings and financial alerts",
	Run:   settingsRun(runNotifications),
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage favorite addresses",
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a favorite address",
	Run:   settingsRun(runAddressAdd),
}

var addressRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a favorite address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAddressRemove(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

// settingsRun adapts a runX function to a cobra Run
func settingsRun(run func(context.Context, io.Writer) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := run(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, apiKeyCmd, notificationsCmd, addressCmd)
	apiKeyCmd.AddCommand(apiKeySetCmd, apiKeyValidateCmd)
	addressCmd.AddCommand(addressAddCmd, addressRemoveCmd)

	keyTypes := strings.Join(client.APIKeyTypes, ", ")
	for _, c := range []*cobra.Command{apiKeySetCmd, apiKeyValidateCmd} {
		c.Flags().StringVar(&apiKeyInput.Type, "type", "", "Provider: "+keyTypes)
		c.Flags().StringVar(&apiKeyInput.Key, "key", "", "API key")
		c.MarkFlagRequired("type")
	}
	apiKeySetCmd.Flags().BoolVar(&apiKeyInput.UseOwnKey, "own", true, "Use your own key instead of the shared one")

	nf := notificationsCmd.Flags()
	nf.BoolVar(&notifInput.MorningBriefing.Enabled, "morning", false, "Enable the morning briefing")
	nf.StringVar(&notifInput.MorningBriefing.Time, "morning-time", "07:00", "Morning briefing time (HH:MM)")
	nf.BoolVar(&notifInput.EveningCheckIn.Enabled, "evening", false, "Enable the evening check-in")
	nf.StringVar(&notifInput.EveningCheckIn.Time, "evening-time", "21:00", "Evening check-in time (HH:MM)")
	nf.BoolVar(&notifInput.FinancialAlerts.Enabled, "alerts", false, "Enable bill due alerts")
	nf.IntVar(&notifInput.FinancialAlerts.DaysBeforeDue, "alert-days", 3, "Days before a due date to alert")

	af := addressAddCmd.Flags()
	af.StringVar(&addressInput.Label, "label", "", "Label such as Casa or Trabalho")
	af.StringVar(&addressInput.Address, "address", "", "Street address")
	af.BoolVar(&addressInput.IsDefault, "default", false, "Make this the default address")
}

// settingsDeps wires dependencies, enters the settings route, and resolves
// the user id. A non-zero code means the command should stop.
func settingsDeps(w io.Writer) (*deps, string, int) {
	d, err := newDeps()
	if err != nil {
		return nil, "", setupError(w, err)
	}
	if !d.enter(w, router.PathSettings) {
		return nil, "", exitError
	}
	userID, err := d.userID()
	if err != nil {
		return nil, "", setupError(w, err)
	}
	return d, userID, exitOK
}

// runSettingsShow prints all settings and returns exit code
func runSettingsShow(ctx context.Context, w io.Writer) int {
	d, userID, code := settingsDeps(w)
	if code != exitOK {
		return code
	}

	s, err := d.api.LoadSettings(ctx, userID)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(s))
	} else {
		fmt.Fprintln(w, formatSettingsHuman(s))
	}
	return exitOK
}

func formatSettingsHuman(s *client.UserSettings) string {
	var sb strings.Builder

	sb.WriteString("API keys:\n")
	if len(s.APIKeys) == 0 {
		sb.WriteString("  none configured\n")
	}
	for _, k := range s.APIKeys {
		mode := "shared key"
		if k.UseOwnKey {
			mode = "own key " + maskKey(k.Key)
		}
		status := ""
		if k.IsValid != nil {
			status = " (invalid)"
			if *k.IsValid {
				status = " (valid)"
			}
		}
		fmt.Fprintf(&sb, "  %-10s %s%s\n", k.Type, mode, status)
	}

	n := s.Notifications
	sb.WriteString("\nNotifications:\n")
	fmt.Fprintf(&sb, "  Morning briefing  %s\n", onOff(n.MorningBriefing.Enabled, n.MorningBriefing.Time))
	fmt.Fprintf(&sb, "  Evening check-in  %s\n", onOff(n.EveningCheckIn.Enabled, n.EveningCheckIn.Time))
	fmt.Fprintf(&sb, "  Financial alerts  %s\n", onOff(n.FinancialAlerts.Enabled, fmt.Sprintf("%d days before due", n.FinancialAlerts.DaysBeforeDue)))

	sb.WriteString("\nAddresses:\n")
	if len(s.Addresses) == 0 {
		sb.WriteString("  none saved\n")
	}
	for _, a := range s.Addresses {
		def := ""
		if a.IsDefault {
			def = " (default)"
		}
		fmt.Fprintf(&sb, "  [%s] %s: %s%s\n", a.ID, a.Label, a.Address, def)
	}

	p := s.Preferences
	if p.Language != "" || p.Timezone != "" || p.Currency != "" {
		fmt.Fprintf(&sb, "\nPreferences: %s, %s, %s\n", p.Language, p.Timezone, p.Currency)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func onOff(enabled bool, detail string) string {
	if !enabled {
		return "off"
	}
	return "on, " + detail
}

// maskKey keeps only the last four characters of a key visible
func maskKey(k string) string {
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}

// runAPIKeySet stores a provider key setting and returns exit code
func runAPIKeySet(ctx context.Context, w io.Writer) int {
	d, userID, code := settingsDeps(w)
	if code != exitOK {
		return code
	}

	if err := d.api.UpdateAPIKey(ctx, userID, apiKeyInput); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Updated %s API key\n", apiKeyInput.Type)
	return exitOK
}

// runAPIKeyValidate checks a key with its provider; exit code 1 when invalid
func runAPIKeyValidate(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		return setupError(w, err)
	}
	if !d.enter(w, router.PathSettings) {
		return exitError
	}

	valid, err := d.api.ValidateAPIKey(ctx, apiKeyInput.Type, apiKeyInput.Key)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]bool{"valid": valid}))
	} else if valid {
		fmt.Fprintf(w, "%s key is valid\n", apiKeyInput.Type)
	} else {
		fmt.Fprintf(w, "%s key was rejected by the provider\n", apiKeyInput.Type)
	}
	if !valid {
		return exitRejected
	}
	return exitOK
}

// runNotifications saves the notification settings and returns exit code
func runNotifications(ctx context.Context, w io.Writer) int {
	d, userID, code := settingsDeps(w)
	if code != exitOK {
		return code
	}

	if err := d.api.UpdateNotifications(ctx, userID, notifInput); err != nil {
		return fail(w, err)
	}
	if notifInput.AllNotificationsDisabled() {
		fmt.Fprintln(w, "All notifications disabled")
	} else {
		fmt.Fprintln(w, "Notification settings saved")
	}
	return exitOK
}

// runAddressAdd saves a favorite address and returns exit code
func runAddressAdd(ctx context.Context, w io.Writer) int {
	d, userID, code := settingsDeps(w)
	if code != exitOK {
		return code
	}

	if err := d.api.AddAddress(ctx, userID, addressInput); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Saved address %q\n", addressInput.Label)
	return exitOK
}

// runAddressRemove deletes a favorite address and returns exit code
func runAddressRemove(ctx context.Context, w io.Writer, addressID string) int {
	d, userID, code := settingsDeps(w)
	if code != exitOK {
		return code
	}

	if err := d.api.RemoveAddress(ctx, userID, addressID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Removed address %s\n", addressID)
	return exitOK
}
