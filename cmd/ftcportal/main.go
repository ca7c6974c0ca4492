// Command ftcportal is the FTC team portal client: it logs members in
// against the team's PostgreSQL database, files and approves join requests,
// bootstraps new team databases, and records meetings, attendance and guides.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ftcportal/internal/config"
	"ftcportal/internal/scout"
	"ftcportal/internal/services"
)

var (
	flagDBURL    string
	flagUsername string
	flagPassword string
	flagConfig   string
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded environment from .env")
	}

	root := &cobra.Command{
		Use:           "ftcportal",
		Short:         "FTC team portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDBURL, "db-url", "", "team database URL (defaults to the saved one)")
	root.PersistentFlags().StringVarP(&flagUsername, "user", "u", "", "username (defaults to the saved one)")
	root.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "password (prompted when omitted)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the portal config file")

	root.AddCommand(
		newLoginCmd(),
		newJoinCmd(),
		newCreateTeamCmd(),
		newWhoamiCmd(),
		newMembersCmd(),
		newPendingCmd(),
		newApproveCmd(),
		newRejectCmd(),
		newSetRoleCmd(),
		newSetAdminCmd(),
		newRemoveCmd(),
		newTeamCmd(),
		newMeetingCmd(),
		newAttendanceCmd(),
		newGuidesCmd(),
		newStatsCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func configStore() *config.Store {
	return config.NewStore(flagConfig)
}

func registry() *scout.Client {
	return scout.NewClient(os.Getenv("FTCSCOUT_BASE_URL"))
}

func provisioner() *services.ProvisioningService {
	return services.NewProvisioningService(registry())
}

// resolveCredentials fills username, password and database URL from flags,
// the saved config, and an interactive prompt, in that order.
func resolveCredentials() (dbURL, username, password string, err error) {
	cfg, err := configStore().Load()
	if err != nil {
		return "", "", "", err
	}
	dbURL = flagDBURL
	if dbURL == "" {
		dbURL = cfg.DBURL
	}
	if dbURL == "" {
		return "", "", "", fmt.Errorf("no database URL saved; pass --db-url")
	}
	username = flagUsername
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return "", "", "", err
		}
	}
	password = flagPassword
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return "", "", "", err
		}
	}
	return dbURL, username, password, nil
}

// openSession logs in with the resolved credentials. Callers own the session
// and must Close it.
func openSession() (*services.Session, error) {
	dbURL, username, password, err := resolveCredentials()
	if err != nil {
		return nil, err
	}
	return provisioner().Login(dbURL, username, password)
}

func saveConfig(dbURL, username string) {
	if err := configStore().Save(config.Config{DBURL: dbURL, Username: username}); err != nil {
		log.Warn("could not save config", "err", err)
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine("")
}

func confirm(prompt string) bool {
	answer, err := promptLine(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
