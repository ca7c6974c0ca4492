package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ftcportal/internal/services"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to the team portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, username, password, err := resolveCredentials()
			if err != nil {
				return err
			}
			session, err := provisioner().Login(dbURL, username, password)
			if errors.Is(err, services.ErrPendingApproval) {
				fmt.Println("Your account is awaiting admin approval.")
				return nil
			}
			if err != nil {
				return err
			}
			defer session.Close()

			saveConfig(dbURL, session.User.Username)
			fmt.Printf("Logged in as %s (team %d, %s)\n",
				session.User.Username, session.Team.Number, session.Team.Name)
			if session.User.IsAdmin {
				fmt.Println("You have admin privileges.")
			}
			return nil
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Request to join an existing team",
		Long: "Creates a pending account on the team database. An administrator\n" +
			"must approve it before you can log in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDBURL == "" {
				var err error
				flagDBURL, err = promptLine("Database URL: ")
				if err != nil {
					return err
				}
			}
			username := flagUsername
			if username == "" {
				var err error
				username, err = promptLine("Username: ")
				if err != nil {
					return err
				}
			}
			password := flagPassword
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			if err := provisioner().RequestJoin(flagDBURL, username, password); err != nil {
				return err
			}
			saveConfig(flagDBURL, username)
			fmt.Println("Join request sent. An administrator must approve your account before you can log in.")
			return nil
		},
	}
}

func newCreateTeamCmd() *cobra.Command {
	var (
		teamNumber   string
		teamName     string
		teamPassword string
	)
	cmd := &cobra.Command{
		Use:   "create-team",
		Short: "Bootstrap a new team database and its admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDBURL == "" {
				var err error
				flagDBURL, err = promptLine("Database URL: ")
				if err != nil {
					return err
				}
			}
			username := flagUsername
			if username == "" {
				var err error
				username, err = promptLine("Admin username: ")
				if err != nil {
					return err
				}
			}
			password := flagPassword
			if password == "" {
				var err error
				password, err = promptPassword("Admin password: ")
				if err != nil {
					return err
				}
			}
			if teamPassword == "" {
				var err error
				teamPassword, err = promptPassword("Team password: ")
				if err != nil {
					return err
				}
			}

			input := services.CreateTeamInput{
				DatabaseURL:   flagDBURL,
				TeamNumber:    teamNumber,
				TeamName:      teamName,
				TeamPassword:  teamPassword,
				AdminUsername: username,
				AdminPassword: password,
			}

			session, err := createTeamWithConfirmations(cmd, input)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("Team creation cancelled.")
				return nil
			}
			defer session.Close()

			saveConfig(flagDBURL, session.User.Username)
			fmt.Printf("Team %q (%d) created. You are logged in as administrator %s.\n",
				session.Team.Name, session.Team.Number, session.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&teamNumber, "team-number", "", "your FTC team number")
	cmd.Flags().StringVar(&teamName, "team-name", "", "your team name")
	cmd.Flags().StringVar(&teamPassword, "team-password", "", "shared team password")
	cmd.MarkFlagRequired("team-number")
	cmd.MarkFlagRequired("team-name")
	return cmd
}

// createTeamWithConfirmations drives the two confirmation gates: an unknown
// team number and a non-empty database. A nil session with nil error means
// the user declined.
func createTeamWithConfirmations(cmd *cobra.Command, input services.CreateTeamInput) (*services.Session, error) {
	for {
		session, err := provisioner().CreateTeam(cmd.Context(), input)
		switch {
		case errors.Is(err, services.ErrTeamUnverified) && !input.AllowUnverified:
			fmt.Printf("Team %s was not found in the FTC Scout registry. It may be new, or the number may be wrong.\n", input.TeamNumber)
			if !confirm("Proceed anyway?") {
				return nil, nil
			}
			input.AllowUnverified = true
		case errors.Is(err, services.ErrTeamExists) && !input.AllowReset:
			fmt.Println("This database already contains team data. Continuing will WIPE it and set up a new team.")
			if !confirm("Are you absolutely sure?") {
				return nil, nil
			}
			input.AllowReset = true
		default:
			return session, err
		}
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity and team",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			role := "none"
			if session.User.Role != nil {
				role = session.User.Role.Name
			}
			fmt.Printf("User:   %s (id %d)\n", session.User.Username, session.User.ID)
			fmt.Printf("Admin:  %v\n", session.User.IsAdmin)
			fmt.Printf("Role:   %s\n", role)
			fmt.Printf("Team:   %s (%d)\n", session.Team.Name, session.Team.Number)
			return nil
		},
	}
}
