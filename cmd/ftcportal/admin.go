package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ftcportal/internal/services"
)

func parseUserID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return uint(id), nil
}

// withAdmin opens a session and hands an AdminService to fn, closing the
// session afterwards.
func withAdmin(fn func(admin *services.AdminService) error) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(services.NewAdminService(session))
}

func newPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List join requests awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(func(admin *services.AdminService) error {
				users, err := admin.ListPending()
				if err != nil {
					return err
				}
				if len(users) == 0 {
					fmt.Println("No pending join requests.")
					return nil
				}
				fmt.Printf("%-6s %-20s %s\n", "ID", "USERNAME", "REQUESTED")
				for _, u := range users {
					fmt.Printf("%-6d %-20s %s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func newMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List active users and their roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(func(admin *services.AdminService) error {
				users, err := admin.ListActive()
				if err != nil {
					return err
				}
				fmt.Printf("%-6s %-20s %-18s %s\n", "ID", "USERNAME", "ROLE", "ADMIN")
				for _, u := range users {
					role := "none"
					if u.Role != nil {
						role = u.Role.Name
					}
					isAdmin := "no"
					if u.IsAdmin {
						isAdmin = "yes"
					}
					fmt.Printf("%-6d %-20s %-18s %s\n", u.ID, u.Username, role, isAdmin)
				}
				return nil
			})
		},
	}
}

func newApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <user-id>",
		Short: "Approve a pending join request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if err := admin.ApproveUser(id); err != nil {
					return err
				}
				fmt.Println("User approved.")
				return nil
			})
		},
	}
}

func newRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <user-id>",
		Short: "Reject and delete a pending join request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if !confirm(fmt.Sprintf("Reject and delete join request %d? This cannot be undone.", id)) {
					return nil
				}
				if err := admin.RejectUser(id); err != nil {
					return err
				}
				fmt.Println("Join request rejected.")
				return nil
			})
		},
	}
}

func newSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <role-name>",
		Short: "Assign a role to an active user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if err := admin.AssignRole(id, args[1]); err != nil {
					return err
				}
				fmt.Println("Role updated.")
				return nil
			})
		},
	}
}

func newSetAdminCmd() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "set-admin <user-id>",
		Short: "Grant (or with --revoke, remove) admin privileges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if err := admin.SetAdmin(id, !revoke); err != nil {
					return err
				}
				fmt.Println("Admin status updated.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove admin privileges instead of granting them")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Permanently remove a user and their attendance records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if !confirm(fmt.Sprintf("Permanently remove user %d and their attendance records?", id)) {
					return nil
				}
				if err := admin.RemoveUser(id); err != nil {
					return err
				}
				fmt.Println("User removed.")
				return nil
			})
		},
	}
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-name <name>",
		Short: "Rename the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(func(admin *services.AdminService) error {
				if err := admin.UpdateTeamName(args[0]); err != nil {
					return err
				}
				fmt.Println("Team name updated.")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-password",
		Short: "Change the team password",
		RunE: func(cmd *cobra.Command, args []string) error {
			newPassword, err := promptPassword("New team password: ")
			if err != nil {
				return err
			}
			return withAdmin(func(admin *services.AdminService) error {
				if !confirm("Change the team password?") {
					return nil
				}
				if err := admin.UpdateTeamPassword(newPassword); err != nil {
					return err
				}
				fmt.Println("Team password updated.")
				return nil
			})
		},
	})

	return cmd
}
