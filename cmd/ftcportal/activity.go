package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ftcportal/internal/services"
)

func newMeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Record and list team meetings",
	}

	var (
		description string
		presentArg  string
	)
	newCmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Record a meeting and its attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			var present []uint
			for _, part := range strings.Split(presentArg, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseUint(part, 10, 32)
				if err != nil {
					return fmt.Errorf("invalid user id %q in --present", part)
				}
				present = append(present, uint(id))
			}
			if len(present) == 0 {
				if !confirm("No attendees given. Record the meeting with zero attendance?") {
					return nil
				}
			}

			attendance := services.NewAttendanceService(session)
			meeting, err := attendance.CreateMeeting(args[0], description, present)
			if err != nil {
				return err
			}
			fmt.Printf("Meeting %q recorded (id %d, %d marked present).\n",
				meeting.Title, meeting.ID, len(present))
			return nil
		},
	}
	newCmd.Flags().StringVar(&description, "description", "", "optional meeting description")
	newCmd.Flags().StringVar(&presentArg, "present", "", "comma-separated user ids that attended")
	cmd.AddCommand(newCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			meetings, err := services.NewAttendanceService(session).ListMeetings()
			if err != nil {
				return err
			}
			if len(meetings) == 0 {
				fmt.Println("No meetings recorded yet.")
				return nil
			}
			fmt.Printf("%-6s %-12s %s\n", "ID", "DATE", "TITLE")
			for _, m := range meetings {
				fmt.Printf("%-6d %-12s %s\n", m.ID, m.Date.Format("2006-01-02"), m.Title)
			}
			return nil
		},
	})

	return cmd
}

func newAttendanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "Show present/absent totals for the active roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			svc := services.NewAttendanceService(session)
			summary, err := svc.Summary()
			if err != nil {
				return err
			}
			fmt.Printf("%-20s %-8s %s\n", "TEAMMATE", "PRESENT", "ABSENT")
			for _, row := range summary {
				fmt.Printf("%-20s %-8d %d\n", row.Username, row.Present, row.Absent)
			}
			count, err := svc.ActiveMemberCount()
			if err == nil {
				fmt.Printf("\nActive teammates: %d\n", count)
			}
			return nil
		},
	}
}

func newGuidesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guides",
		Short: "Browse and edit the team's guide topics",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List guide topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			guides, err := services.NewGuideService(session).ListGuides()
			if err != nil {
				return err
			}
			if len(guides) == 0 {
				fmt.Println("No guide topics yet.")
				return nil
			}
			fmt.Printf("%-6s %s\n", "ID", "TOPIC")
			for _, g := range guides {
				fmt.Printf("%-6d %s\n", g.ID, g.TopicName)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new <topic>",
		Short: "Create a guide topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			guide, err := services.NewGuideService(session).CreateGuide(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Guide topic %q created (id %d).\n", guide.TopicName, guide.ID)
			return nil
		},
	})

	var videoTitle string
	addVideoCmd := &cobra.Command{
		Use:   "add-video <guide-id> <url>",
		Short: "Attach a video to a guide topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guideID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid guide id %q", args[0])
			}
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			video, err := services.NewGuideService(session).AddVideo(uint(guideID), videoTitle, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Video added (id %d).\n", video.ID)
			return nil
		},
	}
	addVideoCmd.Flags().StringVar(&videoTitle, "title", "", "optional video title")
	cmd.AddCommand(addVideoCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "videos <guide-id>",
		Short: "List a guide topic's videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guideID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid guide id %q", args[0])
			}
			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			videos, err := services.NewGuideService(session).ListVideos(uint(guideID))
			if err != nil {
				return err
			}
			if len(videos) == 0 {
				fmt.Println("No videos for this topic yet.")
				return nil
			}
			for _, v := range videos {
				title := v.VideoTitle
				if title == "" {
					title = "No Title"
				}
				fmt.Printf("%-6d %-30s %s\n", v.ID, title, v.VideoURL)
			}
			return nil
		},
	})

	return cmd
}

// seasonFor returns the season year a lookup at t belongs to. FTC seasons
// are named by their starting year and run from September through the
// following summer.
func seasonFor(t time.Time) int {
	if t.Month() >= time.September {
		return t.Year()
	}
	return t.Year() - 1
}

func currentSeason() int {
	return seasonFor(time.Now())
}

func newStatsCmd() *cobra.Command {
	var (
		teamNumber int
		season     int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show FTC Scout details and quick stats for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			number := teamNumber
			if number == 0 {
				session, err := openSession()
				if err != nil {
					return err
				}
				number = session.Team.Number
				session.Close()
			}
			if season == 0 {
				season = currentSeason()
			}

			client := registry()
			details, err := client.TeamDetails(cmd.Context(), number)
			if err != nil {
				fmt.Printf("Could not load team details: %v\n", err)
			} else {
				fmt.Printf("Team %d: %s\n", details.Number, details.Name)
				if details.Organization != "" {
					fmt.Printf("Organization: %s\n", details.Organization)
				}
				fmt.Printf("Location: %s, %s, %s\n", details.City, details.StateProv, details.Country)
				fmt.Printf("Rookie year: %d\n", details.RookieYear)
			}

			stats, err := client.QuickStats(cmd.Context(), number, season)
			if err != nil {
				fmt.Printf("Could not load quick stats: %v\n", err)
				return nil
			}
			fmt.Printf("\nQuick stats (season %d):\n", stats.Season)
			fmt.Printf("  OPR: %.2f  NPR: %.2f  TPR: %.2f\n", stats.OPR, stats.NPR, stats.TPR)
			fmt.Printf("  W/L/T: %d/%d/%d  Avg rank: %.2f\n", stats.Wins, stats.Losses, stats.Ties, stats.Rank)

			events, err := client.Events(cmd.Context(), number, season)
			if err == nil && len(events) > 0 {
				fmt.Printf("\nEvents (season %d):\n", season)
				for _, e := range events {
					fmt.Printf("  %s\n", e.EventCode)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&teamNumber, "team", 0, "team number (defaults to your own team)")
	cmd.Flags().IntVar(&season, "season", 0, "season year (defaults to the current year)")
	return cmd
}
