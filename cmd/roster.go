package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swasthya/scheduling/app"
	"github.com/swasthya/scheduling/core/model"
)

var (
	rosterStaffPath string
	rosterStartDate string
	rosterDays      int
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Generate a staff roster from a JSON staff list",
	RunE:  runRoster,
}

func init() {
	rosterCmd.Flags().StringVar(&rosterStaffPath, "staff", "", "JSON file with the staff list")
	rosterCmd.Flags().StringVar(&rosterStartDate, "start-date", "", "first day to schedule, YYYY-MM-DD (default today)")
	rosterCmd.Flags().IntVar(&rosterDays, "days", 7, "number of days to schedule")
	_ = rosterCmd.MarkFlagRequired("staff")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(rosterStaffPath)
	if err != nil {
		return fmt.Errorf("read staff: %w", err)
	}
	var staff []model.StaffMember
	if err := json.Unmarshal(data, &staff); err != nil {
		return fmt.Errorf("parse staff: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	res, err := svc.ScheduleStaff(context.Background(), app.StaffScheduleRequest{
		Staff:     staff,
		StartDate: rosterStartDate,
		Days:      rosterDays,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}
