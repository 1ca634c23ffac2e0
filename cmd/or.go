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
	orCasesPath string
	orRooms     int
	orStart     string
	orEnd       string
)

var orCmd = &cobra.Command{
	Use:   "or",
	Short: "Schedule a batch of surgical cases from a JSON file",
	RunE:  runOR,
}

func init() {
	orCmd.Flags().StringVar(&orCasesPath, "cases", "", "JSON file with the case list")
	orCmd.Flags().IntVar(&orRooms, "rooms", 4, "number of operating rooms")
	orCmd.Flags().StringVar(&orStart, "start", "", "room opening time HH:MM")
	orCmd.Flags().StringVar(&orEnd, "end", "", "room closing time HH:MM")
	_ = orCmd.MarkFlagRequired("cases")
	rootCmd.AddCommand(orCmd)
}

func runOR(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(orCasesPath)
	if err != nil {
		return fmt.Errorf("read cases: %w", err)
	}
	var cases []model.SurgicalCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return fmt.Errorf("parse cases: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	res, err := svc.ScheduleOR(context.Background(), app.ORScheduleRequest{
		Cases:     cases,
		Rooms:     orRooms,
		StartTime: orStart,
		EndTime:   orEnd,
	})
	if err != nil {
		return err
	}
	return printJSON(res)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
