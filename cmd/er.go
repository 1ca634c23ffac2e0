package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swasthya/scheduling/app"
	"github.com/swasthya/scheduling/core/model"
)

var erPatientsPath string

var erCmd = &cobra.Command{
	Use:   "er",
	Short: "Replay a patient list through the ER queue and print the treatment order",
	RunE:  runER,
}

func init() {
	erCmd.Flags().StringVar(&erPatientsPath, "patients", "", "JSON file with the patient list")
	_ = erCmd.MarkFlagRequired("patients")
	rootCmd.AddCommand(erCmd)
}

func runER(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(erPatientsPath)
	if err != nil {
		return fmt.Errorf("read patients: %w", err)
	}
	var patients []model.WaitingPatient
	if err := json.Unmarshal(data, &patients); err != nil {
		return fmt.Errorf("parse patients: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	for _, p := range patients {
		if err := svc.AddPatient(p.ID, p.AcuityLevel, p.ArrivalTime); err != nil {
			return fmt.Errorf("enqueue %s: %w", p.ID, err)
		}
	}

	var order []*model.WaitingPatient
	for {
		next, err := svc.NextPatient()
		if errors.Is(err, model.ErrEmptyQueue) {
			break
		}
		if err != nil {
			return err
		}
		order = append(order, next)
	}
	return printJSON(order)
}
