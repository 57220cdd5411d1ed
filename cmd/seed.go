package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hasanuzzaman/attendance-core/internal/core/clock"
	"github.com/hasanuzzaman/attendance-core/internal/device"
	"github.com/hasanuzzaman/attendance-core/internal/employee"
	"github.com/hasanuzzaman/attendance-core/internal/policy"
	"github.com/hasanuzzaman/attendance-core/internal/shift"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo shift, policy, employee and device",
	RunE:  runSeed,
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.Source), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("seed: opening db: %w", err)
	}

	if clearData {
		for _, table := range []string{"attendance_records", "recognition_events", "attendance_policies", "employees", "devices", "shifts"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("seed: clearing %s: %w", table, err)
			}
		}
	}

	nineToFive := shift.New(uuid.New(), "9-5", clock.NewTimeOfDay(9, 0, 0), clock.NewTimeOfDay(17, 0, 0), cfg.Core.BusinessZone, 10)
	if err := db.Create(shift.ToDataModel(&nineToFive)).Error; err != nil {
		return fmt.Errorf("seed: creating shift: %w", err)
	}

	pol := policy.AttendancePolicy{
		ID:                         uuid.New(),
		Name:                       "Standard",
		ShiftID:                    nineToFive.ID,
		EntryWindowStartMinutes:    30,
		EntryWindowEndMinutes:      120,
		ExitWindowStartMinutes:     30,
		ExitWindowEndMinutes:       120,
		EarlyArrivalGraceMinutes:   15,
		LateArrivalGraceMinutes:    10,
		EarlyDepartureGraceMinutes: 15,
		OvertimeThresholdMinutes:   30,
		InToOutCooldownMinutes:     30,
		OutToInCooldownMinutes:     15,
		RequireBothInOut:           true,
		IsActive:                   true,
		IsDefault:                  true,
	}
	if err := db.Create(policy.ToDataModel(&pol)).Error; err != nil {
		return fmt.Errorf("seed: creating policy: %w", err)
	}

	emp := employee.Employee{ID: uuid.New(), EmployeeCode: "E001", Name: "Demo Employee", Status: employee.StatusActive, ShiftID: &nineToFive.ID}
	if err := db.Create(employee.ToDataModel(&emp)).Error; err != nil {
		return fmt.Errorf("seed: creating employee: %w", err)
	}

	dev := device.Device{ID: uuid.New(), DeviceCode: "DOOR-1", Status: device.StatusActive}
	if err := db.Create(device.ToDataModel(&dev)).Error; err != nil {
		return fmt.Errorf("seed: creating device: %w", err)
	}

	fmt.Printf("seeded shift=%s policy=%s employee=%s (%s) device=%s (%s)\n",
		nineToFive.ID, pol.ID, emp.ID, emp.EmployeeCode, dev.ID, dev.DeviceCode)
	return nil
}
