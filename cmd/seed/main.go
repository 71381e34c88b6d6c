package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dieselx/internal/database"
	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "dieselx.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"prestart_submission_item_media",
		"prestart_submission_items",
		"prestart_submissions",
		"qr_defect_report_media",
		"qr_defect_reports",
		"template_assignments",
		"prestart_template_items",
		"prestart_templates",
		"tasks",
		"equipment",
		"customers",
		"org_members",
		"users",
		"organizations",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// ================== ORGANIZATION ==================
	log.Println("Creating organization...")
	org := &domain.Organization{Name: "Harbour Plant Services"}
	if err := orgRepo.Create(ctx, org); err != nil {
		log.Fatal(err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := &domain.User{
		Email:        "owner@dieselx.dev",
		PasswordHash: string(hash),
		Name:         "Sam Carter",
		Phone:        "+61 400 111 222",
	}
	if err := userRepo.Create(ctx, owner); err != nil {
		log.Fatal(err)
	}
	if err := orgRepo.AddMember(ctx, &domain.OrgMember{
		OrganizationID: org.ID,
		UserID:         owner.ID,
		Role:           domain.OrgRoleOwner,
	}); err != nil {
		log.Fatal(err)
	}
	log.Println("Owner created: owner@dieselx.dev / owner123")

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")
	quarry := &domain.Customer{
		OrganizationID: org.ID,
		Name:           "Westgate Quarry",
		ContactName:    "Pete Morgan",
		ContactPhone:   "+61 400 333 444",
		Address:        "14 Quarry Rd, Westgate",
	}
	farm := &domain.Customer{
		OrganizationID: org.ID,
		Name:           "Riverbend Farms",
		ContactName:    "Louise Tran",
		ContactEmail:   "louise@riverbend.example",
	}
	for _, c := range []*domain.Customer{quarry, farm} {
		if err := customerRepo.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	// ================== EQUIPMENT ==================
	log.Println("Creating equipment...")
	intervalHours := 250
	excavatorDue := 1200
	excavator := &domain.Equipment{
		OrganizationID:       org.ID,
		CustomerID:           quarry.ID,
		UnitName:             "EXC-014",
		Make:                 "Komatsu",
		Model:                "PC200",
		TrackingUnit:         domain.TrackingHours,
		CurrentReading:       1185,
		NextServiceDue:       &excavatorDue,
		NextServiceType:      "250h service",
		ServiceIntervalHours: &intervalHours,
		Status:               domain.EquipmentActive,
		OperatingStatus:      domain.OperatingUp,
	}

	intervalKms := 10000
	truckDue := 84000
	truck := &domain.Equipment{
		OrganizationID:     org.ID,
		CustomerID:         farm.ID,
		UnitName:           "TRK-03",
		Make:               "Isuzu",
		Model:              "FVZ 1400",
		TrackingUnit:       domain.TrackingKilometers,
		CurrentReading:     78500,
		NextServiceDue:     &truckDue,
		NextServiceType:    "10,000km service",
		ServiceIntervalKms: &intervalKms,
		Status:             domain.EquipmentActive,
		OperatingStatus:    domain.OperatingUp,
	}

	generator := &domain.Equipment{
		OrganizationID:  org.ID,
		CustomerID:      quarry.ID,
		UnitName:        "GEN-7",
		Make:            "Cummins",
		Model:           "C150D5",
		TrackingUnit:    domain.TrackingHours,
		CurrentReading:  430,
		Status:          domain.EquipmentActive,
		OperatingStatus: domain.OperatingDown,
	}
	for _, e := range []*domain.Equipment{excavator, truck, generator} {
		if err := equipmentRepo.Create(ctx, e); err != nil {
			log.Fatal(err)
		}
	}

	// ================== PRE-START TEMPLATE ==================
	log.Println("Creating pre-start template...")
	tpl := &domain.PrestartTemplate{
		OrganizationID: org.ID,
		Name:           "Daily plant pre-start",
		Description:    "Standard daily walkaround for tracked plant",
		Items: []domain.PrestartTemplateItem{
			{Label: "Brakes operational", FieldType: domain.FieldPassFail, IsRequired: true, IsCritical: true, SortOrder: 1},
			{Label: "Hydraulic leaks", FieldType: domain.FieldPassFail, IsRequired: true, SortOrder: 2},
			{Label: "Seatbelt in good condition", FieldType: domain.FieldYesNo, IsRequired: true, SortOrder: 3},
			{Label: "Engine hours", FieldType: domain.FieldNumber, SortOrder: 4},
			{Label: "General remarks", FieldType: domain.FieldText, SortOrder: 5},
		},
	}
	if err := templateRepo.Create(ctx, tpl); err != nil {
		log.Fatal(err)
	}
	for _, e := range []*domain.Equipment{excavator, truck} {
		if err := templateRepo.Assign(ctx, e.ID, tpl.ID); err != nil {
			log.Fatal(err)
		}
	}

	// ================== TASKS ==================
	log.Println("Creating tasks...")
	yesterday := time.Now().Add(-24 * time.Hour)
	genReading := 430
	tasks := []*domain.Task{
		{
			OrganizationID:           org.ID,
			EquipmentID:              generator.ID,
			CustomerID:               quarry.ID,
			Type:                     domain.TaskBreakdown,
			Status:                   domain.TaskCreated,
			Description:              "Generator will not start, suspected fuel pump",
			ReportedByName:           "Dave Hill",
			EquipmentReadingAtReport: &genReading,
		},
		{
			OrganizationID: org.ID,
			EquipmentID:    excavator.ID,
			CustomerID:     quarry.ID,
			Type:           domain.TaskPlannedMaintenance,
			Status:         domain.TaskApproved,
			Description:    "250h service due",
			ScheduledDate:  &yesterday,
		},
		{
			OrganizationID: org.ID,
			EquipmentID:    truck.ID,
			CustomerID:     farm.ID,
			Type:           domain.TaskDefect,
			Status:         domain.TaskCompleted,
			Description:    "Replace cracked mirror",
		},
	}
	for _, t := range tasks {
		if err := taskRepo.Create(ctx, t); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
}
