package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventures/internal/catalog"
	"eventures/internal/cms"
	"eventures/internal/customers"
	"eventures/internal/lookups"
	"eventures/internal/shared/config"
	"eventures/internal/shared/database"
)

type Seeder struct {
	db        *database.DB
	customers customers.Repository
	catalog   catalog.Repository
	lookups   lookups.Repository
	cms       *cms.Client
}

func main() {
	clean := flag.Bool("clean", true, "truncate tables before seeding")
	strapiURL := flag.String("strapi", "", "import catalog and lookups from this Strapi base URL instead of the built-in sample")
	flag.Parse()

	_ = godotenv.Load()
	fmt.Println("🌱 Starting Eventures Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:        db,
		customers: customers.NewRepository(db.PostgreSQL),
		catalog:   catalog.NewRepository(db.PostgreSQL),
		lookups:   lookups.NewRepository(db.PostgreSQL),
	}
	if *strapiURL != "" {
		seeder.cms = cms.NewClient(*strapiURL, cfg.CMS.APIToken, cfg.CMS.Timeout)
	}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates every table, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"booking_items",
		"bookings",
		"catalog_items",
		"event_types",
		"location_types",
		"credentials",
		"customers",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedAccounts(ctx); err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}

	if s.cms != nil {
		if err := s.ImportFromCMS(ctx); err != nil {
			return fmt.Errorf("failed to import from CMS: %w", err)
		}
	} else {
		if err := s.SeedLookups(ctx, sampleEventTypes, sampleLocations); err != nil {
			return fmt.Errorf("failed to seed lookups: %w", err)
		}
		if err := s.SeedCatalog(ctx, sampleCatalog()); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// cached listings would hide the new rows
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}
	return nil
}

// SeedAccounts creates one admin and two customers, all with password "qwerty"
func (s *Seeder) SeedAccounts(ctx context.Context) error {
	fmt.Println("  👤 Seeding accounts...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &customers.Credential{
		Email:        "admin@eventures.local",
		PasswordHash: string(hashedPassword),
		Role:         customers.RoleAdmin,
	}
	switch err := s.customers.CreateCredential(ctx, admin); {
	case errors.Is(err, customers.ErrAlreadyExists):
		fmt.Printf("    ⏭️  Skipped existing admin: %s\n", admin.Email)
	case err != nil:
		return fmt.Errorf("failed to create admin: %w", err)
	default:
		fmt.Printf("    ✅ Created admin: %s\n", admin.Email)
	}

	customerData := []struct {
		name  string
		phone string
		email string
	}{
		{"Asha Mehta", "+15550100001", "asha@example.com"},
		{"Ravi Kumar", "+15550100002", "ravi@example.com"},
	}

	for _, data := range customerData {
		customer := &customers.Customer{
			Name:        data.name,
			PhoneNumber: data.phone,
			Email:       data.email,
		}
		credential := &customers.Credential{
			Email:        data.email,
			PasswordHash: string(hashedPassword),
			Role:         customers.RoleCustomer,
		}
		if err := s.customers.CreateWithCredential(ctx, customer, credential); err != nil {
			if errors.Is(err, customers.ErrAlreadyExists) {
				fmt.Printf("    ⏭️  Skipped existing customer: %s\n", data.email)
				continue
			}
			return fmt.Errorf("failed to create customer %s: %w", data.email, err)
		}
		fmt.Printf("    ✅ Created customer: %s\n", customer.Email)
	}
	return nil
}

func (s *Seeder) SeedLookups(ctx context.Context, eventTypes, locations []string) error {
	fmt.Println("  🏷️  Seeding event types and locations...")

	for _, name := range eventTypes {
		existing, err := s.lookups.FindEventTypeByName(ctx, name)
		if err != nil && !errors.Is(err, lookups.ErrEventTypeNotFound) {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.lookups.CreateEventType(ctx, &lookups.EventType{Name: name}); err != nil {
			return fmt.Errorf("failed to create event type %s: %w", name, err)
		}
	}
	fmt.Printf("    ✅ %d event types\n", len(eventTypes))

	for _, name := range locations {
		existing, err := s.lookups.FindLocationTypeByName(ctx, name)
		if err != nil && !errors.Is(err, lookups.ErrLocationNotFound) {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.lookups.CreateLocationType(ctx, &lookups.LocationType{Name: name}); err != nil {
			return fmt.Errorf("failed to create location %s: %w", name, err)
		}
	}
	fmt.Printf("    ✅ %d locations\n", len(locations))
	return nil
}

func (s *Seeder) SeedCatalog(ctx context.Context, items []catalog.Item) error {
	fmt.Println("  🪑 Seeding catalog...")

	if err := s.catalog.CreateBatch(ctx, items); err != nil {
		return err
	}

	counts := make(map[catalog.Kind]int)
	for _, item := range items {
		counts[item.Kind]++
	}
	for _, kind := range catalog.AllKinds() {
		fmt.Printf("    ✅ %d %s items\n", counts[kind], kind)
	}
	return nil
}

// ImportFromCMS copies lookups and every catalog kind from Strapi
func (s *Seeder) ImportFromCMS(ctx context.Context) error {
	fmt.Println("  🌐 Importing from Strapi...")

	eventTypes, err := s.cms.ListEventTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list event types: %w", err)
	}
	locations, err := s.cms.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}
	if err := s.SeedLookups(ctx, eventTypes, locations); err != nil {
		return err
	}

	var items []catalog.Item
	for _, kind := range catalog.AllKinds() {
		entries, err := s.cms.ListCatalog(ctx, kind)
		if err != nil {
			return fmt.Errorf("failed to list %s items: %w", kind, err)
		}
		for _, entry := range entries {
			items = append(items, entry.ToCatalogItem())
		}
	}
	return s.SeedCatalog(ctx, items)
}
