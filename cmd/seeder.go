package cmd

import (
	"errors"
	"fmt"
	"log"

	gatewaymodel "github.com/frahmantamala/order-management/internal/core/datamodel/gateway"
	ordermodel "github.com/frahmantamala/order-management/internal/core/datamodel/order"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with gateway credentials and sample orders",
	Run: func(cmd *cobra.Command, args []string) {
		runSeeder()
	},
}

func runSeeder() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	gormDB, err := initGormDB(db)
	if err != nil {
		log.Fatalf("failed to initialize gorm: %v", err)
	}

	if clearData {
		fmt.Println("Clearing existing data...")
		if err := clearExistingData(gormDB); err != nil {
			log.Fatalf("failed to clear data: %v", err)
		}
	}

	gatewayID, err := seedGatewayConfig(gormDB, cfg.Gateway.Name, cfg.Gateway.MerchantID, cfg.Gateway.MerchantSalt, cfg.Gateway.MerchantKey)
	if err != nil {
		log.Fatalf("failed to seed gateway config: %v", err)
	}

	if err := seedOrders(gormDB, gatewayID); err != nil {
		log.Fatalf("failed to seed orders: %v", err)
	}

	fmt.Println("Seeding completed successfully")
}

func clearExistingData(db *gorm.DB) error {
	for _, table := range []string{"payments", "orders", "gateway_configs"} {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// seedGatewayConfig inserts the configured gateway credentials once and
// returns the row id. Re-running the seeder reuses the existing row.
func seedGatewayConfig(db *gorm.DB, name, merchantID, merchantSalt, merchantKey string) (int64, error) {
	var existing gatewaymodel.Config
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		fmt.Printf("Gateway config %q already present (id=%d)\n", name, existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	cfg := gatewaymodel.Config{
		Name:         name,
		MerchantID:   merchantID,
		MerchantSalt: merchantSalt,
		MerchantKey:  merchantKey,
	}
	if err := db.Create(&cfg).Error; err != nil {
		return 0, err
	}

	fmt.Printf("Created gateway config %q (id=%d)\n", name, cfg.ID)
	return cfg.ID, nil
}

func seedOrders(db *gorm.DB, gatewayID int64) error {
	samples := []ordermodel.Order{
		{State: ordermodel.StatePending, AmountTotal: 149900, Currency: "TRY", GatewayID: &gatewayID, Locked: true},
		{State: ordermodel.StatePending, AmountTotal: 25000, Currency: "TRY", GatewayID: &gatewayID, Locked: true},
		{State: ordermodel.StateCompleted, AmountTotal: 79900, Currency: "TRY", GatewayID: &gatewayID, Locked: false},
	}

	var count int64
	if err := db.Model(&ordermodel.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("Orders table already has %d rows, skipping order seed\n", count)
		return nil
	}

	for i := range samples {
		if err := db.Create(&samples[i]).Error; err != nil {
			return fmt.Errorf("creating sample order: %w", err)
		}
		fmt.Printf("Created order id=%d state=%s amount=%d\n", samples[i].ID, samples[i].State, samples[i].AmountTotal)
	}
	return nil
}
