package postgres

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/order-management/internal/core/datamodel/gateway"
	paymentpkg "github.com/frahmantamala/order-management/internal/payment"
)

// GatewayConfigSQLite mirrors gateway_configs without the postgres now()
// default.
type GatewayConfigSQLite struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	MerchantID   string    `gorm:"column:merchant_id"`
	MerchantSalt string    `gorm:"column:merchant_salt;not null"`
	MerchantKey  string    `gorm:"column:merchant_key;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (GatewayConfigSQLite) TableName() string {
	return "gateway_configs"
}

var _ = ginkgo.Describe("GatewayConfigRepository", func() {
	var (
		db   *gorm.DB
		repo paymentpkg.GatewayConfigAPI
	)

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&GatewayConfigSQLite{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		repo = NewGatewayConfigRepository(db)
	})

	ginkgo.Context("when the config exists", func() {
		ginkgo.It("should return the merchant credentials", func() {
			seeded := &gateway.Config{
				Name:         "paytr",
				MerchantID:   "123456",
				MerchantSalt: "salt-value",
				MerchantKey:  "key-value",
			}
			gomega.Expect(db.Create(seeded).Error).ToNot(gomega.HaveOccurred())

			cfg, err := repo.GetByID(seeded.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(cfg.Name).To(gomega.Equal("paytr"))
			gomega.Expect(cfg.MerchantSalt).To(gomega.Equal("salt-value"))
			gomega.Expect(cfg.MerchantKey).To(gomega.Equal("key-value"))
		})
	})

	ginkgo.Context("when the config does not exist", func() {
		ginkgo.It("should return an error", func() {
			cfg, err := repo.GetByID(999)

			gomega.Expect(cfg).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
