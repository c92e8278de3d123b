package gateway

import "time"

// Config holds the merchant credentials for one payment gateway account.
// MerchantSalt and MerchantKey are the secrets the callback signature is
// computed from; they never leave this struct except into the HMAC.
type Config struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	MerchantID   string    `gorm:"column:merchant_id"`
	MerchantSalt string    `gorm:"column:merchant_salt;not null"`
	MerchantKey  string    `gorm:"column:merchant_key;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Config) TableName() string {
	return "gateway_configs"
}
