package database

import (
	"fmt"

	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/log"
)

// AutoMigrate auto migrate database table schema
func AutoMigrate(db *gorm.DB) error {
	log.Info("Starting database migration...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Post{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.PointTransaction{},
		&model.Payment{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}

	log.Info("Database migration completed")
	return nil
}

// CreateIndexes create additional composite indexes
func CreateIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders (user_id, order_status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_point_tx_user_type ON point_transactions (user_id, type, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_point_tx_order ON point_transactions (order_id, type)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			log.WithFields(map[string]interface{}{
				"sql":   stmt,
				"error": err.Error(),
			}).Warn("Failed to create index")
		}
	}
	return nil
}
