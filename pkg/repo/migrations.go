package repo

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/skynet2/whatsapp-finance-assistant/pkg/database"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	return m.Migrate()
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2026_09_28_Initial",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&database.User{},
					&database.UserProfile{},
					&database.ConversationMessage{},
					&database.Transaction{},
					&database.RecurringBill{},
				)
			},
		},
		{
			ID: "2026_10_06_BillNotifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&database.BillNotification{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&database.BillNotification{})
			},
		},
	}
}
