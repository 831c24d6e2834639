package data

import (
	"log"

	"github.com/freaksearch/freaksearch/src/api/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Submission{},
		&types.Upload{},
		&types.Setting{},
	); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}
