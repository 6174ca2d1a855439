package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens a GORM handle against the given DSN. TranslateError is
// on so driver errors surface as gorm sentinels (a unique key violation
// becomes gorm.ErrDuplicatedKey).
func NewMySQL(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	return gormDB, nil
}
