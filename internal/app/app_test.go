package app

import (
	"fmt"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"atmosaether/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One shared in-memory database per test, visible to every pooled
	// connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.ContactSubmission{},
		&model.User{},
		&model.Session{},
		&model.ChatTurn{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
