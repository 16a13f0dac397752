package db

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEntryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:entry-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestEntryPutOverwrites(t *testing.T) {
	gdb := setupEntryTestDB(t)

	if _, ok, err := GetEntry(gdb, KeySiteContent); err != nil || ok {
		t.Fatalf("expected missing entry, ok=%v err=%v", ok, err)
	}
	if err := PutEntry(gdb, KeySiteContent, `{"v":1}`); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := PutEntry(gdb, KeySiteContent, `{"v":2}`); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	value, ok, err := GetEntry(gdb, KeySiteContent)
	if err != nil || !ok {
		t.Fatalf("expected entry, ok=%v err=%v", ok, err)
	}
	if value != `{"v":2}` {
		t.Fatalf("expected overwritten value, got %s", value)
	}

	var count int64
	gdb.Model(&Entry{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestEntryDeleteThenPut(t *testing.T) {
	gdb := setupEntryTestDB(t)
	key := DraftKey("admin")

	if err := PutEntry(gdb, key, "draft"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := DeleteEntry(gdb, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := GetEntry(gdb, key); ok {
		t.Fatal("expected entry to be gone")
	}
	if err := PutEntry(gdb, key, "again"); err != nil {
		t.Fatalf("put after delete failed: %v", err)
	}
	if value, ok, _ := GetEntry(gdb, key); !ok || value != "again" {
		t.Fatalf("expected re-created entry, got %q ok=%v", value, ok)
	}
}
