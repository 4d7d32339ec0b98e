package database

import (
	"testing"

	"travel-agency/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUsername: "sova",
		DBPassword: "pw",
		DBDatabase: "tours",
		DBSSLMode:  "require",
	}
	want := "host=db port=5433 user=sova password=pw dbname=tours sslmode=require"
	if got := DSN(cfg); got != want {
		t.Fatalf("DSN mismatch:\n got  %s\n want %s", got, want)
	}
}
