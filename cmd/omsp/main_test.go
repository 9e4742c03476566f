package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	if level := newLogger("nonsense").GetLevel(); level != zerolog.InfoLevel {
		t.Fatalf("newLogger(nonsense) level = %s, want info", level)
	}
	if level := newLogger("debug").GetLevel(); level != zerolog.DebugLevel {
		t.Fatalf("newLogger(debug) level = %s, want debug", level)
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	logger := zerolog.Nop()

	if location := loadLocation("Not/AZone", logger); location != time.UTC {
		t.Fatalf("loadLocation(Not/AZone) = %v, want UTC", location)
	}
	if location := loadLocation("Asia/Manila", logger); location.String() != "Asia/Manila" {
		t.Fatalf("loadLocation(Asia/Manila) = %v", location)
	}
}
