package gologger

import (
	"testing"
)

func TestNewProviderDefaults(t *testing.T) {
	provider, err := NewProvider(DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider.GetLogger("content.corpus") == nil {
		t.Fatalf("expected a logger for the corpus namespace")
	}
}

func TestNewProviderRejectsUnknownLevel(t *testing.T) {
	if _, err := NewProvider(Config{Level: "verbose"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestGetLoggerCachesNamespaces(t *testing.T) {
	provider, err := NewProvider(DefaultConfig())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	first := provider.GetLogger("content.index")
	second := provider.GetLogger("content.index")
	if first != second {
		t.Fatalf("expected cached logger for repeated namespace lookups")
	}

	var nilProvider *Provider
	if nilProvider.GetLogger("content") == nil {
		t.Fatalf("nil provider must fall back to a no-op logger")
	}
}
