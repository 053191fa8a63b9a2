package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Fatalf("expected server.port to be set")
	}
	if cfg.Database.Host == "" {
		t.Fatalf("expected database.host to be set")
	}
	if cfg.RabbitMQ.Port == 0 {
		t.Fatalf("expected rabbitmq.port to be set")
	}
	if cfg.Pricing.TaxRate != 0.10 {
		t.Errorf("pricing.tax_rate = %v, want 0.10", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.DeliveryFee != 5.00 {
		t.Errorf("pricing.delivery_fee = %v, want 5.00", cfg.Pricing.DeliveryFee)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := defaults()
	if cfg.Pricing.TaxRate != 0.10 {
		t.Errorf("default tax_rate = %v, want 0.10", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.PaymentDelaySeconds != 2 {
		t.Errorf("default payment_delay_seconds = %v, want 2", cfg.Pricing.PaymentDelaySeconds)
	}
	if cfg.Sessions.IdleTTLMinutes != 30 {
		t.Errorf("default idle_ttl_minutes = %v, want 30", cfg.Sessions.IdleTTLMinutes)
	}
}
