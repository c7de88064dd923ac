package catalogd

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret").apply(cfg)
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v, want [localhost:6379]", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	WithCredentials("app", 2).apply(cfg)
	if cfg.username != "app" || cfg.db != 2 {
		t.Errorf("credentials = (%q, %d), want (app, 2)", cfg.username, cfg.db)
	}

	cfg2 := &clientConfig{}
	WithKeyPrefix("shop:").apply(cfg2)
	if cfg2.keyPrefix != "shop:" {
		t.Errorf("keyPrefix = %q, want shop:", cfg2.keyPrefix)
	}

	WithPageSizes(50, 500).apply(cfg2)
	if cfg2.defaultPageSize != 50 || cfg2.maxPageSize != 500 {
		t.Errorf("page sizes = (%d, %d), want (50, 500)", cfg2.defaultPageSize, cfg2.maxPageSize)
	}

	cfg3 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg3)
	if cfg3.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg3)
	if cfg3.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close() // must not panic
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("catalog.search", time.Now(), nil)
	obs.observe("catalog.search", time.Now(), errors.New("boom"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var found bool
	for _, f := range families {
		if f.GetName() == "catalogd_sdk_operations_total" {
			found = true
			var total float64
			for _, m := range f.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			if total != 2 {
				t.Errorf("operations total = %v, want 2", total)
			}
		}
	}
	if !found {
		t.Error("catalogd_sdk_operations_total not registered")
	}
}

func TestObserver_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestAnonymousProfile(t *testing.T) {
	p := AnonymousProfile()
	if p.Age >= 0 {
		t.Errorf("Age = %d, want negative", p.Age)
	}
	if len(p.HealthConditions) != 0 || len(p.DietaryPreferences) != 0 || len(p.PurchasedCategories) != 0 {
		t.Errorf("profile not empty: %+v", p)
	}
}
