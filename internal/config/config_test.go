package config

import "testing"

func TestParseWatchRoute(t *testing.T) {
	cases := []struct {
		entry string
		want  WatchRoute
	}{
		{"JFK-LAX:45:2", WatchRoute{Origin: "JFK", Destination: "LAX", DaysAhead: 45, FlexDays: 2}},
		{"bur-las", WatchRoute{Origin: "BUR", Destination: "LAS", DaysAhead: 30}},
		{"JFK-LAX:10", WatchRoute{Origin: "JFK", Destination: "LAX", DaysAhead: 10}},
	}

	for _, tc := range cases {
		got, err := parseWatchRoute(tc.entry)
		if err != nil {
			t.Errorf("parseWatchRoute(%q) failed: %v", tc.entry, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseWatchRoute(%q) = %+v, want %+v", tc.entry, got, tc.want)
		}
	}
}

func TestParseWatchRoute_Invalid(t *testing.T) {
	for _, entry := range []string{"JFKLAX", "JFK-", "-LAX", "JFK-LAX:abc", "JFK-LAX:30:-1"} {
		if _, err := parseWatchRoute(entry); err == nil {
			t.Errorf("parseWatchRoute(%q): expected error", entry)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.FetchPacingMs != 500 {
		t.Errorf("Expected default pacing 500ms, got %d", cfg.FetchPacingMs)
	}
	if len(cfg.TrackedCarriers) != 2 {
		t.Errorf("Expected default tracked carriers, got %v", cfg.TrackedCarriers)
	}
}

func TestLoad_ParsesKeysAndRoutes(t *testing.T) {
	t.Setenv("FARE_API_KEYS", "key0, key1 ,,key2")
	t.Setenv("WATCH_ROUTES", "JFK-LAX:45:2, BUR-LAS")
	t.Setenv("TRACKED_CARRIERS", "JetBlue")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.FareAPIKeys) != 3 {
		t.Errorf("Expected 3 keys, got %v", cfg.FareAPIKeys)
	}
	if len(cfg.WatchRoutes) != 2 {
		t.Fatalf("Expected 2 watch routes, got %d", len(cfg.WatchRoutes))
	}
	if cfg.WatchRoutes[0].FlexDays != 2 {
		t.Errorf("Expected flex days 2, got %d", cfg.WatchRoutes[0].FlexDays)
	}
	if len(cfg.TrackedCarriers) != 1 || cfg.TrackedCarriers[0] != "JetBlue" {
		t.Errorf("Expected carrier override, got %v", cfg.TrackedCarriers)
	}
}
