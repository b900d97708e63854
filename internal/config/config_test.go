package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.SkipAuth {
		t.Errorf("SkipAuth = false, want true")
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("MaxUploadMB = %d, want fallback 10", cfg.MaxUploadMB)
	}
	if cfg.IsProduction() {
		t.Errorf("IsProduction() = true for default environment")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "25", want: 25},
		{name: "zero falls back", value: "0", want: 7},
		{name: "negative falls back", value: "-3", want: 7},
		{name: "garbage falls back", value: "ten", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getEnvInt("TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
