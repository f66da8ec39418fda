package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:            "mongodb://localhost:27017",
		MongoDatabase:       "hackmate",
		AuthVerifyURL:       "https://id.example.com/verify",
		AuthVerifyTimeout:   5 * time.Second,
		ChatSendBuffer:      256,
		ChatMaxMessageBytes: 4096,
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	cases := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", "dev", func(*AppConfig) {}, false},
		{"bad mongo uri", "dev", func(c *AppConfig) { c.MongoURI = "not-a-uri" }, true},
		{"empty database", "dev", func(c *AppConfig) { c.MongoDatabase = "" }, true},
		{"zero send buffer", "dev", func(c *AppConfig) { c.ChatSendBuffer = 0 }, true},
		{"zero message cap", "dev", func(c *AppConfig) { c.ChatMaxMessageBytes = 0 }, true},
		{"dev mode allowed outside prod", "dev", func(c *AppConfig) { c.AuthVerifyURL = "" }, false},
		{"dev mode rejected in prod", "prod", func(c *AppConfig) { c.AuthVerifyURL = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appCfg := validAppConfig()
			tc.mutate(&appCfg)
			coreCfg := &config.CoreConfig{Env: tc.env}

			err := ValidateConfig(coreCfg, appCfg, logger)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateConfig: got err %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
