/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Store backend selection for the client and schedule tables.
type StoreBackend string

const (
	StoreSheets StoreBackend = "sheets"
	StoreSQL    StoreBackend = "sql"
	StoreS3     StoreBackend = "s3" // catalog only
)

// DefaultSlotTypes are the message types of the historical client sheet.
var DefaultSlotTypes = []string{"Conseil", "Aphorisme", "Réflexion"}

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	LogLevel    string
	LogJSON     bool

	// Planning
	TimeZone           string
	WindowDays         int
	RetentionDays      int
	SlotTypes          []string
	CatalogTypeAliases string

	// Retry policy for remote stores
	RetryMaxAttempts int
	RetryBase        time.Duration
	RetryMaxDelay    time.Duration
	RetryJitter      float64

	// Backends
	StoreBackend   StoreBackend
	CatalogBackend StoreBackend

	// Google Sheets
	GoogleCredentialsFile string
	ClientsSpreadsheetID  string
	ClientsSheet          string
	ScheduleSpreadsheetID string
	ScheduleSheet         string
	CatalogSpreadsheetID  string

	// SQL
	DBBackend DatabaseBackend
	DBDSN     string

	// S3 catalog
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Prefix          string
	S3Endpoint        string // For S3-compatible services (MinIO, Spaces, etc.)
	S3UsePathStyle    bool   // Required for MinIO

	// Run lock
	LockEnabled   bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockKey       string
	LockLease     time.Duration
	InstanceID    string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64

	// Metrics
	PushgatewayURL string

	LegacyEnvWarnings []string
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnvAny([]string{"PLANNER_ENV"}, "production"),
		LogLevel:    getEnvAny([]string{"PLANNER_LOG_LEVEL"}, ""),
		LogJSON:     getEnvBoolAny([]string{"PLANNER_LOG_JSON"}, false),

		TimeZone:           getEnvAny([]string{"PLANNER_TIMEZONE", "FUSEAU_HORAIRE", "TZ"}, "Europe/Paris"),
		WindowDays:         getEnvIntAny([]string{"PLANNER_WINDOW_DAYS", "NB_JOURS_GENERATION"}, 2),
		RetentionDays:      getEnvIntAny([]string{"PLANNER_RETENTION_DAYS", "RETENTION_JOURS"}, 2),
		SlotTypes:          getEnvListAny([]string{"PLANNER_SLOT_TYPES"}, DefaultSlotTypes),
		CatalogTypeAliases: getEnvAny([]string{"PLANNER_CATALOG_TYPE_ALIASES"}, ""),

		RetryMaxAttempts: getEnvIntAny([]string{"PLANNER_RETRY_MAX_ATTEMPTS"}, 5),
		RetryBase:        getEnvDurationAny([]string{"PLANNER_RETRY_BASE"}, time.Second),
		RetryMaxDelay:    getEnvDurationAny([]string{"PLANNER_RETRY_MAX_DELAY"}, 30*time.Second),
		RetryJitter:      getEnvFloatAny([]string{"PLANNER_RETRY_JITTER"}, 0.2),

		StoreBackend:   StoreBackend(strings.ToLower(getEnvAny([]string{"PLANNER_STORE_BACKEND"}, string(StoreSheets)))),
		CatalogBackend: StoreBackend(strings.ToLower(getEnvAny([]string{"PLANNER_CATALOG_BACKEND"}, ""))),

		GoogleCredentialsFile: getEnvAny([]string{"PLANNER_GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS", "CHEMIN_CLE_JSON"}, ""),
		ClientsSpreadsheetID:  getEnvAny([]string{"PLANNER_CLIENTS_SPREADSHEET_ID"}, ""),
		ClientsSheet:          getEnvAny([]string{"PLANNER_CLIENTS_SHEET", "FEUILLE_CLIENTS"}, "Clients"),
		ScheduleSpreadsheetID: getEnvAny([]string{"PLANNER_SCHEDULE_SPREADSHEET_ID"}, ""),
		ScheduleSheet:         getEnvAny([]string{"PLANNER_SCHEDULE_SHEET", "FEUILLE_PLANNING"}, "Planning"),
		CatalogSpreadsheetID:  getEnvAny([]string{"PLANNER_CATALOG_SPREADSHEET_ID"}, ""),

		DBBackend: DatabaseBackend(getEnvAny([]string{"PLANNER_DB_BACKEND"}, string(DatabaseSQLite))),
		DBDSN:     getEnvAny([]string{"PLANNER_DB_DSN"}, ""),

		S3AccessKeyID:     getEnvAny([]string{"PLANNER_S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"}, ""),
		S3SecretAccessKey: getEnvAny([]string{"PLANNER_S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"}, ""),
		S3Region:          getEnvAny([]string{"PLANNER_S3_REGION", "AWS_REGION"}, "us-east-1"),
		S3Bucket:          getEnvAny([]string{"PLANNER_S3_BUCKET", "S3_BUCKET"}, ""),
		S3Prefix:          getEnvAny([]string{"PLANNER_S3_PREFIX"}, "catalog"),
		S3Endpoint:        getEnvAny([]string{"PLANNER_S3_ENDPOINT", "S3_ENDPOINT"}, ""),
		S3UsePathStyle:    getEnvBoolAny([]string{"PLANNER_S3_USE_PATH_STYLE", "S3_USE_PATH_STYLE"}, false),

		LockEnabled:   getEnvBoolAny([]string{"PLANNER_LOCK_ENABLED"}, false),
		RedisAddr:     getEnvAny([]string{"PLANNER_REDIS_ADDR"}, "localhost:6379"),
		RedisPassword: getEnvAny([]string{"PLANNER_REDIS_PASSWORD"}, ""),
		RedisDB:       getEnvIntAny([]string{"PLANNER_REDIS_DB"}, 0),
		LockKey:       getEnvAny([]string{"PLANNER_LOCK_KEY"}, "grimnir:planner:run"),
		LockLease:     getEnvDurationAny([]string{"PLANNER_LOCK_LEASE"}, 2*time.Minute),
		InstanceID:    getEnvAny([]string{"PLANNER_INSTANCE_ID", "HOSTNAME"}, ""),

		TracingEnabled:    getEnvBoolAny([]string{"PLANNER_TRACING_ENABLED"}, false),
		OTLPEndpoint:      getEnvAny([]string{"PLANNER_OTLP_ENDPOINT"}, "localhost:4317"),
		TracingSampleRate: getEnvFloatAny([]string{"PLANNER_TRACING_SAMPLE_RATE"}, 1.0),

		PushgatewayURL: getEnvAny([]string{"PLANNER_PUSHGATEWAY_URL"}, ""),
	}
	if cfg.CatalogBackend == "" {
		cfg.CatalogBackend = cfg.StoreBackend
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LegacyEnvWarnings = detectLegacyEnvWarnings()
	return cfg, nil
}

// Validate checks ranges and the settings each selected backend needs.
func (c *Config) Validate() error {
	if c.WindowDays < 1 {
		return fmt.Errorf("PLANNER_WINDOW_DAYS must be at least 1, got %d", c.WindowDays)
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("PLANNER_RETENTION_DAYS must not be negative, got %d", c.RetentionDays)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("PLANNER_RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts)
	}
	if c.RetryJitter < 0 || c.RetryJitter > 1 {
		return fmt.Errorf("PLANNER_RETRY_JITTER must be within [0,1], got %v", c.RetryJitter)
	}
	if len(c.SlotTypes) == 0 {
		return fmt.Errorf("PLANNER_SLOT_TYPES must name at least one message type")
	}

	switch c.StoreBackend {
	case StoreSheets, StoreSQL:
	default:
		return fmt.Errorf("unsupported store backend %q (want sheets or sql)", c.StoreBackend)
	}
	switch c.CatalogBackend {
	case StoreSheets, StoreSQL, StoreS3:
	default:
		return fmt.Errorf("unsupported catalog backend %q (want sheets, sql or s3)", c.CatalogBackend)
	}

	if c.StoreBackend == StoreSheets {
		if c.ClientsSpreadsheetID == "" || c.ScheduleSpreadsheetID == "" {
			return fmt.Errorf("PLANNER_CLIENTS_SPREADSHEET_ID and PLANNER_SCHEDULE_SPREADSHEET_ID must be provided for the sheets backend")
		}
	}
	if c.CatalogBackend == StoreSheets && c.CatalogSpreadsheetID == "" {
		return fmt.Errorf("PLANNER_CATALOG_SPREADSHEET_ID must be provided for the sheets catalog")
	}
	if c.usesSheets() && c.GoogleCredentialsFile == "" {
		return fmt.Errorf("PLANNER_GOOGLE_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS must be provided for the sheets backend")
	}
	if c.StoreBackend == StoreSQL || c.CatalogBackend == StoreSQL {
		if c.DBBackend != DatabasePostgres && c.DBBackend != DatabaseMySQL && c.DBBackend != DatabaseSQLite {
			return fmt.Errorf("unsupported database backend %q", c.DBBackend)
		}
		if c.DBDSN == "" {
			return fmt.Errorf("PLANNER_DB_DSN must be provided for the sql backend")
		}
	}
	if c.CatalogBackend == StoreS3 && c.S3Bucket == "" {
		return fmt.Errorf("PLANNER_S3_BUCKET must be provided for the s3 catalog")
	}
	return nil
}

func (c *Config) usesSheets() bool {
	return c.StoreBackend == StoreSheets || c.CatalogBackend == StoreSheets
}

// UsesSQL reports whether any table lives in the SQL database.
func (c *Config) UsesSQL() bool {
	return c.StoreBackend == StoreSQL || c.CatalogBackend == StoreSQL
}

func detectLegacyEnvWarnings() []string {
	legacy := map[string]string{
		"FUSEAU_HORAIRE":      "use PLANNER_TIMEZONE",
		"NB_JOURS_GENERATION": "use PLANNER_WINDOW_DAYS",
		"RETENTION_JOURS":     "use PLANNER_RETENTION_DAYS",
		"CHEMIN_CLE_JSON":     "use PLANNER_GOOGLE_CREDENTIALS",
		"FEUILLE_CLIENTS":     "use PLANNER_CLIENTS_SHEET",
		"FEUILLE_PLANNING":    "use PLANNER_SCHEDULE_SHEET",
		"FICHIER_CLIENTS":     "spreadsheets are opened by id; set PLANNER_CLIENTS_SPREADSHEET_ID",
		"FICHIER_PLANNING":    "spreadsheets are opened by id; set PLANNER_SCHEDULE_SPREADSHEET_ID",
		"FICHIER_PROGRAMMES":  "spreadsheets are opened by id; set PLANNER_CATALOG_SPREADSHEET_ID",
	}

	warnings := make([]string, 0, len(legacy))
	for key, recommendation := range legacy {
		if os.Getenv(key) != "" {
			warnings = append(warnings, fmt.Sprintf("legacy env key %s is set; %s", key, recommendation))
		}
	}
	sort.Strings(warnings)
	return warnings
}

// getEnvAny returns the first non-empty environment variable value from keys, or def if none set.
func getEnvAny(keys []string, def string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

// getEnvIntAny returns the first set integer environment variable value from keys, or def.
func getEnvIntAny(keys []string, def int) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return parsed
			}
		}
	}
	return def
}

// getEnvBoolAny returns the first set boolean environment variable value from keys, or def.
func getEnvBoolAny(keys []string, def bool) bool {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "true" || v == "1" || v == "yes" {
				return true
			}
			if v == "false" || v == "0" || v == "no" {
				return false
			}
		}
	}
	return def
}

// getEnvFloatAny returns the first set float environment variable value from keys, or def.
func getEnvFloatAny(keys []string, def float64) float64 {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}
	}
	return def
}

// getEnvDurationAny accepts Go durations ("1500ms") or whole seconds ("2").
func getEnvDurationAny(keys []string, def time.Duration) time.Duration {
	for _, k := range keys {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}

// getEnvListAny splits the first set value on commas, dropping blanks.
func getEnvListAny(keys []string, def []string) []string {
	raw := getEnvAny(keys, "")
	if raw == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
