package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     Server     `yaml:"server"`
	CORS       CORS       `yaml:"cors"`
	Database   Database   `yaml:"database"`
	IdoSell    IdoSell    `yaml:"idosell"`
	Sheets     Sheets     `yaml:"sheets"`
	Classifier Classifier `yaml:"classifier"`
	S3         S3         `yaml:"s3"`
	App        App        `yaml:"app"`
}

// Server holds HTTP server configuration
type Server struct {
	Host           string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port           string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"90s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"80s"`
}

// Address returns the full server address
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// CORS holds the origins allowed to call the dashboard routes
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173,https://szukajka-ids.web.app"`
}

// Database holds database configuration
type Database struct {
	PostgresDSN string `yaml:"postgres_dsn" env:"URL_DATABASE" env-required:"true"`

	// MetricsTable is the single-row cache table
	MetricsTable string `yaml:"metrics_table" env:"DB_METRICS_TABLE" env-default:"metrics_cache"`
	AutoMigrate  bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`

	MaxConns int32 `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"5"`
	MinConns int32 `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"1"`
}

// IdoSell holds order-search API configuration
type IdoSell struct {
	BaseURL string        `yaml:"base_url" env:"IDOSELL_API_BASE_URL" env-default:"https://vedion.pl/api/admin/v5"`
	APIKey  string        `yaml:"api_key" env:"IDOSELL_API_KEY" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"IDOSELL_TIMEOUT" env-default:"30s"`
}

// Sheets holds Google Sheets configuration
type Sheets struct {
	// CredentialsJSON takes precedence over CredentialsFile
	CredentialsJSON string `yaml:"credentials_json" env:"GCLOUD_CREDENTIALS_JSON"`
	CredentialsFile string `yaml:"credentials_file" env:"GCLOUD_CREDENTIALS_FILE"`

	OrdersSpreadsheetID string `yaml:"orders_spreadsheet_id" env:"REFURBED_PLIK" env-required:"true"`
	SeriesSpreadsheetID string `yaml:"series_spreadsheet_id" env:"M2_M47_PLIK" env-required:"true"`

	OrdersSheet string `yaml:"orders_sheet" env:"SHEETS_ORDERS_SHEET" env-default:"Orders"`
	ConfigSheet string `yaml:"config_sheet" env:"SHEETS_CONFIG_SHEET" env-default:"Config"`
	OutputSheet string `yaml:"output_sheet" env:"SHEETS_OUTPUT_SHEET" env-default:"Szukajka"`
	SeriesSheet string `yaml:"series_sheet" env:"SHEETS_SERIES_SHEET" env-default:"Dane"`

	MarkerCell   string `yaml:"marker_cell" env:"SHEETS_MARKER_CELL" env-default:"A7"`
	SeriesColumn string `yaml:"series_column" env:"SHEETS_SERIES_COLUMN" env-default:"C"`
	SeriesWindow int    `yaml:"series_window" env:"SHEETS_SERIES_WINDOW" env-default:"500"`
}

// Classifier holds order classification settings
type Classifier struct {
	ExclusionTerm  string `yaml:"exclusion_term" env:"CLASSIFIER_EXCLUSION_TERM" env-default:"iphone"`
	NewState       string `yaml:"new_state" env:"CLASSIFIER_NEW_STATE" env-default:"NEW"`
	StateColumn    string `yaml:"state_column" env:"CLASSIFIER_STATE_COLUMN" env-default:"r_state"`
	ItemNameColumn string `yaml:"item_name_column" env:"CLASSIFIER_ITEM_NAME_COLUMN" env-default:"r_item_name"`
}

// S3 holds snapshot archive configuration
type S3 struct {
	Enabled         bool   `yaml:"enabled" env:"S3_ENABLED" env-default:"false"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-default:"metrics"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Prefix          string `yaml:"prefix" env:"S3_PREFIX" env-default:"metrics"`
}

// App holds application-wide settings
type App struct {
	// Timezone used for the daily grid date and the dashboard timestamp
	Timezone string `yaml:"timezone" env:"APP_TIMEZONE" env-default:"UTC"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Location resolves the configured timezone, falling back to UTC
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MustLoad loads configuration from environment and panics on error
func MustLoad() Config {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
