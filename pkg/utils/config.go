package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Brochure BrochureConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RemoteConfig points at the agency's package API.
type RemoteConfig struct {
	BaseURL       string
	ImageURL      string
	ImageURLTour  string
	ImageURLHajj  string
	ImageURLUmrah string
	Timeout       time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type CatalogConfig struct {
	TTL            time.Duration
	PerPage        int
	ReviewsPerPage int
	Timezone       string
}

type BrochureConfig struct {
	Company string
	Tagline string
	Phone   string
	Email   string
	Website string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "amana-travel")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REMOTE_API_URL", "http://localhost:5005/api")
	viper.SetDefault("IMAGE_URL", "http://localhost:5005/api/images")
	viper.SetDefault("REMOTE_TIMEOUT", "15s")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("CATALOG_TTL", "5m")
	viper.SetDefault("CATALOG_PER_PAGE", 3)
	viper.SetDefault("REVIEWS_PER_PAGE", 3)
	viper.SetDefault("FILTER_TIMEZONE", "Local")
	viper.SetDefault("BROCHURE_COMPANY", "Amana Tours & Travels")
	viper.SetDefault("BROCHURE_TAGLINE", "A Journey With Trust")
	viper.SetDefault("BROCHURE_PHONE", "+880 1324-418968")
	viper.SetDefault("BROCHURE_EMAIL", "info@amanatourstravel.com")
	viper.SetDefault("BROCHURE_WEBSITE", "www.amanatourstravel.com")

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Remote: RemoteConfig{
			BaseURL:       strings.TrimRight(viper.GetString("REMOTE_API_URL"), "/"),
			ImageURL:      strings.TrimRight(viper.GetString("IMAGE_URL"), "/"),
			ImageURLTour:  strings.TrimRight(viper.GetString("IMAGE_URL_TOURS"), "/"),
			ImageURLHajj:  strings.TrimRight(viper.GetString("IMAGE_URL_HAJJ"), "/"),
			ImageURLUmrah: strings.TrimRight(viper.GetString("IMAGE_URL_UMRAH"), "/"),
			Timeout:       viper.GetDuration("REMOTE_TIMEOUT"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET"),
			TTL:    viper.GetDuration("SESSION_TTL"),
		},
		Catalog: CatalogConfig{
			TTL:            viper.GetDuration("CATALOG_TTL"),
			PerPage:        viper.GetInt("CATALOG_PER_PAGE"),
			ReviewsPerPage: viper.GetInt("REVIEWS_PER_PAGE"),
			Timezone:       viper.GetString("FILTER_TIMEZONE"),
		},
		Brochure: BrochureConfig{
			Company: viper.GetString("BROCHURE_COMPANY"),
			Tagline: viper.GetString("BROCHURE_TAGLINE"),
			Phone:   viper.GetString("BROCHURE_PHONE"),
			Email:   viper.GetString("BROCHURE_EMAIL"),
			Website: viper.GetString("BROCHURE_WEBSITE"),
		},
	}

	if config.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	return config, nil
}

// FilterLocation resolves FILTER_TIMEZONE. The month filter reads dates in
// this location, not UTC.
func (c CatalogConfig) FilterLocation() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
