package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// Database
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	// Smartsheet
	SmartsheetAPIKey string
	QueueDelay       time.Duration

	// Export sheets, one per entity kind
	UsersSheetID       string
	RSVPsSheetID       string
	ConnectionsSheetID string

	// Import sheets
	SessionsSheetID      string
	ProjectsSheetID      string
	OpportunitiesSheetID string
	PartnersSheetID      string
	AttendeesSheetID     string

	// Admin login
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),

		// DB
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "converge_nps"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "secret123"),

		// Smartsheet
		SmartsheetAPIKey: getEnv("SMARTSHEET_API_KEY", ""),
		QueueDelay:       time.Duration(getEnvInt("SMARTSHEET_QUEUE_DELAY_MS", 200)) * time.Millisecond,

		UsersSheetID:       getEnv("SMARTSHEET_USERS_SHEET_ID", ""),
		RSVPsSheetID:       getEnv("SMARTSHEET_RSVPS_SHEET_ID", ""),
		ConnectionsSheetID: getEnv("SMARTSHEET_CONNECTIONS_SHEET_ID", ""),

		SessionsSheetID:      getEnv("SMARTSHEET_SESSIONS_SHEET_ID", ""),
		ProjectsSheetID:      getEnv("SMARTSHEET_PROJECTS_SHEET_ID", ""),
		OpportunitiesSheetID: getEnv("SMARTSHEET_OPPORTUNITIES_SHEET_ID", ""),
		PartnersSheetID:      getEnv("SMARTSHEET_PARTNERS_SHEET_ID", ""),
		AttendeesSheetID:     getEnv("SMARTSHEET_ATTENDEES_SHEET_ID", ""),

		// Admin login
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@converge-nps.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123!"),
	}

	return cfg, nil
}

// SheetID maps a kind name used on the API surface to its configured sheet id.
// Unknown kinds return "".
func (c *Config) SheetID(kind string) string {
	switch kind {
	case "user", "users":
		return c.UsersSheetID
	case "rsvp", "rsvps":
		return c.RSVPsSheetID
	case "connection", "connections":
		return c.ConnectionsSheetID
	case "session", "sessions":
		return c.SessionsSheetID
	case "project", "projects":
		return c.ProjectsSheetID
	case "opportunity", "opportunities":
		return c.OpportunitiesSheetID
	case "partner", "partners":
		return c.PartnersSheetID
	case "attendee", "attendees":
		return c.AttendeesSheetID
	}
	return ""
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns int from env or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
