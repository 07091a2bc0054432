package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets and identifiers are strings; durations
// and costs are ints, matching how the values are used in the application.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	JWTSecret   string // secret used to sign tokens
	TokenTTLMin int    // token time-to-live in minutes; 0 issues tokens without expiry
	BcryptCost  int    // bcrypt cost for password hashing
	LDAPURL     string // directory server URL, e.g. ldap://directory.example.org (optional)
	LDAPOrg     string // base DN appended to "uid=<user>" when binding
	LDAPFilter  string // search filter users must match to be accepted
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
//
// TokenTTLMin defaults to 0, which means issued tokens carry no expiry
// claim and never expire. This is a deliberate option for closed
// deployments; set TOKEN_TTL_MIN in anything internet-facing.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),        // environment (dev/test/prod)
		Port:        must("APP_PORT"),                // port to bind the HTTP server
		DBUser:      must("DB_USER"),                 // database user
		DBPass:      os.Getenv("DB_PASS"),            // database password (empty allowed)
		DBHost:      must("DB_HOST"),                 // database host
		DBPort:      must("DB_PORT"),                 // database port
		DBName:      must("DB_NAME"),                 // database name
		JWTSecret:   must("JWT_SECRET"),              // secret used for signing tokens
		TokenTTLMin: optInt("TOKEN_TTL_MIN", 0),      // token TTL in minutes (0 = no expiry)
		BcryptCost:  optInt("BCRYPT_COST", 12),       // bcrypt cost factor
		LDAPURL:     os.Getenv("LDAP_URL"),           // directory URL (empty disables LDAP)
		LDAPOrg:     os.Getenv("LDAP_ORGANIZATION"),  // e.g. "ou=people,dc=example,dc=org"
		LDAPFilter:  getenv("LDAP_FILTER", "(cn=*)"), // attribute filter for accepted users
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default when
// the variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// optInt reads an optional integer environment variable. Unset variables
// yield the default; malformed values are fatal since silently ignoring
// them would mask configuration mistakes.
func optInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
