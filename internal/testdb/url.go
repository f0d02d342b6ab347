//go:build integration

package testdb

import (
	"net/url"
	"os"
)

// Environment variables consulted for the test database, in priority order.
const (
	EnvTestDBURL   = "COACH_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

// GetTestDatabaseURL returns the first configured test database URL, or ""
// when none is set.
func GetTestDatabaseURL() string {
	for _, key := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// maskDatabaseURL hides the password of a database URL for test logs.
func maskDatabaseURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
