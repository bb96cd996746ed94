package main

import (
	"fmt"
	"os"
)

// authVars are the auth service settings the dashboard cannot start a
// login flow without. Their presence drives the exit code.
var authVars = []string{
	"ADA_AUTH_URL",
	"ADA_AUTH_CLIENT_ID",
}

// otherVars are reported for completeness but never affect the exit code.
var otherVars = []string{
	"ADA_AUTH_CLIENT_SECRET",
	"ADA_BASE_URL",
	"ADA_LISTEN_ADDR",
	"ADA_DB_PATH",
	"ADA_SECRET_KEY",
	"ADA_SESSION_TTL",
	"ADA_SWEEP_INTERVAL",
	"ADA_SECURE_COOKIES",
}

func main() {
	os.Exit(report())
}

func report() int {
	code := 0

	fmt.Println("Auth service configuration:")
	for _, name := range authVars {
		if !printPresence(name) {
			code = 1
		}
	}

	fmt.Println()
	fmt.Println("Other configuration:")
	for _, name := range otherVars {
		printPresence(name)
	}

	return code
}

// printPresence reports whether an environment variable is set without
// echoing its value.
func printPresence(name string) bool {
	if _, ok := os.LookupEnv(name); ok {
		fmt.Printf("  %s: set\n", name)
		return true
	}
	fmt.Printf("  %s: missing\n", name)
	return false
}
