// Command tokengen mints and verifies session tokens for debugging.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

func main() {
	secret := flag.String("secret", "", "Secret key for signing the token (required)")
	username := flag.String("username", "", "Username to embed in the token")
	expiry := flag.Duration("expiry", time.Hour, "Token expiry duration (e.g., 30m, 1h, 24h)")
	verify := flag.String("verify", "", "Verify the given token instead of minting one")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: -secret is required")
		flag.Usage()
		os.Exit(1)
	}

	tokens := sessiontoken.NewService(*secret, sessiontoken.WithExpiry(*expiry))

	if *verify != "" {
		claims, err := tokens.Validate(*verify)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Username: %s\nExpires: %s\n", claims.Username, claims.ExpiresAt.Format(time.RFC3339))
		return
	}

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Error: -username is required to mint a token")
		flag.Usage()
		os.Exit(1)
	}

	tokenStr, claims, err := tokens.Issue(*username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token: %s\nExpires: %s\n", tokenStr, claims.ExpiresAt.Format(time.RFC3339))
}
