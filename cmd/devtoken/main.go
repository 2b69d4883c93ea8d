// Command devtoken prints a desk access token signed with JWT_SECRET, for
// calling a local desk without the backend's login flow.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Simplextsd/grow-aura-engage/internal/utils"
)

func main() {
	_ = godotenv.Load()

	user := flag.String("user", "1", "subject (user id) of the token")
	role := flag.String("role", "AGENT", "role claim (AGENT or ADMIN)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing required env var: JWT_SECRET")
	}
	at, err := utils.NewAccessToken(secret, *user, *role, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(at.Token)
}
