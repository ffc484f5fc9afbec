// Command adduser registers a user from the terminal, going straight through
// the service layer. Useful for seeding a fresh database.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/antonk9218/paybuddy/internal/server/config"
	"github.com/antonk9218/paybuddy/internal/server/hashing"
	"github.com/antonk9218/paybuddy/internal/server/repositories/repomanager"
	"github.com/antonk9218/paybuddy/internal/server/services"
)

func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	fmt.Println(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)

	username, err := readLine(reader, "Enter username")
	if err != nil {
		log.Fatalf("%v", err)
	}
	email, err := readLine(reader, "Enter email")
	if err != nil {
		log.Fatalf("%v", err)
	}

	password, err := readPassword("Enter password")
	if err != nil {
		log.Fatalf("%v", err)
	}
	confirm, err := readPassword("Confirm password")
	if err != nil {
		log.Fatalf("%v", err)
	}
	if password != confirm {
		log.Fatal("passwords do not match")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	us := services.NewUserService(db, rm, hashing.NewBcryptHasher(cfg.BcryptCost), cfg)

	user, err := us.Register(ctx, username, email, password)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Success! id=%d\n", user.ID)

}
