// Command admincli bootstraps an admin account against the configured
// database. It prompts for the password on the terminal so it never lands
// in shell history.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/config"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/password"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/services"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	name := prompt(reader, "Name")
	email := prompt(reader, "Email")
	position := prompt(reader, "Position")

	plaintext, err := readPassword()
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	codec := auth.NewCodecWithTTL([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	accounts := services.NewAccountService(db, repos, password.NewHasher(), codec, nil, logger)

	admin, _, err := accounts.RegisterAdmin(ctx, services.NewAdmin{
		Name: name, Email: email, Password: plaintext, Position: position,
	})
	if err != nil {
		log.Fatalf("creating admin account: %v", err)
	}

	fmt.Printf("admin account created: %s (%s)\n", admin.ID, admin.Email)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}
	return strings.TrimSpace(line)
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
