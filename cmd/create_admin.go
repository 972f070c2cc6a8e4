package cmd

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Create an admin account or promote an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openDBForAdminCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		username := args[0]
		userRepo := repository.NewUserRepository(db)
		ctx := context.Background()

		user, err := userRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		if user != nil {
			user.UpdateCredentials(user.PasswordHash, entity.AuthorityAdmin)
			if err := userRepo.Update(ctx, user); err != nil {
				return err
			}
			fmt.Printf("user %q promoted to ADMIN\n", username)
			return nil
		}

		password, err := promptPassword()
		if err != nil {
			return err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		user = &entity.User{
			Username:     username,
			Name:         username,
			PasswordHash: string(hashed),
			Authority:    entity.AuthorityAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		fmt.Printf("admin %q created with id %d\n", username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}

func openDBForAdminCommands() (*sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func promptPassword() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Password: ")
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if len(input) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	return input, nil
}
