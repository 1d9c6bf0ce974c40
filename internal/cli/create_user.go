package cli

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrlokans/userauth/internal/auth"
	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/database"
	usersrepo "github.com/mrlokans/userauth/internal/database/users"
)

type CreateUserCommand struct {
	Email        string
	Password     string
	DatabasePath string
	BcryptCost   int
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost factor for the password hash")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Register a user account from the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -email bob@example.com -password s3cret\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -email bob@example.com -password s3cret -db ./my.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		fs.Usage()
		return fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("password is required")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	service := auth.NewService(usersrepo.NewRepository(db.DB), auth.NewHasher(cmd.BcryptCost))

	user, err := service.Register(cmd.Email, cmd.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyRegistered) {
			return fmt.Errorf("email %s is already registered", cmd.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}
