package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/badgerworks/honeybadger/internal/auth"
	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account from the command line",
	RunE:  runCreateUser,
}

var cleanupSessionsCmd = &cobra.Command{
	Use:   "cleanup-sessions",
	Short: "Delete expired sessions and reset codes",
	RunE:  runCleanupSessions,
}

var deactivateUserCmd = &cobra.Command{
	Use:   "deactivate-user <email>",
	Short: "Soft-deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeactivateUser,
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))

	fmt.Print("Password: ")
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	password := string(passwordBytes)
	fmt.Println()

	fmt.Print("Confirm Password: ")
	confirmBytes, _ := term.ReadPassword(int(syscall.Stdin))
	confirm := string(confirmBytes)
	fmt.Println()

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if problems := auth.ValidatePassword(password); len(problems) > 0 {
		return fmt.Errorf("weak password: %s", strings.Join(problems, "; "))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	st, err := store.OpenSQL(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	user, err := st.Users().Create(context.Background(), &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created: %s <%s>\n", user.Name, user.Email)
	return nil
}

func runCleanupSessions(cmd *cobra.Command, args []string) error {
	st, err := store.OpenSQL(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	sessions, err := st.Sessions().DeleteExpired(ctx)
	if err != nil {
		return err
	}
	resets, err := st.Resets().DeleteExpired(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d expired sessions and %d expired reset codes\n", sessions, resets)
	return nil
}

func runDeactivateUser(cmd *cobra.Command, args []string) error {
	st, err := store.OpenSQL(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	user, err := st.Users().GetByEmail(ctx, strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	if err := st.Users().SetActive(ctx, user.ID, false); err != nil {
		return err
	}

	fmt.Printf("Account deactivated: %s\n", user.Email)
	return nil
}
