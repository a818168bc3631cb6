// ABOUTME: Maintenance CLI for the shoresh database
// ABOUTME: Operates on the SQLite file directly, no server required

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shoresh-dev/shoresh/internal/auth"
	"github.com/shoresh-dev/shoresh/internal/store"
)

// adminConfig holds defaults read from ~/.config/shoresh/admin.toml so the
// database path does not have to be repeated on every invocation.
type adminConfig struct {
	DatabasePath string `toml:"database_path"`
}

func defaultsPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "admin.toml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "shoresh", "admin.toml")
}

func loadDefaults() adminConfig {
	var cfg adminConfig
	// Missing or malformed defaults are not an error, flags still work.
	_, _ = toml.DecodeFile(defaultsPath(), &cfg)
	return cfg
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dbPath string

	defaults := loadDefaults()

	cmd := &cobra.Command{
		Use:           "shoresh-admin",
		Short:         "Maintain the shoresh vocabulary database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", defaults.DatabasePath,
		"Path to the SQLite database (default from "+defaultsPath()+")")

	openStore := func() (store.Gateway, error) {
		if dbPath == "" {
			return nil, fmt.Errorf("no database path: pass --db or set database_path in %s", defaultsPath())
		}
		return store.NewSQLiteStore(dbPath)
	}

	cmd.AddCommand(defineCmd(openStore))
	cmd.AddCommand(wordsCmd(openStore))
	cmd.AddCommand(participantsCmd(openStore))
	cmd.AddCommand(suggestionsCmd(openStore))
	cmd.AddCommand(archiveCmd(openStore))
	cmd.AddCommand(hashPasswordCmd())

	return cmd
}

type storeOpener func() (store.Gateway, error)

func defineCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "define <word> <canonical>",
		Short: "Map a word (or spelling variant) to its canonical form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			if err := gw.DefineCanonical(context.Background(), args[0], args[1]); err != nil {
				return err
			}

			color.Green("✓ %s -> %s", args[0], args[1])
			return nil
		},
	}
}

func wordsCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List every stored canonical mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			mappings, err := gw.ListCanonicalMappings(context.Background())
			if err != nil {
				return err
			}

			gray := color.New(color.FgHiBlack)
			for _, m := range mappings {
				fmt.Printf("%s ", m.Word)
				gray.Printf("-> ")
				fmt.Println(m.Canonical)
			}
			gray.Printf("%d mappings\n", len(mappings))
			return nil
		},
	}
}

func participantsCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Manage the participant list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			names, err := gw.Participants(context.Background())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			if err := gw.AddParticipant(context.Background(), args[0]); err != nil {
				return err
			}
			color.Green("✓ added %s", args[0])
			return nil
		},
	})

	return cmd
}

func suggestionsCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "List pending mistake and translation suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			ctx := context.Background()

			mistakes, err := gw.MistakeSuggestions(ctx)
			if err != nil {
				return err
			}
			translations, err := gw.TranslationSuggestions(ctx)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			gray := color.New(color.FgHiBlack)

			bold.Println("Mistake suggestions")
			for _, s := range mistakes {
				fmt.Printf("  #%d %s: %q", s.ID, s.Name, s.Mistake)
				if s.Context != "" {
					gray.Printf("  (%s)", s.Context)
				}
				gray.Printf("  [%s]", s.Reporter)
				fmt.Println()
			}
			if len(mistakes) == 0 {
				gray.Println("  none")
			}

			bold.Println("Translation suggestions")
			for _, s := range translations {
				fmt.Printf("  #%d %s = %s", s.ID, s.English, s.Hebrew)
				gray.Printf("  [%s]", s.Suggestor)
				fmt.Println()
			}
			if len(translations) == 0 {
				gray.Println("  none")
			}

			return nil
		},
	}
}

func archiveCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "List resolved mistake suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := open()
			if err != nil {
				return err
			}
			defer gw.Close()

			archived, err := gw.ArchivedMistakeSuggestions(context.Background())
			if err != nil {
				return err
			}

			gray := color.New(color.FgHiBlack)
			for _, a := range archived {
				if a.Accepted {
					color.New(color.FgGreen).Print("accepted ")
				} else {
					color.New(color.FgRed).Print("rejected ")
				}
				fmt.Printf("%s: %q", a.Name, a.Mistake)
				gray.Printf("  [%s, %s]", a.Reporter, a.ResolvedAt.Format("2006-01-02"))
				fmt.Println()
			}
			if len(archived) == 0 {
				gray.Println("none")
			}
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Generate the bcrypt hash for the shared write password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, "Password: ")

			reader := bufio.NewReader(os.Stdin)
			password, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimSpace(password)
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			fmt.Println(hash)
			return nil
		},
	}
}
