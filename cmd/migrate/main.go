package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/yourusername/marathi-api/internal/config"
	"github.com/yourusername/marathi-api/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Управление миграциями базы данных прогресса",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up [N]",
	Short: "Применить все миграции или N следующих",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			if len(args) == 0 {
				return m.Up()
			}
			n, err := parseSteps(args[0])
			if err != nil {
				return err
			}
			return m.Steps(n)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down N",
	Short: "Откатить N последних миграций",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseSteps(args[0])
		if err != nil {
			return err
		}
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			return m.Steps(-n)
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Установить версию без применения миграций (снимает флаг dirty)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			log.Printf("Forcing migration version to %d...", version)
			return m.Force(version)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать текущую версию схемы",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Путь к config.yaml (по умолчанию CONFIG_PATH или config/config.yaml)")
	rootCmd.PersistentFlags().String("path", "", "Папка с миграциями (переопределяет database.migrations_path)")

	rootCmd.AddCommand(upCmd, downCmd, forceCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

func parseSteps(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", s)
	}
	return n, nil
}

// resolveConfigPath: флаг --config, затем CONFIG_PATH, затем путь по умолчанию
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}

// withMigrator открывает соединение через lib/pq и выполняет действие.
// ErrNoChange не считается ошибкой.
func withMigrator(cmd *cobra.Command, action func(m *migrate.Migrate) error) error {
	cfg, err := config.LoadDatabase(resolveConfigPath(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	migrationsPath := cfg.MigrationsPath
	if p, _ := cmd.Flags().GetString("path"); p != "" {
		migrationsPath = p
	}

	db, err := sql.Open("postgres", cfg.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, migrationsPath)
	if err != nil {
		return err
	}

	if err := action(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Изменений в миграциях не найдено.")
			return nil
		}
		return err
	}

	log.Println("Готово.")
	return nil
}
