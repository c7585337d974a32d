// cmd/booksctl/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/princevibe/books-backend/internal/config"
	"github.com/princevibe/books-backend/internal/gateway"
	"github.com/princevibe/books-backend/internal/repository"
	"github.com/princevibe/books-backend/internal/repository/localstore"
	"github.com/princevibe/books-backend/internal/repository/mongodb"
	"github.com/princevibe/books-backend/internal/repository/postgres"
	"github.com/princevibe/books-backend/internal/service"
	"github.com/princevibe/books-backend/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Postgres connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Local store data directory",
		Value:   "./data/local",
		EnvVars: []string{"LOCAL_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "booksctl",
		Usage: "Operational tooling for the bookkeeping backend",
		Commands: []*cli.Command{
			{
				Name:  "init-db",
				Usage: "Create the Postgres ledger tables",
				Flags: []cli.Flag{
					newDBURLFlag(),
				},
				Action: runInitDB,
			},
			{
				Name:  "seed",
				Usage: "Write a demo ledger into the local store",
				Flags: []cli.Flag{
					newDataDirFlag(),
				},
				Action: runSeed,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the local store into the configured remote store",
				Action: runMigrate,
			},
			{
				Name:  "backup",
				Usage: "Upload a local store snapshot to object storage",
				Flags: []cli.Flag{
					newDataDirFlag(),
				},
				Action: runBackup,
			},
			{
				Name:   "backups",
				Usage:  "List snapshot backups in object storage",
				Action: runListBackups,
			},
			{
				Name:  "restore",
				Usage: "Replace the local store with a snapshot backup",
				Flags: []cli.Flag{
					newDataDirFlag(),
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Object key of the backup to restore",
						Required: true,
					},
				},
				Action: runRestore,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runInitDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.EnsureSchema(c.Context, db); err != nil {
		return err
	}
	log.Println("ledger tables ready")
	return nil
}

func runMigrate(c *cli.Context) error {
	cfg := config.Load()
	probeTimeout := time.Duration(cfg.Remote.ProbeTimeoutSeconds) * time.Second

	local, err := localstore.New(cfg.Local.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	remote, err := newRemoteStore(c, cfg, probeTimeout)
	if err != nil {
		return err
	}

	// Local-backed init on purpose: a healthy remote must not win the
	// backing here, or the local data would be stranded.
	gw := gateway.New(remote, local, probeTimeout)
	if err := gw.InitLocal(c.Context); err != nil {
		return fmt.Errorf("gateway init failed: %w", err)
	}

	snap, err := gw.Snapshot()
	if err != nil {
		return err
	}
	if snap.Empty() {
		log.Println("local store is empty, nothing to migrate")
		return nil
	}

	if err := gw.TriggerMigration(c.Context); err != nil {
		return err
	}
	log.Println("migration complete")
	return nil
}

func runBackup(c *cli.Context) error {
	local, err := localstore.New(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	client, err := newBackupStorage(config.Load())
	if err != nil {
		return err
	}

	key, err := service.NewBackupService(local, client).Backup(c.Context, time.Now())
	if err != nil {
		return err
	}
	log.Printf("backup uploaded as %s\n", key)
	return nil
}

func runListBackups(c *cli.Context) error {
	client, err := newBackupStorage(config.Load())
	if err != nil {
		return err
	}

	objects, err := service.NewBackupService(nil, client).List(c.Context)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		log.Println("no backups found")
		return nil
	}
	for _, obj := range objects {
		log.Printf("%s\t%d bytes\n", obj.Key, obj.Size)
	}
	return nil
}

func runRestore(c *cli.Context) error {
	local, err := localstore.New(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	client, err := newBackupStorage(config.Load())
	if err != nil {
		return err
	}

	key := c.String("key")
	if err := service.NewBackupService(local, client).Restore(c.Context, key); err != nil {
		return err
	}
	log.Printf("restored %s into the local store\n", key)
	return nil
}

func newBackupStorage(cfg *config.Config) (*storage.MinioClient, error) {
	return storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.Backup.Endpoint,
		AccessKey: cfg.Backup.AccessKey,
		SecretKey: cfg.Backup.SecretKey,
		Bucket:    cfg.Backup.Bucket,
		UseSSL:    cfg.Backup.UseSSL,
	})
}

func newRemoteStore(c *cli.Context, cfg *config.Config, probeTimeout time.Duration) (repository.Books, error) {
	switch cfg.Remote.Driver {
	case "mongo":
		return mongodb.NewBooksRepository(c.Context, cfg.Remote.Mongo.URI, cfg.Remote.Mongo.DBName)
	case "postgres":
		db, err := postgres.NewDB(&cfg.Remote.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewBooksRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.Remote.Driver)
	}
}
