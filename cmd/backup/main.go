package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/otterc137/GuessAnime/internal/config"
	"github.com/otterc137/GuessAnime/internal/database"
	"github.com/otterc137/GuessAnime/internal/repository"
	"github.com/otterc137/GuessAnime/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing entries before import (WARNING: destructive)")

	digestCmd := flag.NewFlagSet("digest", flag.ExitOnError)
	digestTo := digestCmd.String("to", "", "Recipient email (default: DIGEST_TO_EMAIL)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewLeaderboardRepository(db)
	backupService := service.NewBackupService(repo)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, db, *importInput, *importClear)

	case "digest":
		digestCmd.Parse(os.Args[2:])
		handleDigest(cfg, repo, *digestTo)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting leaderboard to: %s", outputPath)
	if err := backupService.Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
}

func handleImport(backupService *service.BackupService, db *database.DB, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing leaderboard entries. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}

		log.Println("Clearing leaderboard...")
		if _, err := db.Exec("DELETE FROM leaderboard"); err != nil {
			log.Fatalf("Failed to clear leaderboard: %v", err)
		}
	}

	log.Printf("Importing leaderboard from: %s", inputPath)
	if err := backupService.Import(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete!")
}

func handleDigest(cfg *config.Config, repo *repository.LeaderboardRepository, to string) {
	if to == "" {
		to = cfg.DigestToEmail
	}
	if to == "" {
		log.Fatal("No recipient: pass -to or set DIGEST_TO_EMAIL")
	}

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Fatal("Email service is disabled: set SES_FROM_EMAIL")
	}

	weekStart := service.WeekStart(time.Now().UTC())
	entries, err := repo.TopSince(weekStart, 10)
	if err != nil {
		log.Fatalf("Failed to load weekly leaderboard: %v", err)
	}

	log.Printf("Sending weekly digest to %s (%d entries)", to, len(entries))
	if err := emailService.SendWeeklyDigest(context.Background(), to, weekStart, entries); err != nil {
		log.Fatalf("Failed to send digest: %v", err)
	}
	log.Println("Digest sent!")
}

func printUsage() {
	fmt.Println("GuessAnime Leaderboard Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export leaderboard to JSON file")
	fmt.Println("  backup import [options]    Import leaderboard from JSON file")
	fmt.Println("  backup digest [options]    Email this week's top 10 via Amazon SES")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing entries before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Digest Options:")
	fmt.Println("  -to <email>       Recipient email (default: DIGEST_TO_EMAIL)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./guessanime.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  AWS_REGION       AWS region for SES (default: us-east-1)")
	fmt.Println("  SES_FROM_EMAIL   Verified SES sender address")
	fmt.Println("  DIGEST_TO_EMAIL  Default digest recipient")
}
