package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/config"
	"github.com/wakala/banksync/internal/currency"
	"github.com/wakala/banksync/internal/ingestion"
	"github.com/wakala/banksync/internal/logger"
	"github.com/wakala/banksync/internal/reconciliation"
	"github.com/wakala/banksync/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		startupLog := logger.New("info")
		startupLog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sync":
		runSync(cfg, log)
	case "inspect":
		runInspect(log)
	case "institutions":
		runInstitutions()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Bank Sync CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  banksync <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  sync          Fetch, reconcile and store account snapshots")
	fmt.Println("  inspect       Reconcile a snapshot file and print the result")
	fmt.Println("  institutions  List institution adapters")
	fmt.Println("  help          Show this help message")
	fmt.Println("\nRun 'banksync <command> -h' for more information on a command.")
}

func runSync(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	accounts := fs.String("accounts", "", "Comma-separated account ids (default: every account in the source)")
	dbPath := fs.String("db", cfg.DBPath, "SQLite database path")
	dir := fs.String("dir", cfg.SnapshotDir, "Snapshot directory, used when no bucket is configured")
	workers := fs.Int("workers", cfg.SyncWorkers, "Accounts synced concurrently")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	db, err := repository.InitDB(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init DB")
	}
	defer db.Close()

	source, closeSource, err := ingestion.Open(ctx, cfg.SnapshotBucket, cfg.SnapshotPrefix, *dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot source")
	}
	defer closeSource()

	svc := reconciliation.NewService(source, bank.DefaultRegistry(), repository.NewStore(db), log, *workers)

	var outcomes []reconciliation.Outcome
	if ids := splitIDs(*accounts); len(ids) > 0 {
		outcomes = svc.SyncAccounts(ctx, ids)
	} else {
		outcomes, err = svc.SyncAll(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list accounts")
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tADAPTER\tSTATUS\tBOOKED\tPENDING\tNEW\tSTARTING BALANCE")
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(tw, "%s\t-\tfailed: %v\t\t\t\t\n", o.AccountID, o.Err)
			continue
		}
		run := o.Result.Run
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s %s\n",
			o.AccountID, run.Adapter, run.Status, run.BookedCount, run.PendingCount,
			run.TransactionsNew, currency.FromMinor(run.StartingBalance, run.Currency), run.Currency)
	}
	tw.Flush()

	if failed > 0 {
		os.Exit(1)
	}
}

func runInspect(log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	file := fs.String("file", "", "Path to a snapshot JSON document")
	institution := fs.String("institution", "", "Override the institution id used to pick the adapter")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read snapshot")
	}
	snap, err := ingestion.DecodeSnapshot(data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode snapshot")
	}
	if *institution != "" {
		snap.Account.InstitutionID = *institution
	}

	adapter := bank.DefaultRegistry().Resolve(snap.Account.InstitutionID)
	res := reconciliation.Reconcile(adapter, snap)

	fmt.Println("\n=== Account ===")
	fmt.Printf("ID:          %s\n", res.Account.AccountID)
	fmt.Printf("Institution: %s\n", res.Account.InstitutionID)
	fmt.Printf("Adapter:     %s\n", adapter.Name())
	fmt.Printf("IBAN:        %s\n", res.Account.IBAN)
	fmt.Printf("Name:        %s\n", res.Account.Name)
	fmt.Printf("Starting:    %s %s\n", currency.FromMinor(res.StartingBalance, res.Run.Currency), res.Run.Currency)

	fmt.Printf("\n=== Transactions (%d booked, %d pending, %d dropped) ===\n",
		len(res.Booked), len(res.Pending), res.Run.DroppedCount)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tSTATE\tPAYEE\tNOTES")
	for _, tx := range res.All {
		state := "booked"
		if !tx.Booked {
			state = "pending"
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
			tx.Date, currency.FromMinor(tx.Amount, tx.Currency), tx.Currency, state, tx.PayeeName, tx.Notes)
	}
	tw.Flush()

	if len(res.Discrepancies) > 0 {
		fmt.Println("\n=== Discrepancies ===")
		for _, d := range res.Discrepancies {
			fmt.Printf("[%s] %s: %s\n", d.Severity, d.Type, d.Description)
		}
	}
}

func runInstitutions() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADAPTER\tINSTITUTION IDS")
	for _, v := range bank.DefaultRegistry().Variants() {
		fmt.Fprintf(tw, "%s\t%s\n", v.Name(), strings.Join(v.InstitutionIDs, ", "))
	}
	fmt.Fprintln(tw, "default\t(any other institution)")
	tw.Flush()
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
