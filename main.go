////////////////////////////////////////////////////////////////////////////////
// Donations: donor ledger and top ten leaderboard on a local runtime
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mr-tron/base58"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"donations/contract"
	"donations/internal/logger"
	"donations/internal/pgstore"
	"donations/internal/scenario"
	"donations/sdk"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	verboseFlag := flag.Bool("verbose", false, "enable verbose (debug) logging")
	envFileFlag := flag.String("env-file", ".env", "dotenv file with overrides, ignored when missing")

	// Session
	scriptFlag := flag.String("script", "", "JSON-lines script to run instead of the demo session (or set DONATIONS_SCRIPT env var)")
	showKeysFlag := flag.Bool("show-keys", false, "print the addresses and secret keys of the wallets the session names")

	// Storage
	stateFileFlag := flag.String("state-file", "", "JSON snapshot loaded before and saved after the run (or set DONATIONS_STATE_FILE env var)")
	postgresDSNFlag := flag.String("postgres-dsn", "", "PostgreSQL connection string for account storage (or set DONATIONS_POSTGRES_DSN env var)")
	postgresMigrateFlag := flag.Bool("postgres-migrate", false, "Run PostgreSQL migrations before the session")

	// Metrics
	metricsAddrFlag := flag.String("metrics-addr", "", "Address to serve prometheus metrics on, e.g. :9090 (or set DONATIONS_METRICS_ADDR env var)")

	flag.Parse()

	log := logger.New(*verboseFlag)

	if err := godotenv.Load(*envFileFlag); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", *envFileFlag, err)
	}

	// Override flags with environment variables if set
	if envScript := os.Getenv("DONATIONS_SCRIPT"); envScript != "" {
		*scriptFlag = envScript
	}
	if envStateFile := os.Getenv("DONATIONS_STATE_FILE"); envStateFile != "" {
		*stateFileFlag = envStateFile
	}
	if envPostgresDSN := os.Getenv("DONATIONS_POSTGRES_DSN"); envPostgresDSN != "" {
		*postgresDSNFlag = envPostgresDSN
	}
	if envMetricsAddr := os.Getenv("DONATIONS_METRICS_ADDR"); envMetricsAddr != "" {
		*metricsAddrFlag = envMetricsAddr
	}

	if *stateFileFlag != "" && *postgresDSNFlag != "" {
		return fmt.Errorf("--state-file and --postgres-dsn are mutually exclusive")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ops := scenario.Demo()
	if *scriptFlag != "" {
		f, err := os.Open(*scriptFlag)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		ops, err = scenario.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", *scriptFlag, err)
		}
	}

	if *showKeysFlag {
		printKeys(ops)
	}

	// Start metrics server
	if *metricsAddrFlag != "" {
		go func() {
			listener, err := net.Listen("tcp", *metricsAddrFlag)
			if err != nil {
				log.Error("failed to start prometheus metrics server listener", "error", err)
				return
			}
			log.Info("prometheus metrics server listening", "address", listener.Addr().String())
			http.Handle("/metrics", promhttp.Handler())
			if err := http.Serve(listener, nil); err != nil {
				log.Error("failed to start prometheus metrics server", "error", err)
			}
		}()
	}

	var (
		store    sdk.Store
		memStore *sdk.MemStore
		pgStore  *pgstore.Store
	)
	switch {
	case *postgresDSNFlag != "":
		if *postgresMigrateFlag {
			if err := pgstore.Migrate(log, *postgresDSNFlag); err != nil {
				return err
			}
		}
		pool, err := pgstore.Connect(ctx, *postgresDSNFlag)
		if err != nil {
			return err
		}
		defer pool.Close()
		pg, err := pgstore.New(pgstore.Config{Logger: log, Pool: pool})
		if err != nil {
			return err
		}
		store, pgStore = pg, pg
		log.Info("using postgres account store")
	default:
		memStore = sdk.NewMemStore()
		if *stateFileFlag != "" {
			if err := memStore.LoadFromFile(*stateFileFlag); err != nil {
				return fmt.Errorf("failed to load state: %w", err)
			}
			log.Info("loaded state", "file", *stateFileFlag, "accounts", memStore.Len())
		}
		store = memStore
	}

	rt, err := sdk.NewRuntime(sdk.RuntimeConfig{Logger: log, Store: store})
	if err != nil {
		return fmt.Errorf("failed to create runtime: %w", err)
	}
	rt.RegisterProgram(contract.ProgramID, contract.Process)

	runner, err := scenario.NewRunner(scenario.Config{Logger: log, Runtime: rt, ProgramID: contract.ProgramID})
	if err != nil {
		return err
	}

	results, runErr := runner.Run(ctx, ops)
	printEvents(rt, results)

	if memStore != nil && *stateFileFlag != "" {
		if err := memStore.SaveToFile(*stateFileFlag); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		log.Info("saved state", "file", *stateFileFlag, "accounts", memStore.Len())
	}
	if runErr != nil {
		return runErr
	}

	if err := printLeaderboard(ctx, log, runner); err != nil {
		return err
	}
	fmt.Printf("slot %d\n", rt.Slot())
	if pgStore != nil {
		n, err := pgStore.Count(ctx, contract.ProgramID)
		if err != nil {
			return err
		}
		fmt.Printf("program accounts in postgres %d\n", n)
	}
	return nil
}

func printKeys(ops []scenario.Op) {
	seen := make(map[string]bool)
	for _, op := range ops {
		for _, name := range []string{op.Wallet, op.Target} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			key := scenario.Key(name)
			fmt.Printf("%-12s %s  secret=%s\n", name, key.PublicKey(), base58.Encode(key))
		}
	}
}

func printEvents(rt *sdk.Runtime, results []scenario.Result) {
	for _, res := range results {
		if res.Err != nil {
			printRejection(rt, res)
			continue
		}
		if res.Events == nil {
			continue
		}
		for _, ev := range res.Events.Donations {
			fmt.Printf("donation  #%d %-44s %s (lifetime %s, new=%t)\n",
				ev.DonorID, ev.DonorWallet, sdk.Lamports(ev.AmountLamports), sdk.Lamports(ev.LifetimeAmountAfter), ev.CreatedNew)
		}
		for _, ev := range res.Events.ProfileUpdates {
			fmt.Printf("profile   #%d %s\n", ev.DonorID, ev.DonorWallet)
		}
	}
}

// printRejection shows the failing op with the last program log line of its receipt.
func printRejection(rt *sdk.Runtime, res scenario.Result) {
	fmt.Printf("rejected  op %d %s by %s: %v\n", res.Index, res.Op.Op, res.Op.Wallet, res.Err)
	receipt, ok := rt.Receipt(res.Signature)
	if !ok || len(receipt.Logs) == 0 {
		return
	}
	fmt.Printf("          %s\n", receipt.Logs[len(receipt.Logs)-1])
}

func printLeaderboard(ctx context.Context, log *slog.Logger, runner *scenario.Runner) error {
	reader := runner.Reader()
	cfg, err := reader.Config(ctx)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	board, err := reader.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to read leaderboard: %w", err)
	}

	fmt.Println()
	fmt.Printf("treasury %s  total %s  donors %d  paused %t\n",
		cfg.Treasury, sdk.Lamports(cfg.TotalDonated), cfg.NextDonorID-1, cfg.Paused)
	for _, row := range board {
		fmt.Printf("%2d. #%-4d %-32s %s\n", row.Rank, row.DonorID, row.Nickname, sdk.Lamports(row.LifetimeAmount))
	}
	log.Debug("leaderboard printed", "entries", len(board))
	return nil
}
