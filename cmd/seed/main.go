package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/client"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/seeder"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"
)

const envFile string = ".env"

var (
	Version   string
	GitCommit string
	GitBranch string
)

func init() {
	if Version = data.Version; Version == "" {
		Version = "<no_version_provided>"
	}
	if GitCommit = data.GitCommit; GitCommit == "" {
		GitCommit = "<no_git_commit>"
	}
	if GitBranch = data.GitBranch; GitBranch == "" {
		GitBranch = "<no_git_branch>"
	}
}

func main() {
	args := os.Args[1:]
	envs, err := internal.Envs(os.Environ(), envFile)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	if err := Main(args, envs, osSignal); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func Main(args []string, envs map[string]string, osSignal chan os.Signal) error {
	var wg sync.WaitGroup

	//create context
	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer func() {
		cancel()
		wg.Wait()
	}()

	// create logger
	logger := utilities.NewLogger(os.Stderr)
	if err := logger.Configure(envs); err != nil {
		return err
	}

	//print version info
	logger.Info(ctx, "seeder: go-employee-seeder v%s (%s) built from: %s",
		Version, GitCommit, GitBranch)

	//create client, configure and open
	client := client.NewClient(logger)
	if err := client.Configure(envs); err != nil {
		return err
	}
	if err := client.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing client: %s", err)
		}
	}()

	//create seeder and run it, only an unreachable backend is an error
	seeder := seeder.NewSeeder(client, logger, os.Stdout)
	if err := seeder.Configure(envs); err != nil {
		return err
	}
	summary, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "seeding timers: %v", summary.Timers.Averages)
	return nil
}
