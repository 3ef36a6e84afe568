package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/logic"
	"github.com/antonio-alexander/go-employee-seeder/internal/service"
	"github.com/antonio-alexander/go-employee-seeder/internal/store"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/antonio-alexander/go-stash/memory"
	"github.com/antonio-alexander/go-stash/redis"

	"github.com/pkg/errors"
)

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
	envs, err := internal.Envs(os.Environ(), ".env")
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

// createStore defaults to memory when STORE_TYPE isn't set
func createStore(envs map[string]string, parameters ...any) (interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	store.Store
}, error) {
	switch storeType := envs["STORE_TYPE"]; storeType {
	default:
		return nil, errors.Errorf("unsupported store type: %s", storeType)
	case "", "memory":
		return store.NewMemory(parameters...), nil
	case "redis":
		return store.NewRedis(parameters...), nil
	case "mysql":
		return store.NewMySql(parameters...), nil
	case "stash-memory":
		stash := memory.New()
		if err := stash.Configure(envs); err != nil {
			return nil, err
		}
		parameters = append(parameters, stash)
		return store.NewStash(parameters...), nil
	case "stash-redis":
		stash := redis.New()
		if err := stash.Configure(envs); err != nil {
			return nil, err
		}
		parameters = append(parameters, stash)
		return store.NewStash(parameters...), nil
	}
}

func Main(args []string, envs map[string]string, osSignal chan os.Signal) error {
	var wg sync.WaitGroup

	//create context
	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer cancel()

	// create utilities
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)
	timers := utilities.NewTimers()

	//print version info
	logger.Info(ctx, "backend: go-employee-seeder v%s (%s) built from: %s",
		Version, GitCommit, GitBranch)

	//create store, configure and open
	store, err := createStore(envs, logger)
	if err != nil {
		return err
	}
	if err := store.Configure(envs); err != nil {
		return err
	}
	if err := store.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing store: %s", err)
		}
	}()

	//create logic, configure and open
	logic := logic.NewLogic(store, logger)
	if err := logic.Configure(envs); err != nil {
		return err
	}
	if err := logic.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := logic.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing logic: %s", err)
		}
	}()

	//create service, configure and open
	service := service.NewService(logic, logger, timers)
	if err := service.Configure(envs); err != nil {
		return err
	}
	if err := service.Open(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	wg.Wait()
	if err := service.Close(context.Background()); err != nil {
		logger.Error(context.Background(), "error while closing service: %s", err)
	}
	return nil
}
