package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/client"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"

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

func printIndent(item any) error {
	bytes, err := json.MarshalIndent(item, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(bytes))
	return nil
}

func Main(args []string, envs map[string]string, osSignal chan (os.Signal)) error {
	fmt.Printf("client: go-employee-seeder v%s (%s) built from: %s\n",
		Version, GitCommit, GitBranch)

	//create client
	client := client.NewClient()
	if err := client.Configure(envs); err != nil {
		return err
	}
	if err := client.Open(context.Background()); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			fmt.Printf("error while closing client: %s\n", err)
		}
	}()

	// execute command
	ctx := internal.CtxWithCorrelationId(context.Background(),
		"client_"+internal.GenerateId())
	switch command := envs["COMMAND"]; command {
	default:
		return errors.Errorf("unsupported command: %s", command)
	case "probe":
		statusCode, count, err := client.Probe(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("backend at %s is running (status: %d) with %d employee(s)\n",
			client.Address(), statusCode, count)
	case "employees_read":
		employees, err := client.EmployeesRead(ctx)
		if err != nil {
			return err
		}
		return printIndent(employees)
	case "review_cycles_read":
		reviewCycles, err := client.ReviewCyclesRead(ctx)
		if err != nil {
			return err
		}
		return printIndent(reviewCycles)
	case "goals_read":
		goals, err := client.GoalsRead(ctx)
		if err != nil {
			return err
		}
		return printIndent(goals)
	case "reviews_read":
		reviews, err := client.ReviewsRead(ctx)
		if err != nil {
			return err
		}
		return printIndent(reviews)
	}
	return nil
}
