package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/imamik/jiraseed/internal/config"
	"github.com/imamik/jiraseed/internal/orchestration"
	"github.com/imamik/jiraseed/internal/platform/jira"
	"github.com/imamik/jiraseed/internal/provisioning"
)

// ErrResetDeclined is returned when the user answers no to the reset prompt.
var ErrResetDeclined = errors.New("reset declined")

// PopulateOptions carries the populate command's flags.
type PopulateOptions struct {
	Viper          *viper.Viper
	PropertiesFile string
	DatasetPath    string
	// IssueCount overrides the dataset's issue count when >= 0.
	IssueCount  int
	Yes         bool
	MetricsFile string
	LogFormat   string
	Verbosity   int
}

// Factory function variables for populate - can be replaced in tests.
var (
	// newGateway creates the Jira REST gateway for conn.
	newGateway = func(conn *config.Connection) (jira.Gateway, error) {
		client, err := jira.NewRESTClient(conn.URL, conn.Username, conn.Password,
			jira.WithTimeouts(config.LoadTimeouts()))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// newRunID returns the id attached to every log line of a run.
	newRunID = func() string { return uuid.NewString() }

	// confirmReset asks whether existing projects may be deleted.
	confirmReset = promptReset

	// datasetYAML returns the built-in dataset document.
	datasetYAML = config.DefaultDatasetYAML

	// isInteractive reports whether a prompt can be shown.
	isInteractive = isInteractiveTTY

	logOutput     io.Writer = os.Stderr
	summaryOutput io.Writer = os.Stdout
)

// Populate handles the populate command.
//
// It resolves the connection settings, loads the dataset and runs the
// seeding pipeline. A summary is printed even when the run fails part way,
// so the caller can see what was already created.
func Populate(ctx context.Context, opts PopulateOptions) error {
	v := opts.Viper
	if v == nil {
		v = config.NewViper()
	}
	conn, err := config.LoadConnection(v, opts.PropertiesFile)
	if err != nil {
		return err
	}

	ds, err := loadDataset(opts.DatasetPath, opts.IssueCount)
	if err != nil {
		return err
	}

	policy := provisioning.PolicySkip
	if conn.DeleteProjects {
		policy = provisioning.PolicyReset
		if err := ensureResetConfirmed(ctx, ds, opts.Yes); err != nil {
			return err
		}
	}

	logger, err := provisioning.NewLogger(logOutput, opts.LogFormat, opts.Verbosity)
	if err != nil {
		return err
	}
	observer := provisioning.NewLogrObserver(logger).WithFields(map[string]string{
		"run": newRunID(),
	})
	observer.Printf("Populating %s", conn.Redacted())

	gateway, err := newGateway(conn)
	if err != nil {
		return err
	}
	if c, ok := gateway.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	metrics := provisioning.NewMetrics()
	reconciler := orchestration.NewReconciler(gateway, ds,
		orchestration.WithPolicy(policy),
		orchestration.WithObserver(observer),
		orchestration.WithMetrics(metrics),
	)

	result, runErr := reconciler.Reconcile(ctx)
	if result != nil {
		fmt.Fprint(summaryOutput, renderRunSummary(conn.URL, result, runErr))
	}

	if opts.MetricsFile != "" {
		if err := metrics.WriteToTextfile(opts.MetricsFile); err != nil {
			observer.Printf("Warning: failed to write metrics file: %v", err)
		}
	}

	if jira.IsUnauthorized(runErr) {
		return fmt.Errorf("jira rejected the credentials of user %s: %w", conn.Username, runErr)
	}
	return runErr
}

// loadDataset returns the dataset at path, or the built-in one when path is
// empty, with issueCount applied when it is not negative.
func loadDataset(path string, issueCount int) (*config.Dataset, error) {
	var (
		ds  *config.Dataset
		err error
	)
	if path == "" {
		ds, err = config.DefaultDataset()
	} else {
		ds, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if issueCount >= 0 {
		ds.IssueCount = issueCount
		if err := ds.Validate(); err != nil {
			return nil, fmt.Errorf("dataset validation failed: %w", err)
		}
	}
	return ds, nil
}

func ensureResetConfirmed(ctx context.Context, ds *config.Dataset, yes bool) error {
	if yes || !isInteractive() {
		return nil
	}
	keys := make([]string, 0, len(ds.Projects))
	for _, p := range ds.Projects {
		keys = append(keys, p.Key)
	}
	ok, err := confirmReset(ctx, keys)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return ErrResetDeclined
	}
	return nil
}

func promptReset(ctx context.Context, projectKeys []string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete and recreate existing projects?").
				Description("Projects " + strings.Join(projectKeys, ", ") + " and all of their issues will be deleted if they exist.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).RunWithContext(ctx)
	return confirmed, err
}
