package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"

	"github.com/therewillbecode/Fae-1/cmd/faectl/demo"
	"github.com/therewillbecode/Fae-1/config"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/engine"
	"github.com/therewillbecode/Fae-1/log"
	"github.com/therewillbecode/Fae-1/persist"
	"github.com/therewillbecode/Fae-1/render"
	"github.com/therewillbecode/Fae-1/types"
)

// fixtureFile is the small descriptor faectl run reads: which demo.Fixture
// to build, which trust policy to run it under, and where to record its
// audit entry.
type fixtureFile struct {
	Demo        string             `toml:"demo"`
	TrustPolicy config.TrustPolicy `toml:"trust_policy"`
	AuditLog    string             `toml:"audit_log"`
}

var runVerbose bool

var runCmd = &cobra.Command{
	Use:   "run <fixture.toml>",
	Short: "run a demo transaction fixture and print its rendered entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFixture(args[0])
	},
}

func init() {
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "log every orchestration step to stderr")
}

func runFixture(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("run: reading %s: %w", path, err)
	}
	var ff fixtureFile
	if err := toml.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("run: parsing %s: %w", path, err)
	}
	if ff.Demo == "" {
		ff.Demo = "identity"
	}
	cfg := config.Default()
	if ff.TrustPolicy != "" {
		cfg.Trust.Policy = ff.TrustPolicy
	}

	fx, err := demo.Build(ff.Demo)
	if err != nil {
		return err
	}

	// No fixture-supplied TransactionID exists yet (the host front-end that
	// would mint one is out of scope), so mint a fresh identifier for this
	// run, widened from a uuid to a full Digest.
	id := uuid.New()
	txID := types.TransactionID(crypto.HashBytes(id[:]))

	level := log.LevelNormal
	if runVerbose {
		level = log.LevelVerbose
	}
	logger := log.New(os.Stderr, level, "faectl: ")
	defer logger.Close()

	result, err := engine.RunTransaction(fx.Storage, fx.Registry, txID, fx.Signer, fx.IsReward, fx.Inputs, fx.Decl, nil, cfg, logger)
	entry, getErr := fx.Storage.Entry(txID)
	if getErr != nil {
		return fmt.Errorf("run: transaction did not install an entry: %w", getErr)
	}
	rendered := render.ShowTransaction(txID, entry)
	fmt.Println(rendered)

	if ff.AuditLog != "" {
		auditLog, aerr := persist.OpenAuditLog(persist.Metadata{Header: "Fae Audit Log", Version: "1.0"}, ff.AuditLog)
		if aerr != nil {
			return fmt.Errorf("run: opening audit log: %w", aerr)
		}
		defer auditLog.Close()
		if aerr := auditLog.Record(txID, rendered); aerr != nil {
			return fmt.Errorf("run: recording audit entry: %w", aerr)
		}
	}

	if err != nil {
		return fmt.Errorf("run: transaction failed: %w", err)
	}
	fmt.Println("result:", result)
	return nil
}
