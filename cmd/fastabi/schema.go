package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xsequence/fastabi/ethartifact"
	"github.com/0xsequence/fastabi/ethcontract"
	"github.com/goware/logger"
	"github.com/spf13/cobra"
)

// addSchemaFlags registers the flags every command uses to locate the
// contract interface.
func addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().String("abi", "", "path to a json abi file")
	cmd.Flags().String("artifact", "", "path to a truffle, hardhat or foundry artifact file, or a directory of artifacts")
	cmd.Flags().String("contract", "", "contract name, required when --artifact is a directory")
	cmd.Flags().BoolP("verbose", "v", false, "log schema loading to stderr")
}

func loadCoder(cmd *cobra.Command) (*ethcontract.Coder, error) {
	fAbi, err := cmd.Flags().GetString("abi")
	if err != nil {
		return nil, err
	}
	fArtifact, err := cmd.Flags().GetString("artifact")
	if err != nil {
		return nil, err
	}
	fContract, err := cmd.Flags().GetString("contract")
	if err != nil {
		return nil, err
	}
	fVerbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	if (fAbi == "") == (fArtifact == "") {
		return nil, errors.New("error: please pass either --abi or --artifact")
	}

	slogHandler := slog.DiscardHandler
	registryLog := logger.Nop()
	if fVerbose {
		slogHandler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		registryLog = &slogLogger{log: slog.New(slogHandler)}
	}

	if fAbi != "" {
		data, err := os.ReadFile(fAbi)
		if err != nil {
			return nil, err
		}
		return ethcontract.NewCoder(string(data), ethcontract.WithLogger(slog.New(slogHandler)))
	}

	info, err := os.Stat(fArtifact)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		artifact, err := ethartifact.ParseArtifactFile(fArtifact)
		if err != nil {
			return nil, err
		}
		return artifact.Coder, nil
	}

	if fContract == "" {
		return nil, errors.New("error: please pass --contract when --artifact is a directory")
	}
	registry := ethartifact.NewContractRegistry()
	registry.SetLogger(registryLog)
	if _, err := registry.LoadDir(fArtifact); err != nil {
		return nil, err
	}
	artifact, ok := registry.Get(fContract)
	if !ok {
		return nil, fmt.Errorf("error: contract %s not found in %s, have %v", fContract, fArtifact, registry.ContractNames())
	}
	return artifact.Coder, nil
}


// slogLogger adapts a slog.Logger to logger.Logger, whose own adapter always
// writes to stdout.
type slogLogger struct {
	log *slog.Logger
}

var _ logger.Logger = &slogLogger{}

func (l *slogLogger) With(args ...interface{}) logger.Logger {
	return &slogLogger{log: l.log.With(args...)}
}

func (l *slogLogger) Debug(v ...interface{}) { l.log.Debug(fmt.Sprint(v...)) }

func (l *slogLogger) Debugf(format string, v ...interface{}) { l.log.Debug(fmt.Sprintf(format, v...)) }

func (l *slogLogger) Info(v ...interface{}) { l.log.Info(fmt.Sprint(v...)) }

func (l *slogLogger) Infof(format string, v ...interface{}) { l.log.Info(fmt.Sprintf(format, v...)) }

func (l *slogLogger) Warn(v ...interface{}) { l.log.Warn(fmt.Sprint(v...)) }

func (l *slogLogger) Warnf(format string, v ...interface{}) { l.log.Warn(fmt.Sprintf(format, v...)) }

func (l *slogLogger) Error(v ...interface{}) { l.log.Error(fmt.Sprint(v...)) }

func (l *slogLogger) Errorf(format string, v ...interface{}) { l.log.Error(fmt.Sprintf(format, v...)) }

func (l *slogLogger) Fatal(v ...interface{}) {
	l.log.Error(fmt.Sprint(v...))
	os.Exit(1)
}

func (l *slogLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
