package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"word-explainer/internal/client"
	"word-explainer/internal/config"
	"word-explainer/internal/explainer"
	"word-explainer/internal/llm"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// annotationStdoutReserved marks commands that speak a protocol on stdout.
const annotationStdoutReserved = "stdout-reserved"

var (
	configFile string
	envFile    string
	apiKey     string
	backend    string
	model      string

	cfg        *config.Config
	logCleanup = func() {}

	newLogger = setupLogger
)

func main() {
	if err := execute(context.Background(), newRootCommand()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the command and closes the log outputs whether or not it failed.
func execute(ctx context.Context, rootCommand *cobra.Command) error {
	defer func() {
		logCleanup()
		logCleanup = func() {}
	}()
	return rootCommand.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "explainer",
		Short:         "Explain vocabulary words with a definition, a mnemonic and an example",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded

			_, reserved := cmd.Annotations[annotationStdoutReserved]
			logger, cleanup := newLogger(cfg, reserved)
			slog.SetDefault(logger)
			logCleanup = cleanup
			return nil
		},
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (default $CONFIG_PATH or config.yaml)")
	flags.StringVar(&envFile, "env-file", "", "env file path (default $ENV_FILE or .env)")
	flags.StringVar(&apiKey, "api-key", "", "API key for the completion backend, overrides the environment")
	flags.StringVar(&backend, "backend", "", "completion backend: openai, langchain or gemini")
	flags.StringVar(&model, "model", "", "model name, defaults per backend")

	rootCommand.AddCommand(
		newExplainCommand(),
		newServeCommand(),
		newMCPCommand(),
	)
	return rootCommand
}

// loadConfig loads the configuration and applies the command line flags on top.
func loadConfig() (*config.Config, error) {
	loaded, err := config.LoadConfigWithOverrides(configFile, envFile, config.Overrides{
		Backend: backend,
		Model:   model,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}

	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// newExplainer builds the completion client and the explainer from cfg.
func newExplainer(ctx context.Context) (*explainer.Explainer, llm.Client, error) {
	llmClient, err := client.NewLLM(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var prompts *explainer.PromptBuilder
	jsonMode := cfg.LLM.ResponseFormat == config.ResponseFormatJSON
	if cfg.Prompts.Dir != "" {
		prompts = explainer.NewPromptBuilder(cfg.Prompts.Dir, jsonMode)
	}

	exp := explainer.New(llmClient, explainer.Options{
		Prompts:      prompts,
		JSONMode:     jsonMode,
		MaxRetries:   cfg.LLM.MaxRetries,
		RetryBackoff: cfg.LLM.RetryBackoff,
	})
	slog.Debug("explainer initialized", "backend", llmClient.Name(), "response_format", cfg.LLM.ResponseFormat)
	return exp, llmClient, nil
}
