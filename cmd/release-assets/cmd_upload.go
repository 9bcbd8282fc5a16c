package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ochairo/release-assets/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/release-assets/internal/domain-orchestrators"
	"github.com/ochairo/release-assets/internal/domain/entities"
	"github.com/ochairo/release-assets/internal/domain/interfaces"
	domainGateways "github.com/ochairo/release-assets/internal/domain/interfaces/gateways"
	"github.com/ochairo/release-assets/internal/domain/services"
	"github.com/ochairo/release-assets/internal/external-adapters/actions"
	"github.com/ochairo/release-assets/internal/external-adapters/gpg"
	"github.com/ochairo/release-assets/internal/external-adapters/yaml"
	"github.com/ochairo/release-assets/internal/logging"
)

// uploadOptions holds the flags that are not plain inputs
type uploadOptions struct {
	configPath string
	keyFile    string
}

func (o *uploadOptions) bindFlags(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.String(entities.InputGitHubToken, "", "GitHub token used to upload (falls back to GITHUB_TOKEN)")
	fs.String(entities.InputReleaseURL, "", "Release upload URL, used when the run is not a release event")
	fs.String(entities.InputFile, "", "Single file to upload")
	fs.StringArray(entities.InputFiles, nil, "Newline-delimited list of files to upload (repeatable)")
	fs.String(entities.InputPattern, "", "Glob pattern of files to upload, ** matches directories recursively")
	fs.String(entities.InputGPGPrivateKey, "", "ASCII-armored private key; uploads a .asc signature per asset")
	fs.String(entities.InputGPGPassphrase, "", "Passphrase of the signing key")
	fs.Int(entities.InputConcurrency, entities.DefaultConcurrency, "Number of uploads in flight")
	fs.Duration(entities.InputUploadTimeout, entities.DefaultUploadTimeout, "Timeout of a single upload")
	fs.Duration(entities.InputTimeout, entities.DefaultTimeout, "Deadline of the whole run")

	fs.StringVar(&o.configPath, entities.InputConfig, "", "YAML file providing default inputs")
	fs.StringVar(&o.keyFile, "gpg-private-key-file", "", "File holding the ASCII-armored signing key")
}

// flagSource implements repositories.InputSource over explicitly set flags
type flagSource struct {
	flags *pflag.FlagSet
}

func (s flagSource) Lookup(name string) (string, bool) {
	f := s.flags.Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), "\n"), true
	}
	return f.Value.String(), true
}

func runUpload(cmd *cobra.Command, opts *uploadOptions) error {
	runID := uuid.NewString()
	logger := logging.New(cmd.ErrOrStderr()).With(interfaces.F(logging.RunIDKey, runID))
	action := actions.NewAction(cmd.OutOrStdout())
	runner := actions.NewRunner(action)

	if err := upload(cmd, opts, runID, action, runner, logger); err != nil {
		logger.Error("Upload run failed", interfaces.F(logging.ErrKey, err.Error()))
		runner.SetFailed(err)
		return err
	}
	return nil
}

func upload(
	cmd *cobra.Command,
	opts *uploadOptions,
	runID string,
	action *githubactions.Action,
	runner *actions.Runner,
	logger interfaces.Logger,
) error {
	// Step 1: Inputs
	inputs, err := loadInputs(cmd.Flags(), opts, action, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), inputs.Timeout)
	defer cancel()

	// Step 2: Trigger context
	runCtx, err := actions.LoadRunContext(action)
	if err != nil {
		return err
	}
	logger.Debug("Loaded run context",
		interfaces.F("event", runCtx.EventName),
		interfaces.F("release", runCtx.Release != nil))

	// Step 3: Optional signer
	var signer domainGateways.AssetSigner
	if s, err := newSigner(inputs, opts); err != nil {
		return err
	} else if s != nil {
		logger.Info("Signing assets", interfaces.F("fingerprint", s.Fingerprint()))
		signer = s
	}

	// Step 4: Upload
	orch := orchestrators.NewUploadOrchestrator(
		gateways.NewHTTPGitHubGateway(ctx, inputs.GitHubToken, logger),
		services.NewClassifier(),
		gateways.NewPathExpander(),
		runner,
		logger,
		orchestrators.UploadOrchestratorConfig{
			RunID:         runID,
			Concurrency:   inputs.Concurrency,
			UploadTimeout: inputs.UploadTimeout,
			Signer:        signer,
		},
	)

	report, err := orch.Run(ctx, inputs, runCtx)
	if report != nil && report.URL != "" {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	}
	return err
}

// loadInputs resolves inputs from flags, then INPUT_* variables, then the config file
func loadInputs(flags *pflag.FlagSet, opts *uploadOptions, action *githubactions.Action, logger interfaces.Logger) (*entities.Inputs, error) {
	env := actions.NewEnvSource(action)
	chain := actions.Chain{flagSource{flags: flags}, env}

	configPath := opts.configPath
	if configPath == "" {
		configPath, _ = env.Lookup(entities.InputConfig)
	}
	if configPath != "" {
		src, err := yaml.NewConfigSource(configPath)
		if err != nil {
			return nil, &services.ConfigurationError{Input: entities.InputConfig, Reason: err.Error()}
		}
		logger.Debug("Loaded config file", interfaces.F("path", src.Path()))
		chain = append(chain, src)
	}

	chain = append(chain, actions.MapSource{entities.InputGitHubToken: os.Getenv("GITHUB_TOKEN")})

	return actions.LoadInputs(chain)
}

func newSigner(inputs *entities.Inputs, opts *uploadOptions) (*gpg.Signer, error) {
	switch {
	case opts.keyFile != "":
		return gpg.NewSignerFromFile(opts.keyFile, inputs.GPGPassphrase)
	case inputs.SigningEnabled():
		return gpg.NewSigner(inputs.GPGPrivateKey, inputs.GPGPassphrase)
	default:
		return nil, nil
	}
}
