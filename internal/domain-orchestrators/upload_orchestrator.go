// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ochairo/release-assets/internal/concurrent"
	"github.com/ochairo/release-assets/internal/domain/entities"
	"github.com/ochairo/release-assets/internal/domain/interfaces"
	"github.com/ochairo/release-assets/internal/domain/interfaces/gateways"
	domainServices "github.com/ochairo/release-assets/internal/domain/interfaces/services"
	"github.com/ochairo/release-assets/internal/domain/services"
)

// OutputURL is the name of the output carrying the resolved upload URL
const OutputURL = "url"

// NoTargetWarning is emitted when no upload URL can be resolved
const NoTargetWarning = "No release URL, skipping. This action requires either a release URL passed in or run as part of a release event"

const signatureContentType = "application/pgp-signature"

// GitHub validation code for a duplicate asset name
const codeAlreadyExists = "already_exists"

// PathExpander interface for expanding glob patterns
type PathExpander interface {
	Expand(pattern string) ([]string, error)
}

// Runner interface for reporting to the host pipeline
type Runner interface {
	SetOutput(name, value string)
	Warning(msg string)
}

// UploadOrchestrator coordinates resolving inputs, classifying candidates and uploading assets
type UploadOrchestrator struct {
	gateway       gateways.ReleaseGateway
	classifier    domainServices.FileClassifier
	expander      PathExpander
	signer        gateways.AssetSigner
	runner        Runner
	logger        interfaces.Logger
	runID         string
	concurrency   int
	uploadTimeout time.Duration
}

// UploadOrchestratorConfig holds configuration for the orchestrator
type UploadOrchestratorConfig struct {
	RunID         string
	Concurrency   int
	UploadTimeout time.Duration

	// Signer is optional; when set every asset is followed by its detached signature
	Signer gateways.AssetSigner
}

// NewUploadOrchestrator creates a new upload orchestrator
func NewUploadOrchestrator(
	gateway gateways.ReleaseGateway,
	classifier domainServices.FileClassifier,
	expander PathExpander,
	runner Runner,
	logger interfaces.Logger,
	config UploadOrchestratorConfig,
) *UploadOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = entities.DefaultConcurrency
	}

	uploadTimeout := config.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = entities.DefaultUploadTimeout
	}

	return &UploadOrchestrator{
		gateway:       gateway,
		classifier:    classifier,
		expander:      expander,
		signer:        config.Signer,
		runner:        runner,
		logger:        logger,
		runID:         config.RunID,
		concurrency:   concurrency,
		uploadTimeout: uploadTimeout,
	}
}

// Run uploads every candidate file of inputs to the release resolved from runCtx or inputs.
// A run without an upload URL is not a failure: it returns an empty report and a nil error.
// The returned error aggregates every failed upload; the report is complete either way.
func (o *UploadOrchestrator) Run(ctx context.Context, inputs *entities.Inputs, runCtx *entities.RunContext) (*entities.RunReport, error) {
	// Step 1: Credentials
	if inputs.GitHubToken == "" {
		return nil, services.MissingInput(entities.InputGitHubToken)
	}

	report := &entities.RunReport{RunID: o.runID}

	// Step 2: Resolve the upload target
	target, ok := services.ResolveTarget(runCtx, inputs.ReleaseURL)
	if !ok {
		o.logger.Warn(NoTargetWarning)
		o.runner.Warning(NoTargetWarning)
		return report, nil
	}
	report.URL = target.URL

	// Step 3: Publish the URL
	o.runner.SetOutput(OutputURL, target.URL)

	// Step 4: Gather candidates
	var globMatches []string
	if inputs.Pattern != "" {
		matches, err := o.expander.Expand(inputs.Pattern)
		if err != nil {
			return report, &services.ConfigurationError{Input: entities.InputPattern, Reason: err.Error()}
		}
		o.logger.Debug("Expanded pattern",
			interfaces.F("pattern", inputs.Pattern),
			interfaces.F("matches", len(matches)))
		globMatches = matches
	}
	candidates := services.BuildCandidateList(inputs.File, inputs.Files, globMatches)

	// Step 5: Classify and upload each candidate, waiting for all of them
	outcomes := make([]entities.UploadOutcome, len(candidates))
	tasks := make([]func(context.Context) error, len(candidates))
	for i, path := range candidates {
		tasks[i] = func(ctx context.Context) error {
			outcomes[i] = o.process(ctx, target.URL, path)
			return outcomes[i].Err
		}
	}

	pool := concurrent.NewWorkerPool(o.concurrency)
	o.logger.Info("Uploading release assets",
		interfaces.F("url", target.URL),
		interfaces.F("source", target.Source),
		interfaces.F("candidates", len(candidates)),
		interfaces.F("workers", pool.Workers()))

	errs := pool.RunAll(ctx, tasks...)

	// Step 6: Aggregate in candidate order
	for i := range outcomes {
		if outcomes[i].Path == "" {
			// Never started: the run context ended first
			outcomes[i] = entities.UploadOutcome{Path: candidates[i], Err: errs[i]}
		}
		report.Add(outcomes[i])
	}

	o.logger.Info("Upload run finished",
		interfaces.F("uploaded", len(report.Uploaded)),
		interfaces.F("skipped", len(report.Skipped)),
		interfaces.F("failed", len(report.Failed)))

	return report, report.Err()
}

// process classifies one candidate and uploads it
func (o *UploadOrchestrator) process(ctx context.Context, uploadURL, path string) entities.UploadOutcome {
	outcome := entities.UploadOutcome{Path: path}

	asset, err := o.classifier.Classify(path)
	if errors.Is(err, services.ErrSkipped) {
		o.logger.Info("Skipping path", interfaces.F("path", path), interfaces.F("reason", err.Error()))
		outcome.Skipped = true
		outcome.SkipReason = err.Error()
		return outcome
	}
	if err != nil {
		o.logger.Error("Failed to read file", interfaces.F("path", path), interfaces.F("error", err.Error()))
		outcome.Err = err
		return outcome
	}

	outcome.Name = asset.Name
	outcome.ContentType = asset.ContentType
	outcome.Size = asset.Size()
	outcome.SHA256 = asset.SHA256()

	o.logger.Info("Uploading file",
		interfaces.F("path", asset.Path),
		interfaces.F("content_type", asset.ContentType),
		interfaces.F("size", asset.Size()))

	uploaded, err := o.upload(ctx, uploadURL, asset.Name, asset.ContentType, asset.Content)
	if err != nil {
		o.logger.Error("Upload failed", interfaces.F("name", asset.Name), interfaces.F("error", err.Error()))
		var apiErr *gateways.APIError
		if errors.As(err, &apiErr) && apiErr.HasCode(codeAlreadyExists) {
			o.logger.Warn("An asset with this name already exists on the release; delete it before uploading again",
				interfaces.F("name", asset.Name))
		}
		outcome.Err = fmt.Errorf("upload failed: %w", err)
		return outcome
	}
	outcome.AssetID = uploaded.ID
	outcome.DownloadURL = uploaded.BrowserDownloadURL

	o.logger.Info("Uploaded",
		interfaces.F("name", asset.Name),
		interfaces.F("sha256", outcome.SHA256))

	if o.signer != nil {
		if err := o.uploadSignature(ctx, uploadURL, asset); err != nil {
			o.logger.Error("Signature upload failed", interfaces.F("name", asset.Name), interfaces.F("error", err.Error()))
			outcome.Err = err
		}
	}

	return outcome
}

// uploadSignature signs asset and uploads the detached signature next to it
func (o *UploadOrchestrator) uploadSignature(ctx context.Context, uploadURL string, asset *entities.AssetFile) error {
	signature, err := o.signer.Sign(asset.Content)
	if err != nil {
		return fmt.Errorf("failed to sign %s: %w", asset.Name, err)
	}

	name := o.signer.SignatureName(asset.Name)
	if _, err := o.upload(ctx, uploadURL, name, signatureContentType, signature); err != nil {
		return fmt.Errorf("signature upload failed: %w", err)
	}

	o.logger.Info("Uploaded signature", interfaces.F("name", name))
	return nil
}

// upload sends one asset with its own timeout
func (o *UploadOrchestrator) upload(ctx context.Context, uploadURL, name, contentType string, content []byte) (*gateways.ReleaseAsset, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, o.uploadTimeout)
	defer cancel()

	return o.gateway.UploadAsset(uploadCtx, uploadURL, name, contentType, bytes.NewReader(content), int64(len(content)))
}
