// Package headless runs a single prompt through the generation pipeline
// without the TUI: complete, parse, export the bundle, print the
// explanation. The reveal stage is skipped since there is nobody to watch
// it.
package headless

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/weftdev/weft/pkg/config"
	"github.com/weftdev/weft/pkg/extract"
	"github.com/weftdev/weft/pkg/llm"
	"github.com/weftdev/weft/pkg/logger"
	"github.com/weftdev/weft/pkg/prompt"
	"github.com/weftdev/weft/pkg/site"
)

// Runner executes one prompt and writes the generated site to disk.
type Runner struct {
	client    llm.Client
	outputDir string
	userName  string
	out       io.Writer
}

// NewRunner creates a headless runner from the global config.
func NewRunner(outputDir string) (*Runner, error) {
	settings := config.Get()

	client, err := llm.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	if outputDir == "" {
		outputDir = settings.Export.Directory
	}

	return &Runner{
		client:    client,
		outputDir: outputDir,
		userName:  settings.User.Name,
		out:       os.Stdout,
	}, nil
}

// NewRunnerWithClient builds a runner over an explicit client, for callers
// that already hold one.
func NewRunnerWithClient(client llm.Client, outputDir, userName string, out io.Writer) *Runner {
	return &Runner{
		client:    client,
		outputDir: outputDir,
		userName:  userName,
		out:       out,
	}
}

// Run executes a single prompt and exports the result.
func (r *Runner) Run(ctx context.Context, request string) error {
	if request == "" {
		return fmt.Errorf("prompt cannot be empty in headless mode")
	}

	logger.Info("headless generation: %q", request)
	raw, err := r.client.Complete(ctx, prompt.System(r.userName), prompt.User(r.userName, request))
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	result := extract.Parse(raw)
	if result.Explanation != "" {
		fmt.Fprintln(r.out, result.Explanation)
	}

	if result.Code.IsEmpty() {
		fmt.Fprintln(r.out, "No code was generated for this prompt.")
		return nil
	}

	title := extract.ProjectTitle(request)
	indexPath, err := site.Export(r.outputDir, title, result.Code)
	if err != nil {
		return fmt.Errorf("failed to export site: %w", err)
	}

	fmt.Fprintf(r.out, "\nSite written to %s\n", indexPath)
	return nil
}
