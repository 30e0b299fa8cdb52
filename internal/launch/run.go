package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
)

// Runner starts composed client commands.
type Runner struct {
	log logging.Logger
}

// NewRunner creates a runner. A nil logger falls back to a no-op.
func NewRunner(log logging.Logger) *Runner {
	if log == nil {
		log = logging.Nop()
	}
	return &Runner{log: log}
}

// Run executes the command in the foreground, wiring the client's
// stdio to ours, and blocks until it exits.
func (r *Runner) Run(ctx context.Context, cmd *Command) error {
	if cmd.Java == "" {
		return fmt.Errorf("no java executable configured")
	}

	proc := exec.CommandContext(ctx, cmd.Java, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	r.log.Info("starting client", "java", cmd.Java, "dir", cmd.Dir)
	if err := proc.Run(); err != nil {
		return fmt.Errorf("client process: %w", err)
	}
	return nil
}
