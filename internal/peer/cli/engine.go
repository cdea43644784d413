package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/iudanet/foldersync/internal/peer/transfer"
	"github.com/iudanet/foldersync/internal/peer/ui"
)

// engine is a sender or a receiver.
type engine interface {
	transfer.Controller
	Run(ctx context.Context) (*transfer.Report, error)
}

// screen returns the interactive screen, or nil in plain mode.
func (c *Cli) screen(title, code string) (*ui.Model, *ui.Program) {
	if c.plain {
		return nil, nil
	}
	model := ui.NewModel(title, code)
	return model, ui.NewProgram(model)
}

// runEngine runs eng to completion, with the screen when prog is set.
func (c *Cli) runEngine(ctx context.Context, eng engine, model *ui.Model, prog *ui.Program) (*transfer.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if prog == nil {
		// Ctrl+C отменяет передачу с уведомлением второй стороны
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		go func() {
			select {
			case <-sig:
				eng.Cancel()
			case <-ctx.Done():
			}
		}()
		return eng.Run(ctx)
	}

	model.SetController(eng)

	type result struct {
		report *transfer.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := eng.Run(ctx)
		done <- result{report: report, err: err}
		prog.Quit()
	}()

	if _, err := prog.Run(); err != nil {
		c.logger.Error("Screen failed", "error", err)
		eng.Cancel()
	}

	res := <-done
	return res.report, res.err
}
