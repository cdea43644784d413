package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/foldersync/internal/peer/fsys"
	"github.com/iudanet/foldersync/internal/peer/transfer"
	"github.com/iudanet/foldersync/internal/validation"
)

// RunReceive joins a session by share code and downloads the folder into a target directory.
func (c *Cli) RunReceive(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: foldersync receive <target> [code]")
	}

	username, err := c.username(ctx)
	if err != nil {
		return err
	}

	code := ""
	if len(args) == 2 {
		code = args[1]
	} else {
		code, err = c.io.ReadPassword("Share code: ")
		if err != nil {
			return fmt.Errorf("failed to read share code: %w", err)
		}
	}
	code = validation.NormalizeShareCode(code)
	if err := validation.ValidateShareCode(code); err != nil {
		return fmt.Errorf("invalid share code: %w", err)
	}

	tree, err := fsys.NewLocal(args[0])
	if err != nil {
		return err
	}

	conn, err := c.relay.DialJoin(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to join session: %w", err)
	}

	model, prog := c.screen("Receiving into "+tree.Root(), "")

	var observer transfer.Observer = newTextObserver(c.io)
	if prog != nil {
		observer = prog
	}

	receiver := transfer.NewReceiver(conn, tree, observer, c.logger, c.options(username))
	report, err := c.runEngine(ctx, receiver, model, prog)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	printReport(c.io, report)
	return nil
}
