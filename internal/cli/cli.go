// Package cli implements the roomiectl maintenance commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/config"
	"github.com/mmynk/roomieboard/internal/importer"
	"github.com/mmynk/roomieboard/internal/server"
)

// ErrUsage is returned for a missing or unknown command.
var ErrUsage = errors.New("usage error")

const usage = `usage: roomiectl <command> [arguments]

commands:
  import <file>                      load a roomie-board-data JSON export
  seed <roster.yaml>                 add or update household roommates
  token <roommate-id> [email] [name] mint a development JWT
`

// Run executes the command named by args[0].
func Run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return ErrUsage
	}

	switch args[0] {
	case "import":
		return runImport(ctx, cfg, args[1:], out)
	case "seed":
		return runSeed(ctx, cfg, args[1:], out)
	case "token":
		return runToken(cfg, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func runImport(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(out)
	verbose := fs.Bool("v", false, "print every warning")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: import needs exactly one file", ErrUsage)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fs.Arg(0), err)
	}
	defer f.Close()

	doc, err := importer.ParseDocument(f)
	if err != nil {
		return err
	}

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := importer.New(store).Import(ctx, doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d bills (%d skipped), %d notifications\n",
		res.BillsImported, res.BillsSkipped, res.NotificationsImported)
	if *verbose {
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
	} else if len(res.Warnings) > 0 {
		fmt.Fprintf(out, "%d warnings (rerun with -v to list them)\n", len(res.Warnings))
	}
	return nil
}

func runToken(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 3 || args[0] == "" {
		return fmt.Errorf("%w: token <roommate-id> [email] [name]", ErrUsage)
	}

	id := auth.Identity{RoommateID: args[0]}
	if len(args) > 1 {
		id.Email = args[1]
	}
	if len(args) > 2 {
		id.Name = args[2]
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL).Generate(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}
