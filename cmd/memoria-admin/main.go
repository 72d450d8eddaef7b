// Command memoria-admin creates an administrator account or promotes an
// existing user. Database settings are read the same way as the server's.
//
//	memoria-admin -email root@example.com -name Root
//	echo "$PW" | memoria-admin -email root@example.com -password-stdin
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/flagx"
	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/dmitrijs2005/memoria/internal/server/config"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/memoria/internal/server/services"
	"golang.org/x/term"
)

type options struct {
	email         string
	name          string
	passwordStdin bool
}

var errEmailRequired = errors.New("-email is required")

func parseOptions(args []string) (*options, error) {
	o := &options{}

	fs := flag.NewFlagSet("memoria-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.email, "email", "", "administrator email")
	fs.StringVar(&o.name, "name", "", "display name for a new account")
	fs.BoolVar(&o.passwordStdin, "password-stdin", false, "read the password from stdin")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "-name", "-password-stdin"})); err != nil {
		return nil, err
	}
	if strings.TrimSpace(o.email) == "" {
		return nil, errEmailRequired
	}
	return o, nil
}

// readPassword reads one line from in when fromStdin is set, otherwise it
// prompts on the terminal without echo.
func readPassword(in io.Reader, out io.Writer, fromStdin bool, fd int) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use -password-stdin")
	}
	fmt.Fprint(out, "Password (ignored for existing users): ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	password, err := readPassword(os.Stdin, os.Stderr, opts.passwordStdin, int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	admin := services.NewAdminService(db, rm, logger)

	u, created, err := admin.EnsureAdmin(ctx, auth.NewPasswordHasher(cfg.PasswordHashCost), opts.email, opts.name, password)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("created administrator %s (id %d)\n", u.Email, u.ID)
	} else {
		fmt.Printf("promoted %s (id %d) to administrator\n", u.Email, u.ID)
	}
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("memoria-admin: %v", err)
	}
}
