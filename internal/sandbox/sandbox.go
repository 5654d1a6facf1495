// Package sandbox is the interactive console used to poke at the data layer
// during development.
package sandbox

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"basketball-manager/internal/domain"
)

// Options are the command line switches.
type Options struct {
	ConfigPath string
	SkipSeed   bool
	Args       []string
}

// ParseArgs parses args (without the program name). Errors are reported to
// errOut together with the usage text.
func ParseArgs(args []string, errOut io.Writer) (Options, error) {
	var o Options
	fs := pflag.NewFlagSet("sandbox", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVarP(&o.ConfigPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	fs.BoolVar(&o.SkipSeed, "skip-seed", false, "do not run the seeders")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	o.Args = fs.Args()
	return o, nil
}

type SettingsCounter interface {
	GetCount(ctx context.Context) (int64, error)
}

type AttributesAdder interface {
	AddAttributes(ctx context.Context, position string, level int) (*domain.Attributes, error)
}

type Services struct {
	Settings   SettingsCounter
	Attributes AttributesAdder
}

// Run prints the settings count, asks for a level and a position, stores an
// attributes record and prints it.
func Run(ctx context.Context, in io.Reader, out io.Writer, s Services) error {
	start := time.Now()

	n, err := s.Settings.GetCount(ctx)
	if err != nil {
		return errors.Wrap(err, "count settings")
	}
	fmt.Fprintf(out, "Count of settings: %d\n", n)

	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, "Level: ")
	line, err := readLine(sc)
	if err != nil {
		return errors.Wrap(err, "read level")
	}
	level, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return errors.Wrapf(err, "level %q is not a number", line)
	}
	fmt.Fprintln(out, "Position: ")
	position, err := readLine(sc)
	if err != nil {
		return errors.Wrap(err, "read position")
	}

	a, err := s.Attributes.AddAttributes(ctx, strings.TrimSpace(position), level)
	if err != nil {
		return err
	}
	for _, v := range []interface{}{a.ID, a.Level, a.Position, a.Shooting, a.Rebounding, a.Assisting, a.Stealing, a.Blocking} {
		fmt.Fprintln(out, v)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, time.Since(start))
	return nil
}

func readLine(sc *bufio.Scanner) (string, error) {
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
