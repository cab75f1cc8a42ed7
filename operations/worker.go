package operations

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rudikone/TestExamples/units"
)

// Worker returns the ./testexamples worker command, which takes periodic
// censuses of a roster without hosting the REST API.
func Worker() cli.Command {
	return cli.Command{
		Name: "worker",
		Usage: strings.Join([]string{
			"take periodic censuses of the roster without a web front-end",
			"runs until interrupted, then prints the latest census",
		}, "\n\t"),
		Flags: mergeFlags(configFlags(), baseFlags()),
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conf, err := buildConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			env, err := setupEnvironment(ctx, "worker", conf)
			if err != nil {
				return errors.WithStack(err)
			}

			<-ctx.Done()

			closeCtx, closeCancel := context.WithCancel(context.Background())
			defer closeCancel()
			grip.Info(message.Fields{
				"message": "worker stopping",
				"stats":   env.GetQueue().Stats(closeCtx),
			})
			if err = env.Close(closeCtx); err != nil {
				return errors.Wrap(err, "problem closing environment")
			}

			report, ok := units.LatestCensus(env)
			if !ok {
				grip.Notice("no census was taken; shutting worker down.")
				return nil
			}

			out, err := json.MarshalIndent(report, "", "   ")
			if err != nil {
				return errors.Wrap(err, "problem rendering census")
			}
			fmt.Fprintln(c.App.Writer, string(out))

			return nil
		},
	}
}
