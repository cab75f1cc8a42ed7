package operations

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	testexamples "github.com/rudikone/TestExamples"
	"github.com/rudikone/TestExamples/rest"
	"github.com/rudikone/TestExamples/units"
)

// Service returns the ./testexamples service sub-command object, which is
// responsible for starting the REST service and its background jobs.
func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run the roster api service",
		Flags: mergeFlags(configFlags(), baseFlags(), serviceFlags()),
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conf, err := buildConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			env, err := setupEnvironment(ctx, "service", conf)
			if err != nil {
				return errors.WithStack(err)
			}
			defer func() {
				grip.Warning(message.WrapError(env.Close(context.Background()), "problem closing environment"))
			}()

			beacon := units.NewBeacon(c.Duration(heartbeatFlag))
			if err = beacon.Start(ctx); err != nil {
				return errors.Wrap(err, "problem starting heartbeat")
			}
			defer beacon.Stop()

			service := &rest.Service{
				Port:           conf.ServicePort,
				Prefix:         conf.Prefix,
				AllowedOrigins: conf.AllowedOrigins,
				Environment:    env,
				Beacon:         beacon,
			}

			if err = service.Validate(); err != nil {
				return errors.Wrap(err, "problem validating service")
			}

			if err = service.Start(ctx); err != nil {
				return errors.Wrap(err, "problem starting service")
			}

			grip.Noticef("starting roster service on :%d", conf.ServicePort)
			service.Wait()
			grip.Info("completed service, terminating.")

			return nil
		},
	}
}

// setupEnvironment creates the environment, makes it the process wide
// environment and starts the census crons.
func setupEnvironment(ctx context.Context, name string, conf *testexamples.Configuration) (testexamples.Environment, error) {
	env, err := testexamples.NewEnvironment(ctx, name, conf)
	if err != nil {
		return nil, errors.Wrap(err, "problem configuring environment")
	}
	testexamples.SetEnvironment(env)

	if err = units.StartCrons(ctx, env); err != nil {
		grip.Warning(message.WrapError(env.Close(ctx), "problem closing environment"))
		return nil, errors.Wrap(err, "problem starting background jobs")
	}

	return env, nil
}
