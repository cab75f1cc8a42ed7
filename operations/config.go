package operations

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	testexamples "github.com/rudikone/TestExamples"
)

// Config returns the ./testexamples config sub-command object, which prints
// the configuration the service would run with.
func Config() cli.Command {
	return cli.Command{
		Name:  "config",
		Usage: "print the effective configuration as yaml",
		Flags: mergeFlags(configFlags(), baseFlags(), serviceFlags()),
		Action: func(c *cli.Context) error {
			conf, err := buildConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			out, err := conf.Export()
			if err != nil {
				return errors.WithStack(err)
			}

			_, err = c.App.Writer.Write(out)
			return errors.Wrap(err, "writing configuration")
		},
	}
}

// buildConfiguration reads the configuration file, when one is given, and
// applies the flags that were set explicitly on top of it. Without a file,
// every flag's value is used.
func buildConfiguration(c *cli.Context) (*testexamples.Configuration, error) {
	conf := &testexamples.Configuration{}
	fromFile := false
	if fn := c.String(configFlag); fn != "" {
		var err error
		conf, err = testexamples.LoadConfiguration(fn)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		fromFile = true
	}

	use := func(name string) bool { return !fromFile || c.IsSet(name) }

	if use(numWorkersFlag) {
		conf.NumWorkers = c.Int(numWorkersFlag)
	}
	if use(queueCapacityFlag) {
		conf.QueueCapacity = c.Int(queueCapacityFlag)
	}
	if use(bucketPathFlag) && c.String(bucketPathFlag) != "" {
		conf.BucketPath = c.String(bucketPathFlag)
	}
	if use(bucketPrefixFlag) && c.String(bucketPrefixFlag) != "" {
		conf.BucketPrefix = c.String(bucketPrefixFlag)
	}
	if use(censusIntervalFlag) {
		conf.CensusInterval = c.Duration(censusIntervalFlag)
	}
	if use(servicePortFlag) && c.Int(servicePortFlag) != 0 {
		conf.ServicePort = c.Int(servicePortFlag)
	}
	if use(servicePrefixFlag) && c.String(servicePrefixFlag) != "" {
		conf.Prefix = c.String(servicePrefixFlag)
	}
	if use(allowedOriginsFlag) && len(c.StringSlice(allowedOriginsFlag)) > 0 {
		conf.AllowedOrigins = c.StringSlice(allowedOriginsFlag)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return conf, nil
}
