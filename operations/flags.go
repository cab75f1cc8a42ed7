package operations

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	testexamples "github.com/rudikone/TestExamples"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	configFlag = "config"

	numWorkersFlag     = "workers"
	queueCapacityFlag  = "capacity"
	bucketPathFlag     = "bucket"
	bucketPrefixFlag   = "bucketPrefix"
	censusIntervalFlag = "censusInterval"

	servicePortFlag    = "port"
	servicePrefixFlag  = "prefix"
	allowedOriginsFlag = "origin"
	heartbeatFlag      = "heartbeat"

	clientHostFlag   = "host"
	clientPortFlag   = "port"
	clientPrefixFlag = "prefix"

	idFlag       = "id"
	nameFlag     = "name"
	ageFlag      = "age"
	raceFlag     = "race"
	scheduleFlag = "schedule"

	envVarPrefix = "TESTEXAMPLES_"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func envVar(name string) string { return envVarPrefix + name }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

func setFlagOrFirstPositional(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		val := c.String(name)
		if val == "" {
			if c.NArg() != 1 {
				return errors.Errorf("must specify exactly one positional argument for '%s'", name)
			}

			val = c.Args().Get(0)
		}

		return c.Set(name, val)
	}
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

func configFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:   joinFlagNames(configFlag, "c"),
		Usage:  "path to a YAML configuration file; flags override its values",
		EnvVar: envVar("CONFIG"),
	})
}

func baseFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:   numWorkersFlag,
			Usage:  "specify the number of worker jobs this process will have",
			Value:  testexamples.DefaultNumWorkers,
			EnvVar: envVar("WORKERS"),
		},
		cli.IntFlag{
			Name:   queueCapacityFlag,
			Usage:  "specify the maximum number of jobs held by the queue",
			Value:  testexamples.DefaultQueueCapacity,
			EnvVar: envVar("QUEUE_CAPACITY"),
		},
		cli.StringFlag{
			Name:   bucketPathFlag,
			Usage:  "specify a directory for storing the roster; a temporary directory is used when empty",
			EnvVar: envVar("BUCKET_PATH"),
		},
		cli.StringFlag{
			Name:   bucketPrefixFlag,
			Usage:  "specify a prefix for roster documents within the bucket",
			EnvVar: envVar("BUCKET_PREFIX"),
		},
		cli.DurationFlag{
			Name:   censusIntervalFlag,
			Usage:  "specify how often a census of the roster is taken",
			Value:  testexamples.DefaultCensusInterval,
			EnvVar: envVar("CENSUS_INTERVAL"),
		})
}

func serviceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:   joinFlagNames(servicePortFlag, "p"),
			Usage:  "specify a port to run the service on",
			Value:  testexamples.DefaultServicePort,
			EnvVar: envVar("SERVICE_PORT"),
		},
		cli.StringFlag{
			Name:   servicePrefixFlag,
			Usage:  "specify the URL prefix of the REST API",
			Value:  "rest",
			EnvVar: envVar("PREFIX"),
		},
		cli.StringSliceFlag{
			Name:   allowedOriginsFlag,
			Usage:  "specify an origin allowed to make cross-origin requests; may be repeated",
			EnvVar: envVar("ALLOWED_ORIGINS"),
		},
		cli.DurationFlag{
			Name:  heartbeatFlag,
			Usage: "specify the interval of the liveness heartbeat reported by the status route",
			Value: 10 * time.Second,
		})
}

func restServiceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:   clientHostFlag,
			Usage:  "host for the remote roster service",
			Value:  "http://localhost",
			EnvVar: envVar("HOST"),
		},
		cli.IntFlag{
			Name:   clientPortFlag,
			Usage:  "port for the remote roster service",
			Value:  testexamples.DefaultServicePort,
			EnvVar: envVar("PORT"),
		},
		cli.StringFlag{
			Name:  clientPrefixFlag,
			Usage: "URL prefix of the remote REST API",
			Value: "rest",
		},
	)
}

func characterFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  nameFlag,
			Usage: "name of the character",
		},
		cli.IntFlag{
			Name:  ageFlag,
			Usage: "age of the character",
		},
		cli.StringFlag{
			Name:  raceFlag,
			Usage: "race of the character, e.g. Hobbit or ELF",
		},
	)
}
