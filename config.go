package testexamples

import (
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Configuration defines the settings shared by the service, the workers and
// the command line client.
type Configuration struct {
	ServicePort    int           `yaml:"service_port"`
	Prefix         string        `yaml:"prefix"`
	NumWorkers     int           `yaml:"num_workers"`
	QueueCapacity  int           `yaml:"queue_capacity"`
	BucketPath     string        `yaml:"bucket_path"`
	BucketPrefix   string        `yaml:"bucket_prefix"`
	CensusInterval time.Duration `yaml:"census_interval"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// LoadConfiguration reads a YAML configuration file and validates the
// result.
func LoadConfiguration(fn string) (*Configuration, error) {
	conf := &Configuration{}
	if err := utility.ReadYAMLFile(fn, conf); err != nil {
		return nil, errors.Wrapf(err, "reading configuration file '%s'", fn)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in '%s'", fn)
	}

	return conf, nil
}

// Validate checks the configuration for obviously wrong values and fills in
// defaults for the ones that were left out.
func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(c.NumWorkers < 0, "must specify a valid number of amboy workers")
	catcher.NewWhen(c.QueueCapacity < 0, "queue capacity cannot be negative")
	catcher.ErrorfWhen(c.ServicePort < 0 || c.ServicePort > 65535, "port %d is out of range", c.ServicePort)
	catcher.NewWhen(c.CensusInterval < 0, "census interval cannot be negative")

	if catcher.HasErrors() {
		return catcher.Resolve()
	}

	if c.ServicePort == 0 {
		c.ServicePort = DefaultServicePort
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = DefaultNumWorkers
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.CensusInterval == 0 {
		c.CensusInterval = DefaultCensusInterval
	}
	if c.Prefix == "" {
		c.Prefix = "rest"
	}

	return nil
}

// Export renders the configuration as YAML in the format LoadConfiguration
// reads.
func (c *Configuration) Export() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling configuration")
	}
	return out, nil
}
