package operations

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	testexamples "github.com/rudikone/TestExamples"
)

// runConfigCommand parses args with the service flags and returns the
// resulting configuration.
func runConfigCommand(t *testing.T, args ...string) (*testexamples.Configuration, error) {
	var conf *testexamples.Configuration
	var confErr error

	app := cli.NewApp()
	app.Commands = []cli.Command{
		{
			Name:  "conf",
			Flags: mergeFlags(configFlags(), baseFlags(), serviceFlags()),
			Action: func(c *cli.Context) error {
				conf, confErr = buildConfiguration(c)
				return nil
			},
		},
	}

	require.NoError(t, app.Run(append([]string{"testexamples", "conf"}, args...)))
	return conf, confErr
}

func TestBuildConfiguration(t *testing.T) {
	t.Run("FlagDefaults", func(t *testing.T) {
		conf, err := runConfigCommand(t)
		require.NoError(t, err)
		assert.Equal(t, testexamples.DefaultNumWorkers, conf.NumWorkers)
		assert.Equal(t, testexamples.DefaultQueueCapacity, conf.QueueCapacity)
		assert.Equal(t, testexamples.DefaultServicePort, conf.ServicePort)
		assert.Equal(t, testexamples.DefaultCensusInterval, conf.CensusInterval)
		assert.Equal(t, "rest", conf.Prefix)
		assert.Empty(t, conf.BucketPath)
		assert.Empty(t, conf.AllowedOrigins)
	})
	t.Run("ExplicitFlags", func(t *testing.T) {
		conf, err := runConfigCommand(t,
			"--workers", "4",
			"--port", "8080",
			"--censusInterval", "30s",
			"--origin", "http://localhost:8080",
			"--origin", "http://rivendell.example.com",
		)
		require.NoError(t, err)
		assert.Equal(t, 4, conf.NumWorkers)
		assert.Equal(t, 8080, conf.ServicePort)
		assert.Equal(t, 30*time.Second, conf.CensusInterval)
		assert.Equal(t, []string{"http://localhost:8080", "http://rivendell.example.com"}, conf.AllowedOrigins)
	})
	t.Run("InvalidFlags", func(t *testing.T) {
		_, err := runConfigCommand(t, "--workers", "-3")
		assert.Error(t, err)
	})
	t.Run("FileWithOverrides", func(t *testing.T) {
		fn := filepath.Join(t.TempDir(), "conf.yaml")
		require.NoError(t, os.WriteFile(fn, []byte(`
service_port: 9090
num_workers: 8
bucket_path: /tmp/roster
census_interval: 5s
allowed_origins:
  - http://shire.example.com
`), 0600))

		conf, err := runConfigCommand(t, "--config", fn, "--workers", "3")
		require.NoError(t, err)
		assert.Equal(t, 9090, conf.ServicePort)
		assert.Equal(t, 3, conf.NumWorkers)
		assert.Equal(t, "/tmp/roster", conf.BucketPath)
		assert.Equal(t, 5*time.Second, conf.CensusInterval)
		assert.Equal(t, []string{"http://shire.example.com"}, conf.AllowedOrigins)
	})
	t.Run("MissingFile", func(t *testing.T) {
		_, err := runConfigCommand(t, "--config", filepath.Join(t.TempDir(), "DNE.yaml"))
		assert.Error(t, err)
	})
}

func TestConfigCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	app := cli.NewApp()
	app.Writer = buf
	app.Commands = []cli.Command{Config()}

	require.NoError(t, app.Run([]string{"testexamples", "config", "--port", "4000", "--workers", "3"}))
	assert.Contains(t, buf.String(), "service_port: 4000")
	assert.Contains(t, buf.String(), "num_workers: 3")
	assert.Contains(t, buf.String(), "prefix: rest")

	buf.Reset()
	assert.Error(t, app.Run([]string{"testexamples", "config", "--workers", "-1"}))
	assert.Empty(t, buf.String())
}
