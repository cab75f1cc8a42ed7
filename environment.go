package testexamples

import (
	"context"
	"sync"
	"time"

	"github.com/evergreen-ci/pail"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/queue"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

var globalEnv *envState
var globalEnvLock = &sync.RWMutex{}

func init() { resetEnv() }

func resetEnv() {
	globalEnvLock.Lock()
	defer globalEnvLock.Unlock()
	globalEnv = &envState{name: "global", cache: newEnvironmentCache()}
}

// GetEnvironment returns the process wide environment.
func GetEnvironment() Environment {
	globalEnvLock.RLock()
	defer globalEnvLock.RUnlock()
	return globalEnv
}

// SetEnvironment replaces the process wide environment. Only environments
// created by NewEnvironment are accepted.
func SetEnvironment(env Environment) {
	globalEnvLock.Lock()
	defer globalEnvLock.Unlock()
	globalEnv = env.(*envState)
}

// Environment objects provide access to shared configuration and
// state, in a way that you can isolate and test for in
type Environment interface {
	GetConf() *Configuration

	// GetQueue retrieves the application's shared queue, which is
	// cached for easy access from within units or inside of requests
	// or command line operations.
	GetQueue() amboy.Queue
	// SetQueue configures the shared queue. It errors if a queue is
	// already set.
	SetQueue(amboy.Queue) error

	// GetBucket returns the bucket that holds roster documents.
	GetBucket() pail.Bucket

	// GetCache returns the in-memory cache shared by jobs and
	// request handlers.
	GetCache() EnvironmentCache

	// Context provides a context bound to the lifetime of the
	// environment.
	Context() (context.Context, context.CancelFunc)

	// RegisterCloser adds a function to run when the environment is
	// closed.
	RegisterCloser(string, func(context.Context) error)
	Close(context.Context) error
}

type closerOp struct {
	name   string
	closer func(context.Context) error
}

type envState struct {
	name    string
	ctx     context.Context
	queue   amboy.Queue
	bucket  pail.Bucket
	cache   *envCache
	conf    *Configuration
	closers []closerOp
	mutex   sync.RWMutex
}

// NewEnvironment validates the configuration and builds an environment with a
// started local queue and a local bucket. When the configuration names no
// bucket path, the bucket lives in a temporary directory.
func NewEnvironment(ctx context.Context, name string, conf *Configuration) (Environment, error) {
	if conf == nil {
		return nil, errors.New("must specify a configuration")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	env := &envState{
		name:  name,
		ctx:   ctx,
		conf:  conf,
		cache: newEnvironmentCache(),
	}

	var err error
	opts := pail.LocalOptions{
		Path:   conf.BucketPath,
		Prefix: conf.BucketPrefix,
	}
	if conf.BucketPath == "" {
		env.bucket, err = pail.NewLocalTemporaryBucket(opts)
	} else {
		env.bucket, err = pail.NewLocalBucket(opts)
	}
	if err != nil {
		return nil, errors.Wrap(err, "problem creating roster bucket")
	}

	env.queue = queue.NewLocalLimitedSize(conf.NumWorkers, conf.QueueCapacity)
	if err = env.queue.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "problem starting queue")
	}

	env.RegisterCloser("local-queue", func(ctx context.Context) error {
		amboy.WaitInterval(ctx, env.queue, 10*time.Millisecond)
		stats := env.queue.Stats(ctx)
		grip.WarningWhen(!stats.IsComplete(), message.Fields{
			"message": "closing queue with pending jobs",
			"env":     env.name,
			"stats":   stats,
		})
		env.queue.Close(ctx)
		return nil
	})

	grip.Info(message.Fields{
		"message":  "configured environment",
		"env":      name,
		"workers":  conf.NumWorkers,
		"capacity": conf.QueueCapacity,
		"bucket":   conf.BucketPath,
	})

	return env, nil
}

func (e *envState) GetConf() *Configuration {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.conf == nil {
		return nil
	}

	// copy the struct
	out := &Configuration{}
	*out = *e.conf
	return out
}

func (e *envState) SetQueue(q amboy.Queue) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.queue != nil {
		return errors.New("queue exists, cannot overwrite")
	}

	if q == nil {
		return errors.New("cannot set queue to nil")
	}

	e.queue = q
	grip.Noticef("caching a '%T' queue in the '%s' service cache for use in tasks", q, e.name)
	return nil
}

func (e *envState) GetQueue() amboy.Queue {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.queue
}

func (e *envState) GetBucket() pail.Bucket {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.bucket
}

func (e *envState) GetCache() EnvironmentCache {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.cache
}

func (e *envState) Context() (context.Context, context.CancelFunc) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.ctx == nil {
		return context.WithCancel(context.Background())
	}
	return context.WithCancel(e.ctx)
}

func (e *envState) RegisterCloser(name string, closer func(context.Context) error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.closers = append(e.closers, closerOp{name: name, closer: closer})
}

// Close runs the registered closers in reverse order of registration.
func (e *envState) Close(ctx context.Context) error {
	e.mutex.Lock()
	closers := e.closers
	e.closers = nil
	e.mutex.Unlock()

	catcher := grip.NewBasicCatcher()
	for idx := len(closers) - 1; idx >= 0; idx-- {
		op := closers[idx]
		catcher.Wrapf(op.closer(ctx), "running closer '%s'", op.name)
	}

	grip.Info(message.Fields{
		"message": "closed environment",
		"env":     e.name,
		"closers": len(closers),
		"errors":  catcher.HasErrors(),
	})

	return catcher.Resolve()
}
