// Package agent wires the filtering core to its ambient services: the
// agent configuration, the leveled log, and the request table. The
// embedding runtime creates one Agent at VM start and routes every raised
// occurrence through HandleOccurrence.
package agent

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/jdwp/internal/event"
	"github.com/dshills/jdwp/internal/request"
	"github.com/dshills/jdwp/internal/runtime"
)

// Agent is one debugging session's agent state.
type Agent struct {
	session  string
	log      *Logger
	logFile  io.Closer
	requests *request.Manager

	mu      sync.RWMutex
	cfg     Config
	tracing []string
	exclude []string
}

// New creates an agent from the given config. The session ID is fresh per
// agent and appears on every log line.
func New(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	var file io.Closer
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		file = f
	}

	session := uuid.NewString()
	log := NewLogger(ParseLevel(cfg.Logging.Level), out).WithField("session", session)

	a := &Agent{
		session:  session,
		log:      log,
		logFile:  file,
		requests: request.NewManager(cfg.Requests.Limit),
		cfg:      cfg,
		tracing:  cfg.Trace.Patterns,
		exclude:  cfg.Trace.Exclude,
	}
	a.log.Info("agent started")
	return a, nil
}

// Session returns the agent's session ID.
func (a *Agent) Session() string { return a.session }

// Logger returns the agent's logger.
func (a *Agent) Logger() *Logger { return a.log }

// Requests returns the agent's request table.
func (a *Agent) Requests() *request.Manager { return a.requests }

// DefaultSuspend returns the configured default suspend policy.
func (a *Agent) DefaultSuspend() request.SuspendPolicy {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.SuspendPolicy()
}

// Reload applies a changed config to the running agent. Only the log
// level and trace patterns take effect without a restart; table limits
// and the log destination are fixed at startup.
func (a *Agent) Reload(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.tracing = cfg.Trace.Patterns
	a.exclude = cfg.Trace.Exclude
	a.mu.Unlock()

	a.log.SetLevel(ParseLevel(cfg.Logging.Level))
	a.log.Info("config reloaded")
	return nil
}

// HandleOccurrence filters one VM occurrence through the request table
// and returns the requests to report it for. Occurrences in classes
// matching a configured trace pattern are logged at debug level.
func (a *Agent) HandleOccurrence(env runtime.Env, info *event.Info) []*request.Request {
	if a.traced(info.Signature) {
		a.log.Debug("occurrence %v in %s", info.Kind, event.SignatureTypeName(info.Signature))
	}

	matched := a.requests.Dispatch(env, info)
	if len(matched) > 0 {
		a.log.Debug("occurrence %v matched %d request(s)", info.Kind, len(matched))
	}
	return matched
}

// traced reports whether the class signature matches a trace pattern and
// no exclude pattern.
func (a *Agent) traced(signature string) bool {
	if signature == "" {
		return false
	}

	a.mu.RLock()
	patterns := a.tracing
	exclude := a.exclude
	a.mu.RUnlock()

	for _, p := range exclude {
		if event.MatchPattern(signature, p) {
			return false
		}
	}
	for _, p := range patterns {
		if event.MatchPattern(signature, p) {
			return true
		}
	}
	return false
}

// Close removes every outstanding request, releasing all owned handles,
// and closes the log destination.
func (a *Agent) Close() error {
	a.requests.Close()
	a.log.Info("agent stopped")
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
