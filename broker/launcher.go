// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bureau-foundation/rhost/lib/acl"
	"github.com/bureau-foundation/rhost/lib/argv"
	"github.com/bureau-foundation/rhost/lib/binhash"
	"github.com/bureau-foundation/rhost/lib/clock"
	"github.com/bureau-foundation/rhost/lib/exitcode"
	"github.com/bureau-foundation/rhost/lib/hostenv"
	"github.com/bureau-foundation/rhost/lib/interpreter"
	"github.com/bureau-foundation/rhost/lib/pipes"
)

// DefaultLivenessWait is how long a probing switcher's child is watched
// for an early exit when neither the launcher nor the interpreter
// configures a wait.
const DefaultLivenessWait = 250 * time.Millisecond

// livenessPollInterval is how often the child is polled during the
// liveness wait.
const livenessPollInterval = 10 * time.Millisecond

// Config configures a Launcher.
type Config struct {
	// Switcher creates processes. Required.
	Switcher IdentitySwitcher

	// Descriptors builds the process access descriptor. Nil means
	// acl.NewBuilder().
	Descriptors acl.Builder

	// Principal is granted access by the descriptor. Empty means
	// acl.DefaultPrincipal.
	Principal string

	// LivenessWait bounds the post-launch liveness probe. Zero means
	// DefaultLivenessWait.
	LivenessWait time.Duration

	// Clock drives the liveness probe. Nil means clock.Real().
	Clock clock.Clock

	// Logger receives state transitions at debug level and launch
	// outcomes at info level. Nil means slog.Default().
	Logger *slog.Logger

	// HostEnv reads the broker's environment. Nil means os.LookupEnv.
	HostEnv hostenv.Lookup

	// Platform selects child environment variable names. Nil means
	// hostenv.Native().
	Platform *hostenv.Platform

	// OptionalVariables extends hostenv.OptionalVariables.
	OptionalVariables []string
}

// Launcher starts interpreter processes. It is read-only after New.
type Launcher struct {
	switcher     IdentitySwitcher
	descriptors  acl.Builder
	principal    string
	livenessWait time.Duration
	clock        clock.Clock
	logger       *slog.Logger
	hostEnv      hostenv.Lookup
	platform     *hostenv.Platform
	optional     []string
}

// New validates config and returns a Launcher.
func New(config Config) (*Launcher, error) {
	if config.Switcher == nil {
		return nil, errors.New("broker: Switcher is required")
	}
	if config.LivenessWait < 0 {
		return nil, fmt.Errorf("broker: LivenessWait must not be negative, got %s", config.LivenessWait)
	}

	launcher := &Launcher{
		switcher:     config.Switcher,
		descriptors:  config.Descriptors,
		principal:    config.Principal,
		livenessWait: config.LivenessWait,
		clock:        config.Clock,
		logger:       config.Logger,
		hostEnv:      config.HostEnv,
		platform:     config.Platform,
		optional:     append([]string(nil), config.OptionalVariables...),
	}
	if launcher.descriptors == nil {
		launcher.descriptors = acl.NewBuilder()
	}
	if launcher.principal == "" {
		launcher.principal = acl.DefaultPrincipal
	}
	if launcher.livenessWait == 0 {
		launcher.livenessWait = DefaultLivenessWait
	}
	if launcher.clock == nil {
		launcher.clock = clock.Real()
	}
	if launcher.logger == nil {
		launcher.logger = slog.Default()
	}
	if launcher.hostEnv == nil {
		launcher.hostEnv = os.LookupEnv
	}
	if launcher.platform == nil {
		native := hostenv.Native()
		launcher.platform = &native
	}
	return launcher, nil
}

// StartInterpreter launches descriptor's interpreter as userName with
// commandLine as its arguments.
func (l *Launcher) StartInterpreter(ctx context.Context, descriptor *interpreter.Descriptor, profilePath, userName string, identity Identity, commandLine string) (*LaunchedProcess, error) {
	return l.Launch(ctx, &Request{
		Interpreter: descriptor,
		CommandLine: commandLine,
		ProfilePath: profilePath,
		UserName:    userName,
		Identity:    identity,
	})
}

// Launch runs request through the launch sequence. On failure every
// handle acquired for the launch has been released and the error is an
// *Error. On success the caller owns the returned process.
func (l *Launcher) Launch(ctx context.Context, request *Request) (*LaunchedProcess, error) {
	if request == nil {
		return nil, invalidRequest("request is nil")
	}
	hasIdentity := !isNilIdentity(request.Identity)
	if identity, ok := request.Identity.(destroyer); ok && hasIdentity {
		defer identity.Destroy()
	}

	launch := &launchState{logger: l.logger.With("switcher", l.switcher.Name())}
	if hasIdentity {
		launch.logger = launch.logger.With("user", request.Identity)
	}
	launch.enter(StateBuilding)

	spawn, err := l.build(request)
	if err != nil {
		return nil, launch.fail(classify(err, KindInvalidRequest, "build"))
	}
	launch.logger = launch.logger.With("executable", spawn.Executable)

	set, err := pipes.NewSet()
	if err != nil {
		return nil, launch.fail(pipeError(err))
	}
	spawn.Pipes = set
	launched := false
	defer func() {
		if !launched {
			set.Close()
		}
	}()
	launch.enter(StatePipesReady)

	launch.enter(StateAuthorizing)
	if err := l.switcher.Authorize(spawn); err != nil {
		return nil, launch.fail(classify(err, KindInvalidRequest, "authorize"))
	}
	if err := ctx.Err(); err != nil {
		return nil, launch.fail(&Error{Kind: KindProcessCreation, Op: "spawn", Message: "launch cancelled", Err: err})
	}

	launch.enter(StateSpawning)
	descriptor, err := l.descriptors.Build(l.principal)
	if err != nil {
		return nil, launch.fail(&Error{Kind: KindSecurityConfiguration, Op: "spawn", Message: "building access descriptor", Err: err})
	}
	defer descriptor.Release()
	spawn.Descriptor = descriptor

	child, err := l.switcher.Start(spawn)
	if err != nil {
		return nil, launch.fail(spawnError(err))
	}
	if err := set.CloseChildEnds(); err != nil {
		launch.logger.Warn("closing child pipe ends", "error", err)
	}

	if l.switcher.ProbesLiveness() {
		if err := l.probe(child, l.waitFor(request.Interpreter)); err != nil {
			return nil, launch.fail(classify(err, KindProcessCreation, "liveness"))
		}
	}

	launched = true
	launch.enter(StateRunning)
	process := newLaunchedProcess(child,
		set.Stdin.TakeParentEnd(),
		set.Stdout.TakeParentEnd(),
		set.Stderr.TakeParentEnd())

	attributes := []any{"pid", process.Pid}
	if digest, err := binhash.HashFile(spawn.Executable); err == nil {
		attributes = append(attributes, "fingerprint", digest.String())
	}
	launch.logger.Info("interpreter started", attributes...)
	return process, nil
}

// build resolves the executable and arguments, picks the profile
// directory, and builds the environment block.
func (l *Launcher) build(request *Request) (*Spawn, error) {
	if isNilIdentity(request.Identity) {
		return nil, invalidRequest("identity is required")
	}
	if request.Interpreter == nil {
		return nil, invalidRequest("interpreter descriptor is required")
	}
	if err := request.Interpreter.Validate(); err != nil {
		return nil, invalidRequest("%v", err)
	}

	arguments := argv.Tokenize(request.CommandLine)
	executable := request.Executable
	if executable == "" {
		executable = request.Interpreter.Executable
	}
	commandLine := strings.TrimSpace(request.CommandLine)
	if executable == "" {
		if len(arguments) == 0 {
			return nil, invalidRequest("executable and command line are both empty")
		}
		executable, arguments = arguments[0], arguments[1:]
	} else if commandLine == "" {
		commandLine = argv.Quote(executable)
	} else {
		commandLine = argv.Quote(executable) + " " + commandLine
	}

	userName := request.UserName
	if userName == "" {
		userName = request.Identity.Subject()
	}

	profilePath := request.ProfilePath
	if profilePath == "" {
		profilePath = request.WorkingDirectory
	}
	if profilePath == "" {
		if homed, ok := request.Identity.(interface{ HomeDirectory() string }); ok {
			profilePath = homed.HomeDirectory()
		}
	}
	if profilePath == "" {
		profilePath = rootDirectory
	}
	workingDirectory := request.WorkingDirectory
	if workingDirectory == "" {
		workingDirectory = profilePath
	}

	environment := hostenv.Build(hostenv.Options{
		Interpreter: request.Interpreter,
		ProfilePath: profilePath,
		UserName:    userName,
		Lookup:      l.hostEnv,
		Platform:    l.platform,
		Optional:    l.optional,
		Extra:       request.ExtraEnv,
	})

	return &Spawn{
		Executable:       executable,
		Arguments:        arguments,
		CommandLine:      commandLine,
		Environment:      environment,
		WorkingDirectory: workingDirectory,
		UserName:         hostenv.UserName(userName),
		Identity:         request.Identity,
	}, nil
}

func (l *Launcher) waitFor(descriptor *interpreter.Descriptor) time.Duration {
	if descriptor != nil && descriptor.LivenessWait > 0 {
		return descriptor.LivenessWait
	}
	return l.livenessWait
}

// probe watches child for up to wait. A child still running, or one
// that exited with status 0, passes. A failure status is reaped and
// translated.
func (l *Launcher) probe(child Child, wait time.Duration) error {
	deadline := l.clock.After(wait)
	for expired := false; ; {
		exited, err := child.Exited()
		if err != nil {
			child.Kill()
			child.Wait()
			return &Error{Kind: KindProcessCreation, Op: "liveness", Message: "polling child", Err: err}
		}
		if exited {
			code, err := child.Wait()
			if err != nil {
				return &Error{Kind: KindProcessCreation, Op: "liveness", Err: err}
			}
			if code == 0 {
				return nil
			}
			kind := KindProcessCreation
			if exitcode.IsAuthentication(code) {
				kind = KindAuthentication
			}
			return &Error{Kind: kind, Op: "liveness", Code: code, Message: exitcode.Describe(code)}
		}
		if expired {
			return nil
		}
		select {
		case <-deadline:
			expired = true
		case <-l.clock.After(livenessPollInterval):
		}
	}
}

// pipeError maps a pipe fabric failure to its launch error kind.
func pipeError(err error) *Error {
	kind := KindResourceExhaustion
	if errors.Is(err, pipes.ErrInheritance) {
		kind = KindSecurityConfiguration
	}
	launchErr := &Error{Kind: kind, Op: "pipes", Err: err}
	if code := osErrorCode(err); code != 0 {
		launchErr.Code = code
		launchErr.Message = exitcode.OSMessage(code)
	}
	return launchErr
}

// spawnError classifies a switcher Start failure, attaching the OS
// error code and its system message.
func spawnError(err error) *Error {
	launchErr := classify(err, KindProcessCreation, "spawn")
	if launchErr.Code == 0 {
		if code := osErrorCode(err); code != 0 {
			launchErr.Code = code
			if launchErr.Message == "" {
				launchErr.Message = exitcode.OSMessage(code)
			}
		}
	}
	return launchErr
}

// launchState logs transitions for one launch.
type launchState struct {
	logger  *slog.Logger
	current State
}

func (s *launchState) enter(state State) {
	s.current = state
	s.logger.Debug("launch state", "state", state.String())
}

func (s *launchState) fail(err *Error) error {
	s.logger.Debug("launch state", "state", StateFailed.String(), "from", s.current.String(), "kind", err.Kind.String())
	s.current = StateFailed
	s.logger.Warn("launch failed", "error", err)
	return err
}
