package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/littlebeepers/internal/care"
	"github.com/roach88/littlebeepers/internal/config"
	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/playdate"
	"github.com/roach88/littlebeepers/internal/store"
	"github.com/roach88/littlebeepers/internal/voice"
)

// app is everything a command needs, wired from config and flags.
type app struct {
	cfg       config.Config
	store     *store.Store
	keeper    *care.Keeper
	engine    *playdate.Engine
	sampler   voice.Sampler
	now       func() time.Time
	logger    *slog.Logger
	formatter *OutputFormatter
	prompt    *prompter
}

// withApp opens the app for cmd, runs fn, and closes the store.
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.store.Close(); cerr != nil {
			a.logger.Warn("close store", "error", cerr)
		}
	}()
	return fn(cmd.Context(), a)
}

func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Conversation and logs stay off stdout in JSON mode
		Verbose:   opts.Verbose,
	}

	logger := opts.logger
	if logger == nil {
		logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, "load config", err)
	}
	formatter.VerboseLog("Using pet collection %s", cfg.DataPath)

	st, err := store.Open(cfg.DataPath, store.WithLogger(logger))
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, "open store", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var speaker care.Speaker = voice.Mute{}
	if cfg.Voice == config.VoiceNotes {
		w := formatter.Writer
		if formatter.JSON() {
			w = formatter.GetErrWriter()
		}
		speaker = voice.NoteSpeaker{W: w}
	}

	engineOpts := []playdate.Option{
		playdate.WithClock(now),
		playdate.WithSpeaker(speaker),
		playdate.WithLogger(logger),
	}
	if opts.SessionIDs != nil {
		engineOpts = append(engineOpts, playdate.WithSessionIDs(opts.SessionIDs))
	}

	promptOut := formatter.Writer
	if formatter.JSON() {
		promptOut = formatter.GetErrWriter()
	}

	return &app{
		cfg:   cfg,
		store: st,
		keeper: care.New(st, rng,
			care.WithClock(now),
			care.WithSpeaker(speaker),
			care.WithLogger(logger),
		),
		engine:    playdate.New(st, rng, engineOpts...),
		sampler:   voice.DefaultSampler(),
		now:       now,
		logger:    logger,
		formatter: formatter,
		prompt:    newPrompter(cmd.InOrStdin(), promptOut),
	}, nil
}

// loadConfig resolves the config file and environment, then applies flags.
func loadConfig(opts *RootOptions) (config.Config, error) {
	path, required := opts.Config, true
	if path == "" {
		path, required = config.DefaultFile, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, err
	}

	if opts.Data != "" {
		cfg.DataPath = opts.Data
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Mute {
		cfg.Voice = config.VoiceMute
	}
	return cfg, cfg.Validate()
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// say prints one line of conversation.
func (a *app) say(format string, args ...any) {
	a.formatter.Say(format, args...)
}

// choosePet resolves a 1-based collection position, from arg when given or
// by asking. The listing shows each pet with its status.
func (a *app) choosePet(ctx context.Context, arg, heading, question string) (pet.Record, error) {
	records, err := a.keeper.Pets(ctx)
	if err != nil {
		return pet.Record{}, err
	}
	if len(records) == 0 {
		return pet.Record{}, errNoPets
	}

	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(records) {
			return pet.Record{}, fmt.Errorf("%w: %q (have %d)", care.ErrNoSuchPet, arg, len(records))
		}
		return records[n-1], nil
	}

	a.say("\n%s", heading)
	for i, rec := range records {
		a.say("%d. %s (%s, %s)", i+1, rec.Name, rec.Species, status(rec))
	}
	n, err := a.prompt.choose(question, len(records))
	if err != nil {
		return pet.Record{}, err
	}
	return records[n-1], nil
}

func status(rec pet.Record) string {
	if rec.Released {
		return "released"
	}
	return "active"
}

var (
	// errNoPets means the collection is empty.
	errNoPets = errors.New("no pets in the collection")

	// errTooFewChosen means selection ended with fewer than two pets.
	errTooFewChosen = errors.New("not enough pets selected")
)

// explain maps a failure to an envelope code, an exit code, and what the
// operator is told.
func explain(err error) (code string, exit int, message string) {
	switch {
	case errors.Is(err, errCancelled):
		return ErrCodeInvalidInput, ExitFailure, "Cancelled or invalid selection."
	case errors.Is(err, errNoPets):
		return ErrCodeNoSuchPet, ExitFailure, "No pets found. Create one first!"
	case errors.Is(err, care.ErrNoSuchPet):
		return ErrCodeNoSuchPet, ExitFailure, err.Error()
	case errors.Is(err, care.ErrReleased):
		return ErrCodeReleased, ExitFailure, "That pet has already been released and cannot be visited."
	case errors.Is(err, errTooFewChosen):
		return ErrCodeNotEnough, ExitFailure, "Not enough pets selected. Playdate canceled."
	case errors.Is(err, playdate.ErrNotEnoughParticipants):
		return ErrCodeNotEnough, ExitFailure, "You need at least 2 active (not released) pets to host a playdate!"
	case errors.Is(err, playdate.ErrInvalidChoice):
		return ErrCodeInvalidInput, ExitFailure, "Invalid choice."
	case errors.Is(err, playdate.ErrNoSourceLetters):
		return ErrCodeNoLetters, ExitFailure, "None of these pets know a single letter to share. Playdate canceled."
	case errors.Is(err, voice.ErrNoWords):
		return ErrCodeNoWords, ExitFailure, "This pet doesn't know any words to sample!"
	case errors.Is(err, pet.ErrDuplicateIdentity):
		return ErrCodeStore, ExitFailure, "A pet with that name was created at the very same moment. Try again."
	default:
		return ErrCodeStore, ExitCommandError, err.Error()
	}
}

// fail reports err through the formatter and returns the matching
// ExitError.
func (a *app) fail(err error) error {
	code, exit, message := explain(err)
	_ = a.formatter.Error(code, message, nil)
	return WrapExitError(exit, message, err)
}
