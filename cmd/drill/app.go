package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/domain/srs"
	"github.com/phrazzld/scry-drill/internal/events"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/platform/sheet"
	"github.com/phrazzld/scry-drill/internal/platform/terminal"
	"github.com/phrazzld/scry-drill/internal/service/drill"
	"github.com/phrazzld/scry-drill/internal/store"
)

// application holds the loaded configuration and process resources of one
// command invocation.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	clock  func() time.Time

	answerKeys func(path string) (store.AnswerKeySource, error)
	records    func(path string, logger *slog.Logger) store.RecordStore
}

// inputs is everything a session or listing is built from.
type inputs struct {
	key       *domain.AnswerKey
	set       *drill.RecordSet
	scheduler *drill.Scheduler
	sink      store.RecordSink
	savePath  string
}

func newApplication(cmd *cobra.Command, d deps) (*application, error) {
	configFile, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := d.Logger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		slog.String("answer_sheet", cfg.Session.AnswerSheet),
		slog.String("grade_sheet", cfg.Session.GradeSheet),
		slog.Bool("include_new", cfg.Session.IncludeNew))

	return &application{
		cfg:    cfg,
		logger: log,
		in:     d.In,
		out:    d.Out,
		clock:  d.Clock,

		answerKeys: d.AnswerKeys,
		records:    d.Records,
	}, nil
}

// load reads the answer sheet and, if configured, the grade sheet, and
// builds the working set.
func (a *application) load(ctx context.Context) (*inputs, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	keySource, err := a.answerKeys(a.cfg.Session.AnswerSheet)
	if err != nil {
		return nil, err
	}
	key, err := keySource.LoadAnswerKey(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("answer sheet loaded",
		slog.String("path", a.cfg.Session.AnswerSheet),
		slog.Int("prompts", key.Len()))

	var (
		saved    []*domain.Record
		savePath = a.cfg.Session.GradeSheet
	)
	if savePath == "" {
		savePath = sheet.OutputPath(a.cfg.Session.AnswerSheet, a.cfg.Session.OutputPrefix)
	} else {
		saved, err = a.records(savePath, log).LoadRecords(ctx)
		switch {
		case store.IsNotFoundError(err):
			log.Info("grade sheet not found, starting fresh", slog.String("path", savePath))
			saved = nil
		case err != nil:
			return nil, err
		default:
			log.Info("grade sheet loaded",
				slog.String("path", savePath),
				slog.Int("records", len(saved)))
		}
	}

	scheduler := drill.NewScheduler(srs.NewDefaultService(), log)
	set, err := scheduler.Initialize(key, saved, domain.DaysAt(a.clock()), drill.InitOptions{
		IncludeNew: a.cfg.Session.IncludeNew,
	})
	if err != nil {
		return nil, err
	}

	return &inputs{
		key:       key,
		set:       set,
		scheduler: scheduler,
		sink:      a.records(savePath, log),
		savePath:  savePath,
	}, nil
}

// runSession drills until the user stops, then saves the grade sheet.
// Nothing is written when the session fails.
func (a *application) runSession(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	in, err := a.load(ctx)
	if err != nil {
		return err
	}

	dispatcher := events.NewDispatcher(a.logger)
	events.NewLogHandler(a.logger).Subscribe(dispatcher)

	session, err := drill.NewSession(drill.SessionParams{
		AnswerKey: in.key,
		Records:   in.set,
		Scheduler: in.scheduler,
		Port:      terminal.New(a.in, a.out),
		Emitter:   dispatcher,
		Clock:     a.clock,
		Logger:    a.logger,
	})
	if err != nil {
		return err
	}
	a.logger.Info("session ready",
		slog.String("session_id", session.ID().String()),
		slog.String("save_path", in.savePath))

	fmt.Fprintln(a.out, "Starting app")

	records, err := session.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Exiting")

	if err := in.sink.SaveRecords(ctx, records); err != nil {
		return err
	}

	stats := session.Stats()
	fmt.Fprintf(a.out, "Drilled %d, correct %d. Grades saved to %s\n",
		stats.Drilled, stats.Correct, in.savePath)
	return nil
}

// list prints every prompt ranked by its current retention score, lowest
// first.
func (a *application) list(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	in, err := a.load(ctx)
	if err != nil {
		return err
	}

	ranked, err := in.scheduler.Rank(in.set, domain.DaysAt(a.clock()))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Prompt\tScore\tCorrect\tLast Review")
	fmt.Fprintln(w, "------\t-----\t-------\t-----------")
	for _, r := range ranked {
		fmt.Fprintf(w, "%s\t%.4f\t%d\t%s\n",
			r.Prompt, r.RetentionScore, r.CorrectCount,
			r.LastReviewed.Time().Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
