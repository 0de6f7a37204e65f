package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/platform/sheet"
	"github.com/phrazzld/scry-drill/internal/store"
)

const flagConfig = "config"

// deps are the process resources the commands run against.
type deps struct {
	In     io.Reader
	Out    io.Writer
	Clock  func() time.Time
	Logger func(cfg config.LogConfig) (*slog.Logger, error)

	// AnswerKeys and Records open storage by path.
	AnswerKeys func(path string) (store.AnswerKeySource, error)
	Records    func(path string, logger *slog.Logger) store.RecordStore
}

func defaultDeps() deps {
	return deps{
		In:         os.Stdin,
		Out:        os.Stdout,
		Clock:      time.Now,
		Logger:     logger.Setup,
		AnswerKeys: sheet.OpenAnswerKey,
		Records:    sheet.OpenRecords,
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "drill",
		Short: "Drill flashcards, weakest first",
		Long: `Drill asks the prompts of an answer sheet one at a time, always picking
the one you are most likely to have forgotten. Progress is saved to a grade
sheet when you stop, so the next session continues where this one ended.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(cmd, d)
			if err != nil {
				return err
			}
			return app.runSession(cmd.Context())
		},
	}

	root.PersistentFlags().String(flagConfig, "", "config file (default: ./config/drill.yaml or $HOME/.config/drill/drill.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newListCmd(d))
	root.SetIn(d.In)
	root.SetOut(d.Out)

	return root
}

func newListCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List prompts by retention score without drilling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(cmd, d)
			if err != nil {
				return err
			}
			return app.list(cmd.Context())
		},
	}
}
