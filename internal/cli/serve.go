package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/glazecalc/internal/httpapi"
	"github.com/roach88/glazecalc/internal/library"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	DBPath  string
	Origins []string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the glaze chemistry HTTP API",
		Long: `Serve the glaze chemistry HTTP API.

Compute endpoints (design, analyze, variation, scale) are stateless.
Saved recipes require a database path; without --db the recipe archive
endpoints respond 503.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to the recipe archive database (empty disables saving)")
	cmd.Flags().StringSliceVar(&opts.Origins, "origin", nil, "allowed CORS origins (repeatable, default all)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	ops, db, _, err := loadOps()
	if err != nil {
		return err
	}

	lib, err := library.LoadReferences()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading reference glazes", err)
	}

	var archive *library.Archive
	if opts.DBPath != "" {
		archive, err = library.OpenArchive(opts.DBPath)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("opening recipe archive %s", opts.DBPath), err)
		}
		defer archive.Close()
	}

	handler := httpapi.NewHandler(ops, db, lib, archive)
	router := httpapi.NewRouter(handler, opts.Origins)

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Serving glaze chemistry API on %s\n", opts.Addr)
	slog.Info("server starting", "addr", opts.Addr, "archive", opts.DBPath != "")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return WrapExitError(ExitCommandError, "server stopped", err)
	}
	return nil
}
