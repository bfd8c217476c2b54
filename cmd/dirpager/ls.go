package main

import (
	"fmt"
	"path/filepath"

	mfs "github.com/CageChen/dirpager/internal/fs"
	"github.com/CageChen/dirpager/internal/listing"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	var (
		cursor   string
		limit    int
		only     string
		safeMode bool
		repo     string
		ref      string
	)

	cmd := &cobra.Command{
		Use:   "ls DIR",
		Short: "Print one page of a directory listing",
		Long: `Print one page of DIR: items one per line, then "next: <token>" when
more entries remain. Pass the token back with --cursor to get the next page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				level = "warn"
			}
			logger, err := newLogger(level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			dir := args[0]
			var fsys mfs.FileSystem
			if ref != "" {
				fsys = mfs.NewGitFS(repo, ref)
			} else {
				if abs, err := filepath.Abs(dir); err == nil {
					dir = abs
				}
				fsys = mfs.NewLocalFS("")
			}

			lim := listing.Limit{}
			if cmd.Flags().Changed("limit") {
				lim = listing.Max(limit)
			}

			l := listing.New(fsys, listing.WithSafeMode(safeMode), listing.WithLogger(logger))

			var page listing.Page
			switch only {
			case "", "all":
				page, err = l.ListAll(dir, cursor, lim)
			case "dirs", "directories":
				page, err = l.ListDirectories(dir, cursor, lim)
			case "files":
				page, err = l.ListFiles(dir, cursor, lim)
			default:
				return fmt.Errorf("invalid --only value %q (want all, dirs or files)", only)
			}
			if err != nil {
				return err
			}

			if page.Status == listing.StatusUnavailable {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: directory unavailable, retry later\n", dir)
			}

			out := cmd.OutOrStdout()
			for _, item := range page.Items {
				fmt.Fprintln(out, item)
			}
			if page.HasMore {
				fmt.Fprintf(out, "next: %s\n", page.NextToken)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cursor, "cursor", "", "Token returned by the previous page")
	flags.IntVarP(&limit, "limit", "n", listing.DefaultLimit, "Page size (negative for unlimited)")
	flags.StringVar(&only, "only", "all", "Entries to list: all, dirs or files")
	flags.BoolVar(&safeMode, "safe-mode", true, "Skip entries that cannot be stat'ed")
	flags.StringVar(&repo, "repo", ".", "Git repository to read when --ref is set")
	flags.StringVar(&ref, "ref", "", "List the tree of this git ref instead of the local disk")

	return cmd
}
