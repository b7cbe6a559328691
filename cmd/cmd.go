package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thiagokokada/jjk-go/internal/buildinfo"
	"github.com/thiagokokada/jjk-go/internal/graph"
	"github.com/thiagokokada/jjk-go/internal/tui"
	"github.com/thiagokokada/jjk-go/internal/vcs"
	"github.com/thiagokokada/jjk-go/internal/vcs/gitrepo"
	"github.com/thiagokokada/jjk-go/internal/vcs/jj"
)

func Run() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	fs := flag.NewFlagSet("jjk-go", flag.ContinueOnError)
	limit := fs.Int("limit", vcs.DefaultPageSize, "number of revisions to load per page")
	mode := fs.String("mode", tui.ThemeAuto.String(), "color mode: auto, light, or dark")
	noWatch := fs.Bool("nowatch", false, "disable automatic reload when repository changes")
	noSyntax := fs.Bool("nosyntax", false, "disable syntax highlighting in the diff viewer")
	plain := fs.Bool("plain", false, "print the graph to stdout and exit")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.VersionWithTags())
		return nil
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	repoPath := "."
	remaining := fs.Args()
	if len(remaining) > 0 {
		repoPath = remaining[len(remaining)-1]
	}

	source, err := openSource(repoPath)
	if err != nil {
		return err
	}
	svc := vcs.NewService(source, *limit)

	if *plain {
		return printPlain(os.Stdout, svc)
	}
	return tui.Run(tui.Options{
		Service: svc,
		Theme:   tui.ThemePreferenceFromString(*mode),
		Watch:   !*noWatch,
		Syntax:  !*noSyntax,
	})
}

// openSource prefers jj; plain git repositories get the read-only
// native backend instead of an error.
func openSource(repoPath string) (vcs.Source, error) {
	source, err := jj.Open(repoPath)
	if err == nil {
		return source, nil
	}
	slog.Debug("jj source unavailable, trying native git", slog.Any("error", err))
	gitSource, gitErr := gitrepo.Open(repoPath)
	if gitErr != nil {
		return nil, fmt.Errorf("open %s: not a jj repository (%v) and not a git repository (%v)", repoPath, err, gitErr)
	}
	return gitSource, nil
}

// printPlain writes one line per revision, graph gutter first, in the
// same order the interactive viewer shows them.
func printPlain(w io.Writer, svc *vcs.Service) error {
	if err := svc.Reload(context.Background()); err != nil {
		return err
	}
	entries, rows := svc.Entries()
	for i, e := range entries {
		var b strings.Builder
		b.WriteString(graph.RenderRowPlain(rows[i]))
		b.WriteString(" ")
		b.WriteString(e.ChangeID)
		if e.Author != "" {
			b.WriteString(" ")
			b.WriteString(e.Author)
		}
		if e.Timestamp != "" {
			b.WriteString(" ")
			b.WriteString(e.Timestamp)
		}
		if len(e.Bookmarks) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(e.Bookmarks, ","))
			b.WriteString("]")
		}
		description := e.Description
		if description == "" {
			description = "(no description)"
		}
		b.WriteString(" ")
		b.WriteString(description)
		b.WriteString("\n")
		if _, err := w.Write([]byte(b.String())); err != nil {
			return err
		}
	}
	return nil
}
