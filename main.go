package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalsky/app"
	"github.com/CrestNiraj12/terminalsky/infra/auth"
	"github.com/CrestNiraj12/terminalsky/infra/bsky"
	"github.com/CrestNiraj12/terminalsky/infra/config"
	"github.com/CrestNiraj12/terminalsky/infra/editor"
	"github.com/CrestNiraj12/terminalsky/infra/logger"
	"github.com/CrestNiraj12/terminalsky/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalsky [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TerminalSky %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		fmt.Println(envHelp())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logging goes to a file; the terminal belongs to the TUI.
	logFile, err := logger.OpenFile(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	root := logger.New(logger.Options{Level: cfg.LogLevel, Format: "json", Writer: logFile})
	v, _, _ := resolvedRuntimeVersionInfo(version, commit, date)
	root.Info().Str("version", v).Str("service", cfg.ServiceURL).Msg("starting")

	// 3. Build infrastructure.
	sessions := auth.NewSessionStore()
	client := bsky.NewClient(cfg.ServiceURL, sessions, logger.Named(root, "bsky"))

	// 4. Build services (concrete types satisfy app.* interfaces).
	searchSvc := bsky.NewSearchService(client, cfg.TimelineLimit).WithActorLimit(cfg.ActorLimit)
	var fullText app.FullTextSearcher
	if cfg.FullTextSearch {
		fullText = searchSvc
	}

	identifier := cfg.Identifier
	if identifier == "" {
		if st, err := config.LoadUIState(cfg.UIStatePath); err != nil {
			root.Warn().Err(err).Msg("reading ui state")
		} else {
			identifier = st.Identifier
		}
	}

	// 5. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Session:         bsky.NewSessionService(client, cfg.DefaultDomain),
		Timeline:        bsky.NewTimelineService(client),
		Post:            bsky.NewPostService(client),
		Account:         bsky.NewAccountService(client),
		Search:          searchSvc,
		FullText:        fullText,
		Editor:          editor.NewEnvEditor(),
		TimelineLimit:   cfg.TimelineLimit,
		ActorLimit:      cfg.ActorLimit,
		RefreshInterval: cfg.RefreshInterval(),
		ImagePreview:    cfg.ImagePreview,
		StatePath:       cfg.UIStatePath,
		Identifier:      identifier,
		Password:        cfg.Password,
		Log:             logger.Named(root, "tui"),
	})

	// 6. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		root.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "terminalsky: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}
	root.Info().Msg("bye")
}

func envHelp() string {
	return strings.Join([]string{
		"",
		"Environment:",
		"  TERMINALSKY_IDENTIFIER       handle or email to pre-fill the login form",
		"  TERMINALSKY_APP_PASSWORD     app password; with IDENTIFIER logs in automatically",
		"  TERMINALSKY_SERVICE          PDS URL (default https://bsky.social)",
		"  TERMINALSKY_FULLTEXT_SEARCH  use the service's post search",
		"  TERMINALSKY_IMAGE_PREVIEW    draw image thumbnails (default true)",
		"  TERMINALSKY_LOG_FILE         log file path",
		"  TERMINALSKY_LOG_LEVEL        trace, debug, info, warn or error",
	}, "\n")
}
