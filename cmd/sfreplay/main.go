package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/survivalfly"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/journal"
	"github.com/oomph-ac/survivalfly/punishment"
	"github.com/oomph-ac/survivalfly/session"
	"github.com/oomph-ac/survivalfly/settings"
	"github.com/sirupsen/logrus"
)

// The following program replays a recorded movement stream through the SurvivalFly check and prints a
// summary per entity.
func main() {
	var (
		configPath  = flag.String("config", "survivalfly.toml", "path of the settings file, created with defaults if missing")
		inPath      = flag.String("in", "", "recording to replay")
		journalPath = flag.String("journal", "", "sqlite database violations are written to, overrides the settings")
		debug       = flag.Bool("debug", false, "log a trace of every validated move")
	)
	flag.Parse()
	if *inPath == "" {
		fmt.Println("Usage: sfreplay -in <recording> [-config <settings.toml>] [-journal <violations.db>] [-debug]")
		os.Exit(2)
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
	log.Level = logrus.InfoLevel

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("unable to initialize sentry: %v", err)
		}
	}

	conf, err := readSettings(*configPath, log)
	if err != nil {
		log.Fatalln(err)
	}
	if *debug {
		conf.SurvivalFly.Debug = true
	}
	if conf.SurvivalFly.Debug {
		log.Level = logrus.DebugLevel
	}
	if *journalPath != "" {
		conf.Journal.Enabled, conf.Journal.Path = true, *journalPath
	}
	if !conf.SurvivalFly.Enabled {
		log.Infof("SurvivalFly is disabled in %s, nothing to replay", *configPath)
		return
	}

	if addr := os.Getenv("STATSVIEW_ADDR"); addr != "" || conf.StatsView.Enabled {
		if addr == "" {
			addr = conf.StatsView.Addr
		}
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	thresholds, err := conf.Thresholds()
	if err != nil {
		log.Fatalln(err)
	}
	var actions detection.Actions = punishment.NewList(thresholds, log, nil)
	if conf.Journal.Enabled {
		db, err := journal.Open(context.Background(), conf.Journal.Path)
		if err != nil {
			log.Fatalln(err)
		}
		defer db.Close()
		actions = journal.NewRecorder(db, actions, log)
	}

	rec, err := session.DecodeRecordingFile(*inPath)
	if err != nil {
		log.Fatalln(err)
	}

	tracker := survivalfly.New(survivalfly.Config{
		Options: conf.Options(),
		Log:     log,
		Shards:  conf.Tracker.Shards,
		Workers: conf.Tracker.Workers,
	})
	sessions, err := session.Replay(rec, session.ReplayConfig{Tracker: tracker, Actions: actions, Log: log})
	tracker.Close()
	if err != nil {
		log.Errorf("replay stopped early: %v", err)
	}

	for _, s := range sessions {
		st := s.Stats()
		log.Infof("%s: %d moves, %d corrected, %d silently corrected, %d hovers, max violations %.2f %s",
			s.Name(), st.Moves, st.Corrections, st.SilentCorrections, st.Hovers, st.MaxViolations, tagSummary(st.Tags))
	}
}

// readSettings reads the settings from the file at path, or creates the file if it does not yet exist.
func readSettings(path string, log *logrus.Logger) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
		log.Infof("created default settings at %s", path)
	}
	return settings.Load(path)
}

func tagSummary(tags map[string]int) string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tags[names[i]] != tags[names[j]] {
			return tags[names[i]] > tags[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, tags[name]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
