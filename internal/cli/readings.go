package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/database/readings"
	"github.com/mrlokans/gobiblia/internal/entities"
)

// RecordCommand records a reading from the command line.
type RecordCommand struct {
	DatabasePath string
	Version      string
	Book         string
	Chapter      int
	Verse        int
	Notes        string
	Favorite     bool
	favoriteSet  bool

	Out io.Writer
}

func NewRecordCommand(databasePath, defaultVersion string) *RecordCommand {
	return &RecordCommand{DatabasePath: databasePath, Version: defaultVersion, Out: os.Stdout}
}

func (cmd *RecordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the reading progress database")
	fs.StringVar(&cmd.Version, "version", cmd.Version, "Translation code")
	fs.StringVar(&cmd.Book, "book", "", "Book key, e.g. gn (required)")
	fs.IntVar(&cmd.Chapter, "chapter", 0, "Chapter number (required)")
	fs.IntVar(&cmd.Verse, "verse", 0, "Verse number")
	fs.StringVar(&cmd.Notes, "notes", "", "Notes to keep with the reading")
	fs.BoolVar(&cmd.Favorite, "favorite", false, "Mark the reading as favorite")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s record -book <key> -chapter <n> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Record that a chapter was read today. Recording the same version,\n")
		fmt.Fprintf(os.Stderr, "book and chapter again replaces the earlier entry.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s record -book jo -chapter 3 -notes \"Nicodemos\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "favorite" {
			cmd.favoriteSet = true
		}
	})

	if cmd.Book == "" || cmd.Chapter <= 0 {
		return fmt.Errorf("required flags -book and -chapter not provided")
	}
	if cmd.Verse < 0 {
		return fmt.Errorf("invalid -verse: %d", cmd.Verse)
	}

	return nil
}

func (cmd *RecordCommand) Run() error {
	repo, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	reading := readings.Reading{
		Version: cmd.Version,
		Book:    cmd.Book,
		Chapter: cmd.Chapter,
		Notes:   cmd.Notes,
	}
	if cmd.Verse > 0 {
		verse := cmd.Verse
		reading.Verse = &verse
	}
	if cmd.favoriteSet {
		favorite := cmd.Favorite
		reading.Favorite = &favorite
	}

	if err := repo.RecordReadingWith(context.Background(), reading); err != nil {
		return fmt.Errorf("failed to record reading: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Recorded %s %s %d\n", reading.Version, reading.Book, reading.Chapter)
	return nil
}

// HistoryCommand lists recent readings.
type HistoryCommand struct {
	DatabasePath  string
	Limit         int
	OnlyFavorites bool
	JSON          bool

	Out io.Writer
}

func NewHistoryCommand(databasePath string) *HistoryCommand {
	return &HistoryCommand{DatabasePath: databasePath, Out: os.Stdout}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the reading progress database")
	fs.IntVar(&cmd.Limit, "limit", readings.DefaultHistoryLimit, "Maximum number of readings to list")
	fs.BoolVar(&cmd.OnlyFavorites, "favorites", false, "List favorite readings only")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON instead of a table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List recorded readings, most recent first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	repo, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	var records []entities.ReadingRecord
	if cmd.OnlyFavorites {
		records = repo.GetFavorites(ctx, cmd.Limit)
	} else {
		records = repo.GetHistory(ctx, cmd.Limit)
	}

	if cmd.JSON {
		return writeJSON(cmd.Out, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.Out, "No readings recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tVERSION\tBOOK\tCHAPTER\tFAVORITE\tNOTES")
	for _, r := range records {
		chapter := fmt.Sprintf("%d", r.Chapter)
		if r.Verse != nil {
			chapter = fmt.Sprintf("%d:%d", r.Chapter, *r.Verse)
		}
		favorite := ""
		if r.Favorite {
			favorite = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ReadOn, r.Version, r.Book, chapter, favorite, r.Notes)
	}
	return w.Flush()
}

// StatsCommand prints the reading statistics.
type StatsCommand struct {
	DatabasePath string
	JSON         bool

	Out io.Writer
}

func NewStatsCommand(databasePath string) *StatsCommand {
	return &StatsCommand{DatabasePath: databasePath, Out: os.Stdout}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the reading progress database")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON instead of text")

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	repo, err := openStore(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	stats, err := repo.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	if cmd.JSON {
		return writeJSON(cmd.Out, stats)
	}

	fmt.Fprintf(cmd.Out, "Chapters read:  %d\n", stats.ChaptersRead)
	fmt.Fprintf(cmd.Out, "Days reading:   %d\n", stats.DaysReading)
	fmt.Fprintf(cmd.Out, "Books started:  %d\n", stats.BooksStarted)
	fmt.Fprintf(cmd.Out, "Total readings: %d\n", stats.TotalReadings)
	return nil
}

func openStore(path string) (*readings.Repository, error) {
	repo := readings.Open(path, logger.Silent)
	if !repo.Available() {
		return nil, fmt.Errorf("reading store at %s is unavailable", path)
	}
	return repo, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
