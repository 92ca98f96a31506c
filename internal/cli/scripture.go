package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/gobiblia/internal/scripture"
)

// ReadCommand prints a chapter, a verse or a random verse.
type ReadCommand struct {
	Options scripture.Options
	Version string
	Book    string
	Chapter int
	Verse   int
	Random  bool
	JSON    bool

	Out io.Writer
}

func NewReadCommand(opts scripture.Options) *ReadCommand {
	return &ReadCommand{Options: opts, Out: os.Stdout}
}

func (cmd *ReadCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)

	fs.StringVar(&cmd.Options.BaseURL, "base-url", cmd.Options.BaseURL, "Scripture API base URL")
	fs.StringVar(&cmd.Version, "version", "", "Translation code (defaults to the configured version)")
	fs.StringVar(&cmd.Book, "book", "", "Book key, e.g. sl")
	fs.IntVar(&cmd.Chapter, "chapter", 0, "Chapter number")
	fs.IntVar(&cmd.Verse, "verse", 0, "Verse number; prints the whole chapter when omitted")
	fs.BoolVar(&cmd.Random, "random", false, "Print a random verse, from -book when given")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the API response as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s read -book <key> -chapter <n> [-verse <n>] [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s read -random [-book <key>] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s read -book sl -chapter 23\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s read -version acf -book jo -chapter 3 -verse 16\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s read -random\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !cmd.Random && (cmd.Book == "" || cmd.Chapter <= 0) {
		return fmt.Errorf("required flags -book and -chapter not provided (or use -random)")
	}

	return nil
}

func (cmd *ReadCommand) Run() error {
	client := scripture.NewClient(cmd.Options)
	ctx := context.Background()

	switch {
	case cmd.Random:
		verse, err := client.GetRandomVerse(ctx, cmd.Version, cmd.Book)
		if err != nil {
			return err
		}
		if cmd.JSON {
			return writeJSON(cmd.Out, verse)
		}
		printVerse(cmd.Out, *verse)

	case cmd.Verse > 0:
		verse, err := client.GetVerse(ctx, cmd.Version, cmd.Book, cmd.Chapter, cmd.Verse)
		if err != nil {
			return err
		}
		if cmd.JSON {
			return writeJSON(cmd.Out, verse)
		}
		if verse.Book == nil {
			verse.Book = &scripture.Book{Abbrev: scripture.Abbrev{PT: cmd.Book}}
			verse.Chapter = cmd.Chapter
		}
		printVerse(cmd.Out, *verse)

	default:
		chapter, err := client.GetChapter(ctx, cmd.Version, cmd.Book, cmd.Chapter)
		if err != nil {
			return err
		}
		if cmd.JSON {
			return writeJSON(cmd.Out, chapter)
		}
		fmt.Fprintf(cmd.Out, "%s %d\n\n", bookTitle(chapter.Book), chapter.Chapter.Number)
		for _, v := range chapter.Verses {
			fmt.Fprintf(cmd.Out, "%d %s\n", v.Number, v.Text)
		}
	}

	return nil
}

// SearchCommand searches verses for a word.
type SearchCommand struct {
	Options scripture.Options
	Version string
	Word    string
	JSON    bool

	Out io.Writer
}

func NewSearchCommand(opts scripture.Options) *SearchCommand {
	return &SearchCommand{Options: opts, Out: os.Stdout}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	fs.StringVar(&cmd.Options.BaseURL, "base-url", cmd.Options.BaseURL, "Scripture API base URL")
	fs.StringVar(&cmd.Version, "version", "", "Translation code (defaults to the configured version)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the API response as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search [options] <word>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Word = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if cmd.Word == "" {
		return fmt.Errorf("search term required")
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	client := scripture.NewClient(cmd.Options)

	result, err := client.SearchVerses(context.Background(), cmd.Word, cmd.Version)
	if err != nil {
		return err
	}

	if cmd.JSON {
		return writeJSON(cmd.Out, result)
	}

	fmt.Fprintf(cmd.Out, "%d occurrences of %q in %s\n\n", result.Occurrence, cmd.Word, result.Version)
	for _, v := range result.Verses {
		printVerse(cmd.Out, v)
	}
	return nil
}

func printVerse(w io.Writer, v scripture.Verse) {
	ref := fmt.Sprintf("%d:%d", v.Chapter, v.Number)
	if v.Book != nil {
		ref = bookTitle(*v.Book) + " " + ref
	}
	fmt.Fprintf(w, "%s  %s\n", ref, v.Text)
}

func bookTitle(b scripture.Book) string {
	if b.Name != "" {
		return b.Name
	}
	return b.Abbrev.PT
}
