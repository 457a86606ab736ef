package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mgpai22/srtcue/internal/language"
	"github.com/mgpai22/srtcue/internal/source"
	"github.com/mgpai22/srtcue/internal/subtitle"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "Summarize the cues in a SubRip file",
	Long: `Parse a SubRip file (or every .srt in an archive) and print a short
summary: cue count, how many cues carry an index, first and last cue time,
detected language and how many lines fell outside any cue.

Examples:
  srtcue inspect movie.srt
  srtcue inspect subs.zip --skip-malformed`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		Bool("skip-malformed", false, "Skip cues with malformed timestamps instead of failing")
	inspectCmd.Flags().
		Bool("no-charset", false, "Disable charset detection and read input as UTF-8")
}

// what inspect reports for one document
type summary struct {
	Name      string
	Charset   string
	Cues      int
	Indexed   int
	Unindexed int
	Empty     int
	First     time.Duration
	Last      time.Duration
	Dropped   int
	Skipped   int
	Language  *language.Detection
}

func summarize(name, charsetName string, result *subtitle.Result) summary {
	s := summary{
		Name:    name,
		Charset: charsetName,
		Cues:    len(result.Cues),
		Dropped: result.Dropped,
		Skipped: len(result.Skipped),
	}

	for i, cue := range result.Cues {
		if cue.HasIndex() {
			s.Indexed++
		} else {
			s.Unindexed++
		}
		if len(cue.Lines) == 0 {
			s.Empty++
		}
		if i == 0 || cue.Start() < s.First {
			s.First = cue.Start()
		}
		if cue.End() > s.Last {
			s.Last = cue.End()
		}
	}

	if detection, ok := language.Detect(result.Cues); ok {
		s.Language = &detection
	}
	return s
}

func (s summary) Span() time.Duration {
	if s.Cues == 0 || s.Last < s.First {
		return 0
	}
	return s.Last - s.First
}

func (s summary) print(w io.Writer) {
	fmt.Fprintf(w, "%s\n", s.Name)
	if s.Charset != "" {
		fmt.Fprintf(w, "  Charset: %s\n", s.Charset)
	}
	fmt.Fprintf(w, "  Cues: %d (indexed %d, unindexed %d, empty %d)\n",
		s.Cues, s.Indexed, s.Unindexed, s.Empty)
	if s.Cues > 0 {
		fmt.Fprintf(w, "  First: %s\n", formatMillis(s.First))
		fmt.Fprintf(w, "  Last: %s\n", formatMillis(s.Last))
		fmt.Fprintf(w, "  Span: %s\n", s.Span())
	}
	if s.Language != nil {
		reliability := "unreliable"
		if s.Language.Reliable {
			reliability = "reliable"
		}
		fmt.Fprintf(w, "  Language: %s (%s, %.2f, %s)\n",
			s.Language.Name, s.Language.Code, s.Language.Confidence, reliability)
	}
	fmt.Fprintf(w, "  Dropped lines: %d\n", s.Dropped)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped cues: %d\n", s.Skipped)
	}
}

func formatMillis(d time.Duration) string {
	return subtitle.TimestampFromMillis(d.Milliseconds()).String()
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	readOpts, parseOpts := pipelineOptions(cmd)
	parseOpts.OnSkip = skipLogger()

	docs, err := source.ReadFile(ctx, path, readOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, doc := range docs {
		fr := source.ParseDocument(doc, parseOpts)
		if fr.Err != nil {
			return fr.Err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		summarize(fr.Name, fr.Charset, fr.Result).print(out)
	}
	return nil
}
