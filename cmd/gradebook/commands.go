package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gradebook/internal/domain"
)

var (
	scoreFlags  []string
	sortFlag    string
	descFlag    bool
	topFlag     int
	formatFlag  string
	replaceFlag bool
)

// parseScores parses repeated --score subject=value flags
func parseScores(pairs []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		subject, value, ok := strings.Cut(pair, "=")
		subject = strings.TrimSpace(subject)
		if !ok || subject == "" {
			return nil, fmt.Errorf("score %q must have the form subject=value", pair)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("score for %q: %q: %w", subject, value, domain.ErrInvalidNumber)
		}
		scores[subject] = score
	}
	return scores, nil
}

func sortKeyFromFlag() (domain.SortKey, error) {
	if sortFlag == "" {
		sortFlag = cfg.Output.DefaultSort
	}
	key, ok := domain.ParseSortKey(sortFlag)
	if !ok {
		return key, fmt.Errorf("unknown sort key %q (use name or average)", sortFlag)
	}
	return key, nil
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a student record",
	Long: `Adds a student to the roster. Scores are given as repeated
--score subject=value flags; duplicate names are permitted.

Example:
  gradebook add "Alice Chen" --score math=92 --score science=88`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := parseScores(scoreFlags)
		if err != nil {
			return err
		}
		added, err := svc.AddStudent(cmd.Context(), args[0], scores)
		if err != nil {
			return err
		}
		fmt.Println(renderRecordLine("Added", added))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Replace a student's scores",
	Long: `Replaces the scores of the first record matching name. The new scores
mapping is given the same way as for add; omitted subjects are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := parseScores(scoreFlags)
		if err != nil {
			return err
		}
		updated, err := svc.UpdateStudent(cmd.Context(), args[0], scores)
		if err != nil {
			return err
		}
		fmt.Println(renderRecordLine("Updated", updated))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete all records matching a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := svc.DeleteStudent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(renderOK(fmt.Sprintf("Deleted %d record(s) for %q", removed, args[0])))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster",
	Long: `Lists all students. --sort orders the view by name or average without
changing the stored order; --top limits output to the first N records.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := sortKeyFromFlag()
		if err != nil {
			return err
		}

		var records []domain.Record
		if cmd.Flags().Changed("sort") || cmd.Flags().Changed("desc") || topFlag > 0 {
			records, err = svc.ListSorted(cmd.Context(), key, !descFlag, topFlag)
		} else {
			records, err = svc.ListStudents(cmd.Context())
		}
		if err != nil {
			return err
		}

		fmt.Println(renderRoster(records))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search students by name substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := svc.SearchStudents(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println(renderWarn("No matching students found."))
			return nil
		}
		fmt.Println(renderRoster(records))
		return nil
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort the stored roster",
	Long:  `Stably reorders the persisted roster by name or average score.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := sortKeyFromFlag()
		if err != nil {
			return err
		}
		if err := svc.Sort(cmd.Context(), key, !descFlag); err != nil {
			return err
		}
		fmt.Println(renderOK(fmt.Sprintf("Roster sorted by %s", key)))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [name]",
	Short: "Show grade statistics",
	Long: `Without arguments, summarizes every individual score across the
roster. With a name, summarizes that student's scores.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			summary, err := svc.StudentStatistics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(renderSummary(fmt.Sprintf("Statistics for %s", args[0]), summary))
			return nil
		}

		summary, err := svc.Statistics(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderSummary("Roster statistics", summary))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the roster to a file",
	Long: `Writes the roster to path. The format is taken from the file
extension (csv, json, yaml, xlsx) unless forced with --format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.Export(cmd.Context(), args[0], formatFlag)
		if err != nil {
			return err
		}
		fmt.Println(renderOK(fmt.Sprintf("Exported %d record(s) to %s", n, args[0])))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import records from a file",
	Long: `Reads records from path and appends them to the roster. --replace
discards the current roster first. The format is taken from the file
extension unless forced with --format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := svc.Import(cmd.Context(), args[0], formatFlag, replaceFlag)
		if err != nil {
			return err
		}
		fmt.Println(renderOK(fmt.Sprintf("Imported %d record(s) from %s", n, args[0])))
		return nil
	},
}

func init() {
	addCmd.Flags().StringArrayVar(&scoreFlags, "score", nil, "subject=value (repeatable)")
	updateCmd.Flags().StringArrayVar(&scoreFlags, "score", nil, "subject=value (repeatable)")

	listCmd.Flags().StringVar(&sortFlag, "sort", "", "sort view by name or average")
	listCmd.Flags().BoolVar(&descFlag, "desc", false, "sort descending")
	listCmd.Flags().IntVar(&topFlag, "top", 0, "show only the first N records")

	sortCmd.Flags().StringVar(&sortFlag, "by", "", "sort key: name or average")
	sortCmd.Flags().BoolVar(&descFlag, "desc", false, "sort descending")

	exportCmd.Flags().StringVar(&formatFlag, "format", "", "force format: csv, json, yaml, xlsx")
	importCmd.Flags().StringVar(&formatFlag, "format", "", "force format: csv, json, yaml, xlsx")
	importCmd.Flags().BoolVar(&replaceFlag, "replace", false, "discard the current roster before importing")
}
