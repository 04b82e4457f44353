package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gradebook/internal/domain"
)

// runInteractive drives the menu loop. Every operation error is reported and
// the loop continues; only EOF or the exit choice ends it.
func runInteractive(cmd *cobra.Command) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		printMenu()
		choice, ok := prompt(reader, "Enter choice: ")
		if !ok {
			fmt.Println()
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = interactiveAdd(cmd, reader)
		case "2":
			err = interactiveUpdate(cmd, reader)
		case "3":
			err = interactiveDelete(cmd, reader)
		case "4":
			err = interactiveList(cmd, reader)
		case "5":
			err = interactiveSearch(cmd, reader)
		case "6":
			err = interactiveSort(cmd, reader)
		case "7":
			err = interactiveStats(cmd, reader)
		case "8":
			err = interactiveExport(cmd, reader)
		case "9":
			err = interactiveImport(cmd, reader)
		case "0":
			fmt.Println(renderOK("Goodbye."))
			return nil
		default:
			fmt.Println(renderWarn("Invalid choice. Try again."))
			continue
		}

		if err != nil {
			fmt.Println(renderError(err))
		}
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println(renderTitle("Gradebook"))
	fmt.Println("1. Add student")
	fmt.Println("2. Update student")
	fmt.Println("3. Delete student")
	fmt.Println("4. View students")
	fmt.Println("5. Search students")
	fmt.Println("6. Sort roster")
	fmt.Println("7. Statistics")
	fmt.Println("8. Export")
	fmt.Println("9. Import")
	fmt.Println("0. Exit")
}

// prompt reads one trimmed line; ok is false on EOF
func prompt(reader *bufio.Reader, label string) (string, bool) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// promptScores collects subject=value pairs until a blank line
func promptScores(reader *bufio.Reader) (map[string]float64, error) {
	scores := make(map[string]float64)
	for {
		line, ok := prompt(reader, "Score (subject=value, blank to finish): ")
		if !ok || line == "" {
			return scores, nil
		}
		parsed, err := parseScores([]string{line})
		if err != nil {
			fmt.Println(renderWarn(err.Error()))
			continue
		}
		for subject, score := range parsed {
			scores[subject] = score
		}
	}
}

func interactiveAdd(cmd *cobra.Command, reader *bufio.Reader) error {
	name, ok := prompt(reader, "Student name: ")
	if !ok || name == "" {
		return errors.New("name must not be empty")
	}
	scores, err := promptScores(reader)
	if err != nil {
		return err
	}
	added, err := svc.AddStudent(cmd.Context(), name, scores)
	if err != nil {
		return err
	}
	fmt.Println(renderRecordLine("Added", added))
	return nil
}

func interactiveUpdate(cmd *cobra.Command, reader *bufio.Reader) error {
	name, ok := prompt(reader, "Student name to update: ")
	if !ok || name == "" {
		return errors.New("name must not be empty")
	}
	scores, err := promptScores(reader)
	if err != nil {
		return err
	}
	updated, err := svc.UpdateStudent(cmd.Context(), name, scores)
	if err != nil {
		return err
	}
	fmt.Println(renderRecordLine("Updated", updated))
	return nil
}

func interactiveDelete(cmd *cobra.Command, reader *bufio.Reader) error {
	name, ok := prompt(reader, "Student name to delete: ")
	if !ok || name == "" {
		return errors.New("name must not be empty")
	}
	confirm, _ := prompt(reader, fmt.Sprintf("Delete all records for %q? (y/n): ", name))
	if !strings.EqualFold(confirm, "y") {
		fmt.Println(renderWarn("Delete cancelled."))
		return nil
	}
	removed, err := svc.DeleteStudent(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Println(renderOK(fmt.Sprintf("Deleted %d record(s).", removed)))
	return nil
}

func interactiveList(cmd *cobra.Command, reader *bufio.Reader) error {
	by, _ := prompt(reader, "Sort by (none/name/average): ")

	if by == "" || by == "none" {
		records, err := svc.ListStudents(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderRoster(records))
		return nil
	}

	key, ok := domain.ParseSortKey(by)
	if !ok {
		return fmt.Errorf("unknown sort key %q (use name or average)", by)
	}

	desc, _ := prompt(reader, "Descending? (y/n): ")
	top := 0
	if raw, _ := prompt(reader, "Top N (blank for all): "); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("top must be a positive number, got %q", raw)
		}
		top = n
	}

	records, err := svc.ListSorted(cmd.Context(), key, !strings.EqualFold(desc, "y"), top)
	if err != nil {
		return err
	}
	fmt.Println(renderRoster(records))
	return nil
}

func interactiveSearch(cmd *cobra.Command, reader *bufio.Reader) error {
	query, ok := prompt(reader, "Search text: ")
	if !ok || query == "" {
		return errors.New("search text must not be empty")
	}
	records, err := svc.SearchStudents(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(renderWarn("No matching students found."))
		return nil
	}
	fmt.Println(renderRoster(records))
	return nil
}

func interactiveSort(cmd *cobra.Command, reader *bufio.Reader) error {
	by, ok := prompt(reader, "Sort by (name/average): ")
	if !ok {
		return nil
	}
	key, found := domain.ParseSortKey(by)
	if !found {
		return fmt.Errorf("unknown sort key %q (use name or average)", by)
	}
	desc, _ := prompt(reader, "Descending? (y/n): ")

	if err := svc.Sort(cmd.Context(), key, !strings.EqualFold(desc, "y")); err != nil {
		return err
	}
	fmt.Println(renderOK(fmt.Sprintf("Roster sorted by %s", key)))

	records, err := svc.ListStudents(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(renderRoster(records))
	return nil
}

func interactiveStats(cmd *cobra.Command, reader *bufio.Reader) error {
	name, _ := prompt(reader, "Student name (blank for whole roster): ")

	if name == "" {
		summary, err := svc.Statistics(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderSummary("Roster statistics", summary))
		return nil
	}

	summary, err := svc.StudentStatistics(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Println(renderSummary(fmt.Sprintf("Statistics for %s", name), summary))
	return nil
}

func interactiveExport(cmd *cobra.Command, reader *bufio.Reader) error {
	path, ok := prompt(reader, "Export path (default grades_export.csv): ")
	if !ok {
		return nil
	}
	if path == "" {
		path = "grades_export.csv"
	}
	n, err := svc.Export(cmd.Context(), path, "")
	if err != nil {
		return err
	}
	fmt.Println(renderOK(fmt.Sprintf("Exported %d record(s) to %s", n, path)))
	return nil
}

func interactiveImport(cmd *cobra.Command, reader *bufio.Reader) error {
	path, ok := prompt(reader, "Import path: ")
	if !ok || path == "" {
		return errors.New("import path must not be empty")
	}
	replace, _ := prompt(reader, "Replace current roster? (y/n): ")
	n, err := svc.Import(cmd.Context(), path, "", strings.EqualFold(replace, "y"))
	if err != nil {
		return err
	}
	fmt.Println(renderOK(fmt.Sprintf("Imported %d record(s) from %s", n, path)))
	return nil
}
