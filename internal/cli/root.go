package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mfbarbosa/eduplan/internal/generator"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

type Context struct {
	Store storage.Provider

	// NewTextGenerator builds the Gemini client on demand so commands that
	// never generate don't need an API key.
	NewTextGenerator func(ctx context.Context) (generator.TextGenerator, error)
}

// parseWeekdays parses a comma separated weekday list into the schedulable
// day numbers (1=Monday..5=Friday). Both numbers and Portuguese day
// abbreviations are accepted.
func parseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"seg":     1,
		"segunda": 1,
		"ter":     2,
		"terca":   2,
		"terça":   2,
		"qua":     3,
		"quarta":  3,
		"qui":     4,
		"quinta":  4,
		"sex":     5,
		"sexta":   5,
	}

	var weekdays []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 5 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}

	return weekdays, nil
}

// confirm asks a y/N question on stdin and reports whether the user agreed.
func confirm(prompt string) (bool, error) {
	fmt.Print(prompt + " [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
