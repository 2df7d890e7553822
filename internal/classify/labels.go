package classify

import (
	"bufio"
	"os"
	"strings"
)

// Labels maps class indices to names.
type Labels []string

// Letters returns the A-Z labels of the EMNIST letters model.
func Letters() Labels {
	labels := make(Labels, NumClasses)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	return labels
}

// LoadLabels reads one label per line. Blank lines are kept so that line
// numbers stay aligned with class indices.
func LoadLabels(filename string) (Labels, error) {
	labels := Labels{}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

func (l Labels) Name(class int) string {
	label := "unknown"
	if class >= 0 && class < len(l) {
		label = l[class]
	}
	return label
}
