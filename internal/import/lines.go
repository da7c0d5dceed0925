package import_parser

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-timeline/internal/model"
)

// LineParser reads one item per line:
//
//	# Title
//	- 0..100 @1 Design review
//	250 Launch
//	Retrospective
//
// A leading "- " or "* " is ignored. The span is "start" or "start..stop",
// the layer is "@n"; the rest of the line is the label.
type LineParser struct{}

func (p *LineParser) Name() string {
	return "Lines"
}

var (
	spanPattern  = regexp.MustCompile(`^(-?\d+)(?:\.\.(-?\d+))?$`)
	layerPattern = regexp.MustCompile(`^@(\d+)$`)
)

// Parse converts lines to partial items
func (p *LineParser) Parse(content string) (*Result, error) {
	result := &Result{}
	scanner := bufio.NewScanner(strings.NewReader(content))

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if title, ok := strings.CutPrefix(line, "# "); ok {
			if result.Title == "" {
				result.Title = strings.TrimSpace(title)
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		for _, bullet := range []string{"- ", "* "} {
			line = strings.TrimPrefix(line, bullet)
		}

		item, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		result.Items = append(result.Items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func parseLine(line string) (model.Partial, error) {
	var item model.Partial
	fields := strings.Fields(line)

	if len(fields) > 0 {
		if m := spanPattern.FindStringSubmatch(fields[0]); m != nil {
			start, _ := strconv.Atoi(m[1])
			item.Start = &start
			if m[2] != "" {
				stop, _ := strconv.Atoi(m[2])
				if stop < start {
					return item, fmt.Errorf("stop %d is before start %d", stop, start)
				}
				item.Stop = &stop
			}
			fields = fields[1:]
		}
	}

	if len(fields) > 0 {
		if m := layerPattern.FindStringSubmatch(fields[0]); m != nil {
			layer, err := strconv.Atoi(m[1])
			if err != nil {
				return item, fmt.Errorf("invalid layer %q", fields[0])
			}
			item.Priority = &layer
			fields = fields[1:]
		}
	}

	item.Label = strings.Join(fields, " ")
	return item, nil
}
