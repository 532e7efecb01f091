package domain

import (
	"bufio"
	"regexp"
	"sort"
	"strings"
)

// RootSection keys the tags written before the first section title.
const RootSection = "<root section>"

var (
	sectionTitleRe = regexp.MustCompile(`^# \s*(.*?)\s*$`)
	tagRe          = regexp.MustCompile(`^\*( +)([a-z 0-9]+)(\(.+\))?(:.*)?$`)
	// [x] (tag) title: text, optionally as a "- " list item.
	taskRe = regexp.MustCompile(`^ *(- )?\[(.)] *(\(([\[a-zA-Z0-9_:]*)\))? *([\sa-zA-Z0-9_-]*)( *):?( *)(.*)$`)
)

const taskTitleGroup = 5

// LogEntry is the markdown written for a single day.
type LogEntry struct {
	Date    Date   `json:"date"`
	Content string `json:"content"`
}

// Mentions are the titles found in an entry, lower-cased, trimmed, sorted
// and unique.
type Mentions struct {
	Sections []string
	Tags     []string
	Tasks    []string

	// TagsPerSection maps each section title to the tags written under it.
	// Tags before the first section are keyed by RootSection. Sections
	// without tags map to an empty slice.
	TagsPerSection map[string][]string
}

// Parse extracts section, tag and task titles from the entry. Lines inside
// fenced code blocks are ignored. With skipFirstLine the first line is not
// treated as a section title, since it normally holds the date header.
func (e LogEntry) Parse(skipFirstLine bool) Mentions {
	sections := map[string]struct{}{}
	tags := map[string]struct{}{}
	tasks := map[string]struct{}{}
	perSection := map[string]map[string]struct{}{}

	current := RootSection
	inCode := false
	sc := bufio.NewScanner(strings.NewReader(e.Content))
	sc.Buffer(make([]byte, 0, 64*1024), len(e.Content)+1)
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
		}
		if inCode {
			continue
		}

		if m := sectionTitleRe.FindStringSubmatch(line); m != nil {
			if !skipFirstLine {
				if title := strings.TrimSpace(m[1]); title != "" {
					sections[title] = struct{}{}
					current = title
					if _, ok := perSection[title]; !ok {
						perSection[title] = map[string]struct{}{}
					}
				}
			}
		} else if m := tagRe.FindStringSubmatch(line); m != nil {
			if tag := strings.TrimSpace(m[2]); tag != "" {
				tags[tag] = struct{}{}
				if perSection[current] == nil {
					perSection[current] = map[string]struct{}{}
				}
				perSection[current][tag] = struct{}{}
			}
		} else if m := taskRe.FindStringSubmatch(line); m != nil {
			if task := strings.TrimSpace(m[taskTitleGroup]); task != "" {
				tasks[task] = struct{}{}
			}
		}
		skipFirstLine = false
	}

	bySection := make(map[string][]string, len(perSection))
	for section, set := range perSection {
		bySection[section] = sortedKeys(set)
	}

	return Mentions{
		Sections:       sortedKeys(sections),
		Tags:           sortedKeys(tags),
		Tasks:          sortedKeys(tasks),
		TagsPerSection: bySection,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
