package domain

import (
	"encoding/json"
	"sort"
)

// DateSet is a set of dates. It encodes to JSON as a sorted array of
// YYYY-MM-DD strings.
type DateSet map[Date]struct{}

// Add inserts d.
func (s DateSet) Add(d Date) { s[d] = struct{}{} }

// Remove deletes d.
func (s DateSet) Remove(d Date) { delete(s, d) }

// Has reports whether d is in the set.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the dates in calendar order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *DateSet) UnmarshalJSON(b []byte) error {
	var dates []Date
	if err := json.Unmarshal(b, &dates); err != nil {
		return err
	}
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	*s = set
	return nil
}

// YearOverview holds which days of a year have entries and on which days
// every tag, task and section was mentioned. It never holds entry contents.
type YearOverview struct {
	Year            int                `json:"year"`
	LogAvailability DateSet            `json:"logAvailabilityMap"`
	Tags            map[string]DateSet `json:"tagMap"`
	Tasks           map[string]DateSet `json:"taskMap"`
	Sections        map[string]DateSet `json:"sectionMap"`
}

// NewYearOverview returns an empty overview for year.
func NewYearOverview(year int) YearOverview {
	return YearOverview{
		Year:            year,
		LogAvailability: DateSet{},
		Tags:            map[string]DateSet{},
		Tasks:           map[string]DateSet{},
		Sections:        map[string]DateSet{},
	}
}

// Collect updates the overview for one date. Every existing mention of date
// is dropped first; a nil entry marks the date as having no log.
func (o *YearOverview) Collect(date Date, entry *LogEntry, skipFirstLine bool) {
	o.ensure()
	forget(o.Tags, date)
	forget(o.Tasks, date)
	forget(o.Sections, date)

	if entry == nil {
		o.LogAvailability.Remove(date)
		return
	}
	o.LogAvailability.Add(date)

	m := entry.Parse(skipFirstLine)
	for _, tag := range m.Tags {
		mention(o.Tags, tag, date)
	}
	for _, task := range m.Tasks {
		mention(o.Tasks, task, date)
	}
	for _, section := range m.Sections {
		mention(o.Sections, section, date)
	}
}

// TagNames returns all tag titles, sorted.
func (o YearOverview) TagNames() []string { return names(o.Tags) }

// TaskNames returns all task titles, sorted.
func (o YearOverview) TaskNames() []string { return names(o.Tasks) }

// SectionNames returns all section titles, sorted.
func (o YearOverview) SectionNames() []string { return names(o.Sections) }

func (o *YearOverview) ensure() {
	if o.LogAvailability == nil {
		o.LogAvailability = DateSet{}
	}
	if o.Tags == nil {
		o.Tags = map[string]DateSet{}
	}
	if o.Tasks == nil {
		o.Tasks = map[string]DateSet{}
	}
	if o.Sections == nil {
		o.Sections = map[string]DateSet{}
	}
}

func forget(m map[string]DateSet, date Date) {
	for k, set := range m {
		set.Remove(date)
		if len(set) == 0 {
			delete(m, k)
		}
	}
}

func mention(m map[string]DateSet, key string, date Date) {
	set, ok := m[key]
	if !ok {
		set = DateSet{}
		m[key] = set
	}
	set.Add(date)
}

func names(m map[string]DateSet) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
