package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleEntry = "# Monday 04.03.2024\n" +
	"\n" +
	"# Work\n" +
	"* Meeting: planning for Q2\n" +
	"* Deploy (prod)\n" +
	"#  Sport  \n" +
	"* running\n" +
	"```\n" +
	"# not a section\n" +
	"* not a tag\n" +
	"```\n" +
	"*no space is not a tag\n"

func TestLogEntry_Parse(t *testing.T) {
	m := LogEntry{Content: sampleEntry}.Parse(true)

	assert.Equal(t, []string{"sport", "work"}, m.Sections)
	assert.Equal(t, []string{"deploy", "meeting", "running"}, m.Tags)
}

func TestLogEntry_Parse_Tasks(t *testing.T) {
	content := "# 01.06.2024\n" +
		"[x] (work) Write report: sent to team\n" +
		"- [ ] buy milk\n" +
		"  [?] call-bank\n" +
		"```\n" +
		"[x] inside code\n" +
		"```\n" +
		"[link](http://example.com)\n"

	m := LogEntry{Content: content}.Parse(true)

	assert.Equal(t, []string{"buy milk", "call-bank", "write report"}, m.Tasks)
	assert.Empty(t, m.Tags)
}

func TestLogEntry_Parse_TagsPerSection(t *testing.T) {
	content := "header\n" +
		"* early\n" +
		"# Work\n" +
		"* meeting\n" +
		"* deploy\n" +
		"# Empty\n" +
		"# Sport\n" +
		"* running\n" +
		"* meeting\n"

	m := LogEntry{Content: content}.Parse(true)

	assert.Equal(t, map[string][]string{
		RootSection: {"early"},
		"work":      {"deploy", "meeting"},
		"empty":     {},
		"sport":     {"meeting", "running"},
	}, m.TagsPerSection)
	assert.Equal(t, []string{"deploy", "early", "meeting", "running"}, m.Tags)
}

func TestLogEntry_Parse_KeepFirstLine(t *testing.T) {
	m := LogEntry{Content: sampleEntry}.Parse(false)

	assert.Contains(t, m.Sections, "monday 04.03.2024")
}

func TestLogEntry_Parse_Empty(t *testing.T) {
	m := LogEntry{}.Parse(true)

	assert.Empty(t, m.Sections)
	assert.Empty(t, m.Tags)
	assert.Empty(t, m.Tasks)
	assert.Empty(t, m.TagsPerSection)
}
