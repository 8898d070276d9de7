package ndnsim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
)

func readLines(t *testing.T, dir, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestWriteNodes(t *testing.T) {
	dir := t.TempDir()
	e, err := NewExporter(dir)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if err := e.WriteNodes([]string{"sat-0-0", "sat-0-1"}, []string{"city-Beijing"}); err != nil {
		t.Fatalf("WriteNodes: %v", err)
	}
	lines := readLines(t, dir, "nodes.csv")
	want := []string{"Name,Type", "sat-0-0,Satellite", "sat-0-1,Satellite", "city-Beijing,Station"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteISLs(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewExporter(dir)
	edges := [][2]string{{"sat-0-0", "sat-0-1"}, {"sat-0-0", "sat-1-0"}}
	if err := e.WriteISLs(edges); err != nil {
		t.Fatalf("WriteISLs: %v", err)
	}
	lines := readLines(t, dir, "ISLs.csv")
	if lines[0] != "First,Second" || lines[1] != "sat-0-0,sat-0-1" || lines[2] != "sat-0-0,sat-1-0" {
		t.Errorf("unexpected ISLs.csv content: %v", lines)
	}
}

func TestWriteAttachmentsCompression(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewExporter(dir)

	// s1 over [0,5], s2 over [6,10]: exactly two rows.
	attachments := make([]string, 11)
	for i := range attachments {
		if i <= 5 {
			attachments[i] = "s1"
		} else {
			attachments[i] = "s2"
		}
	}
	table := attachment.Table{"city-A": attachments}
	if err := e.WriteAttachments(table); err != nil {
		t.Fatalf("WriteAttachments: %v", err)
	}
	lines := readLines(t, dir, "attachments_city-A.csv")
	want := []string{"Time,Satellite", "0,s1", "6,s2"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteAttachmentsDetachedMarker(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewExporter(dir)
	table := attachment.Table{"city-A": {"s1", attachment.None, attachment.None, "s1"}}
	if err := e.WriteAttachments(table); err != nil {
		t.Fatalf("WriteAttachments: %v", err)
	}
	lines := readLines(t, dir, "attachments_city-A.csv")
	want := []string{"Time,Satellite", "0,s1", "1,-", "3,s1"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWritePairs(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewExporter(dir)

	pair := [2]string{"city-A", "city-B"}
	routes := map[[2]string]routing.PairRoutes{
		pair: {
			1: {"sat-0-0", "sat-0-1", "sat-1-1"},
			0: {"sat-0-0", "sat-1-0", "sat-1-1"},
		},
	}
	if err := e.WritePairs([][2]string{pair}, routes); err != nil {
		t.Fatalf("WritePairs: %v", err)
	}

	lines := readLines(t, dir, "pairs.csv")
	if lines[0] != "Consumer,Producer" || lines[1] != "city-A,city-B" {
		t.Errorf("unexpected pairs.csv: %v", lines)
	}

	lines = readLines(t, dir, "routes_city-A+city-B.csv")
	want := []string{"Time,Route", "0,sat-0-0|sat-1-0|sat-1-1", "1,sat-0-0|sat-0-1|sat-1-1"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWritePairsMissingRoutes(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewExporter(dir)
	err := e.WritePairs([][2]string{{"city-A", "city-B"}}, nil)
	if err == nil {
		t.Error("expected an error for a pair without routes")
	}
}
