package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yamdb/yamdb/domain/catalog"
)

func sampleReport() Report {
	users := KindReport{Kind: catalog.KindUsers, Path: "/data/users.csv"}
	users.Add(inserted(2))
	users.Add(inserted(3))
	users.Add(skipped(4, fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)))

	links := KindReport{Kind: catalog.KindGenreTitles, Path: "/data/genre_title.csv"}
	links.Add(inserted(2))
	links.Add(unchanged(3))

	broken := KindReport{Kind: catalog.KindTitles, Path: "/data/titles.csv"}
	broken.setErr(ErrMissingColumn)

	return Report{
		RunID:      "0b4a8e1e-5d0c-4e7a-9a57-3c5f3f1e2d10",
		StartedAt:  fixedNow,
		FinishedAt: fixedNow.Add(1500 * time.Millisecond),
		DryRun:     true,
		Kinds: []KindReport{
			users,
			{Kind: catalog.KindCategories, Missing: true},
			broken,
			links,
		},
	}
}

func TestReport_Totals(t *testing.T) {
	r := sampleReport()
	totals := r.Totals()

	assert.Equal(t, 5, totals.Rows)
	assert.Equal(t, 3, totals.Inserted)
	assert.Equal(t, 1, totals.Unchanged)
	assert.Equal(t, 1, totals.Skipped)
	assert.Equal(t, 1500*time.Millisecond, r.Duration())
	assert.False(t, r.Complete())
	assert.Equal(t, 2, r.incompleteFiles())
}

func TestKindReport_Complete(t *testing.T) {
	kr := KindReport{Kind: catalog.KindGenres}
	kr.Add(inserted(2))
	kr.Add(unchanged(3))
	assert.True(t, kr.Complete())

	kr.Add(skipped(4, &ValueError{Column: "id", Value: "x", Err: errors.New("invalid syntax")}))
	assert.False(t, kr.Complete())
	assert.Equal(t, ReasonInvalidValue, kr.Skips[0].Reason)
}

func TestReport_RenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatText))
	out := buf.String()

	assert.Contains(t, out, "KIND")
	assert.Regexp(t, `users\s+3\s+2\s+0\s+1\s+ok`, out)
	assert.Regexp(t, `category\s+0\s+0\s+0\s+0\s+missing`, out)
	assert.Regexp(t, `titles\s+0\s+0\s+0\s+0\s+error`, out)
	assert.Regexp(t, `total\s+5\s+3\s+1\s+1`, out)
	assert.Contains(t, out, "/data/users.csv:4: duplicate: create user: duplicated key not allowed")
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "finished in 1.5s")
}

func TestReport_RenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatJSON))

	var decoded struct {
		RunID  string `json:"run_id"`
		DryRun bool   `json:"dry_run"`
		Kinds  []struct {
			Kind     string `json:"kind"`
			Inserted int    `json:"inserted"`
			Missing  bool   `json:"missing"`
			Error    string `json:"error"`
			Skips    []Skip `json:"skips"`
		} `json:"kinds"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "0b4a8e1e-5d0c-4e7a-9a57-3c5f3f1e2d10", decoded.RunID)
	assert.True(t, decoded.DryRun)
	require.Len(t, decoded.Kinds, 4)
	assert.Equal(t, "users", decoded.Kinds[0].Kind)
	assert.Equal(t, 2, decoded.Kinds[0].Inserted)
	assert.Equal(t, ReasonDuplicate, decoded.Kinds[0].Skips[0].Reason)
	assert.True(t, decoded.Kinds[1].Missing)
	assert.Equal(t, ErrMissingColumn.Error(), decoded.Kinds[2].Error)
}

func TestReport_RenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0b4a8e1e-5d0c-4e7a-9a57-3c5f3f1e2d10", decoded["run_id"])
	assert.Equal(t, true, decoded["dry_run"])

	kinds, ok := decoded["kinds"].([]any)
	require.True(t, ok)
	assert.Len(t, kinds, 4)
	assert.True(t, strings.Contains(buf.String(), "reason: duplicate"))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatText,
		"text":  FormatText,
		"JSON":  FormatJSON,
		" yaml": FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
