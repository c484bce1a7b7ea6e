package ics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarcal/internal/model"
)

func TestLoadImports_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "feed.ics")
	body, err := BuildFeed(FeedOptions{AnchorYear: 2020, Now: d(2020, time.January, 1)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, body, 0o600))

	empty := filepath.Join(dir, "empty.ics")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	from, to := d(2024, time.October, 1), d(2024, time.October, 31)
	obs, errs := LoadImports([]string{filepath.Join(dir, "missing.ics"), empty, good}, from, to)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "missing.ics")
	assert.Contains(t, errs[1].Error(), "empty.ics")

	want, err := Observances(from, to)
	require.NoError(t, err)
	assert.Equal(t, want, obs)
}

func TestMerge_SortsAndDropsDuplicates(t *testing.T) {
	builtin := []model.Observance{
		{Date: d(2024, time.October, 1), Name: "国庆节", Kind: model.KindFestival},
		{Date: d(2024, time.October, 23), Name: "霜降", Kind: model.KindSolarTerm},
	}
	imported := []model.Observance{
		{Date: d(2024, time.October, 23), Name: "霜降", Kind: model.KindSolarTerm},
		{Date: d(2024, time.October, 20), Name: "腊八节", Kind: model.KindFestival},
	}

	assert.Equal(t, []model.Observance{
		{Date: d(2024, time.October, 1), Name: "国庆节", Kind: model.KindFestival},
		{Date: d(2024, time.October, 20), Name: "腊八节", Kind: model.KindFestival},
		{Date: d(2024, time.October, 23), Name: "霜降", Kind: model.KindSolarTerm},
	}, Merge(builtin, imported))

	assert.Empty(t, Merge())
}
