package screen

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-screen/internal/classify"
	"github.com/sells-group/location-screen/internal/model"
)

func locations(n int) []model.Location {
	out := make([]model.Location, n)
	for i := range out {
		name := fmt.Sprintf("Quiet Corner Cafe %03d", i)
		if i%3 == 0 {
			name = fmt.Sprintf("Downtown Gym %03d", i)
		}
		out[i] = model.Location{ID: fmt.Sprintf("id-%03d", i), Name: name, Address: "1 Main St"}
	}
	return out
}

func TestRunner_PreservesOrder(t *testing.T) {
	locs := locations(200)
	r := NewRunner(classify.New(nil), 16)

	res, err := r.Run(context.Background(), locs)
	require.NoError(t, err)

	assert.Equal(t, 200, res.Scanned)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Flagged, 67)
	for i, v := range res.Flagged {
		assert.Equal(t, fmt.Sprintf("id-%03d", i*3), v.ID)
		assert.Equal(t, []string{"Business type: gym"}, v.Reasons)
	}
	assert.Empty(t, res.Failures)
}

func TestRunner_MatchesSequential(t *testing.T) {
	c := classify.New(nil)
	locs := []model.Location{
		{ID: "1", Name: "The Rusty Pub", Hours: model.StringPtr("6pm - 2am")},
		{ID: "2", Name: "Quiet Corner Cafe", Hours: model.StringPtr("6am-8pm")},
		{ID: "3", Name: "Quiet Corner Cafe", Hours: model.StringPtr("Closes at 5pm")},
		{ID: "4", Name: "GameStop"},
	}

	var want []model.Verdict
	for _, l := range locs {
		if v := c.Verdict(l); v.Flagged() {
			want = append(want, v)
		}
	}

	res, err := NewRunner(c, 3).Run(context.Background(), locs)
	require.NoError(t, err)
	assert.Equal(t, want, res.Flagged)
}

func TestRunner_Empty(t *testing.T) {
	res, err := NewRunner(classify.New(nil), 0).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
	assert.Empty(t, res.Flagged)
}

type panicky struct {
	inner Classifier
	bad   string
}

func (p panicky) Verdict(loc model.Location) model.Verdict {
	if loc.ID == p.bad {
		panic("boom")
	}
	return p.inner.Verdict(loc)
}

func TestRunner_IsolatesPanics(t *testing.T) {
	locs := locations(9)
	r := NewRunner(panicky{inner: classify.New(nil), bad: "id-003"}, 4)

	res, err := r.Run(context.Background(), locs)
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "id-003", res.Failures[0].ID)
	assert.Equal(t, "boom", res.Failures[0].Error)
	assert.Equal(t, 9, res.Scanned)

	var ids []string
	for _, v := range res.Flagged {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"id-000", "id-006"}, ids)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(classify.New(nil), 2).Run(ctx, locations(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_NilClassifier(t *testing.T) {
	_, err := (&Runner{}).Run(context.Background(), locations(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil classifier")
}
