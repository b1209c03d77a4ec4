package listener

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-lab/nfl-data/internal/store"
)

func TestDispatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var got []store.RefreshEvent
	r := RefreshFunc(func(_ context.Context, ev store.RefreshEvent) {
		got = append(got, ev)
	})

	ok := Dispatch(context.Background(), `{"run_id":"abc","datasets":["seasonal"],"seasons":[2023,2024]}`, r, logger)
	assert.True(t, ok)
	ok = Dispatch(context.Background(), `not json`, r, logger)
	assert.False(t, ok)

	assert.Equal(t, []store.RefreshEvent{{RunID: "abc", Datasets: []string{"seasonal"}, Seasons: []int{2023, 2024}}}, got)
}
