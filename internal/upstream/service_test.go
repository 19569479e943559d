package upstream

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repomem "github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo/memory"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
	storagemem "github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage/memory"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestService(clock *fakeClock) *Service {
	return NewService(
		storagemem.New(),
		repomem.New(),
		WithDetectionDelay(10*time.Second),
		WithNow(clock.Now),
	)
}

func TestSubmitRejectsBadContentType(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)

	_, err := svc.Submit(context.Background(), "k.txt", "text/plain", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, logopulse.ErrUnsupportedContentType)
}

func TestSubmitReturnsUsableIdentifier(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)

	result, err := svc.Submit(context.Background(), "1718-abc.png", "image/png", bytes.NewReader([]byte("img")))
	require.NoError(t, err)
	assert.True(t, result.Valid())
	assert.Equal(t, "1718-abc.png", result.Key)
}

func TestResultPendingUntilDelayElapses(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)
	ctx := context.Background()

	result, err := svc.Submit(ctx, "k.png", "image/png", bytes.NewReader([]byte("img")))
	require.NoError(t, err)

	_, err = svc.Result(ctx, result.ImageID)
	assert.ErrorIs(t, err, ErrJobPending)

	clock.Advance(9 * time.Second)
	_, err = svc.Result(ctx, result.ImageID)
	assert.ErrorIs(t, err, ErrJobPending)

	clock.Advance(time.Second)
	label, err := svc.Result(ctx, result.ImageID)
	require.NoError(t, err)
	require.NotNil(t, label)
}

func TestResultUnknownIdentifier(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)

	_, err := svc.Result(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNoSuchJob)
}

func TestResultIsDeterministicPerImage(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)
	ctx := context.Background()

	img := []byte("the same image bytes")

	first, err := svc.Submit(ctx, "a.png", "image/png", bytes.NewReader(img))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "b.png", "image/png", bytes.NewReader(img))
	require.NoError(t, err)

	clock.Advance(time.Minute)

	labelA, err := svc.Result(ctx, first.ImageID)
	require.NoError(t, err)
	labelB, err := svc.Result(ctx, second.ImageID)
	require.NoError(t, err)

	assert.Equal(t, labelA, labelB)
}

func TestHistoryTracksLabelLifecycle(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)
	ctx := context.Background()

	result, err := svc.Submit(ctx, "k.png", "image/png", bytes.NewReader([]byte("img")))
	require.NoError(t, err)

	records, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "k.png", records[0].ImageKey)
	assert.Nil(t, records[0].Label)

	clock.Advance(time.Minute)
	label, err := svc.Result(ctx, result.ImageID)
	require.NoError(t, err)

	records, err = svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, label, records[0].Label)
}

func TestHistoryPreservesSubmissionOrder(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	svc := newTestService(clock)
	ctx := context.Background()

	keys := []string{"first.png", "second.jpg", "third.png"}
	for _, key := range keys {
		_, err := svc.Submit(ctx, key, "image/png", bytes.NewReader([]byte(key)))
		require.NoError(t, err)
	}

	records, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(keys))
	for i, key := range keys {
		assert.Equal(t, key, records[i].ImageKey)
	}
}

func TestDetectLabelShape(t *testing.T) {
	// Walk enough inputs to see both detected and none outcomes.
	var detected, none int
	for i := 0; i < 64; i++ {
		label := detectLabel([]byte{byte(i)})
		require.NotNil(t, label)

		if !label.Detected() {
			none++
			assert.Nil(t, label.BoundingBox)
			continue
		}

		detected++
		assert.Contains(t, labelNames, label.Name)
		assert.GreaterOrEqual(t, label.Confidence, 55.0)
		assert.Less(t, label.Confidence, 100.0)

		box := label.BoundingBox
		require.NotNil(t, box)
		assert.GreaterOrEqual(t, box.Left, 0.0)
		assert.GreaterOrEqual(t, box.Top, 0.0)
		assert.LessOrEqual(t, box.Left+box.Width, 1.0)
		assert.LessOrEqual(t, box.Top+box.Height, 1.0)
		assert.Greater(t, box.Width, 0.0)
		assert.Greater(t, box.Height, 0.0)
	}

	assert.NotZero(t, detected)
	assert.NotZero(t, none)
}

func TestDetectLabelBoxExtentAtHashExtremes(t *testing.T) {
	// This input hashes to a 0xff byte in an extent position; the box
	// must still have positive width and height.
	label := detectLabel([]byte{32})
	require.NotNil(t, label)
	require.True(t, label.Detected())

	box := label.BoundingBox
	require.NotNil(t, box)
	assert.Greater(t, box.Width, 0.0)
	assert.Greater(t, box.Height, 0.0)
	assert.LessOrEqual(t, box.Width, 0.5)
	assert.LessOrEqual(t, box.Height, 0.5)
}
