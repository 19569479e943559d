package logopulse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidContentType(t *testing.T) {
	tests := []struct {
		name  string
		ct    string
		valid bool
	}{
		{"jpeg", "image/jpeg", true},
		{"png", "image/png", true},
		{"jpeg with parameter", "image/jpeg; charset=binary", true},
		{"gif", "image/gif", false},
		{"webp", "image/webp", false},
		{"pdf", "application/pdf", false},
		{"octet-stream", "application/octet-stream", false},
		{"prefix only", "image/", false},
		{"empty", "", false},
		{"garbage", "not a media type", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidContentType(tt.ct))
		})
	}
}

func TestUploadResultValid(t *testing.T) {
	assert.True(t, UploadResult{ImageID: "abc-123", Key: "k.png"}.Valid())
	assert.False(t, UploadResult{ImageID: "", Key: "k.png"}.Valid())
	assert.False(t, UploadResult{ImageID: WorkIDUnknown, Key: "k.png"}.Valid())
}

func TestLabelDetected(t *testing.T) {
	assert.True(t, (&Label{Name: "Logo", Confidence: 91.5}).Detected())
	assert.False(t, (&Label{Name: LabelNone}).Detected())
	assert.False(t, (&Label{}).Detected())

	var nilLabel *Label
	assert.False(t, nilLabel.Detected())
}

func TestBoundingBoxScale(t *testing.T) {
	box := BoundingBox{Left: 0.25, Top: 0.5, Width: 0.5, Height: 0.25}

	x, y, w, h := box.Scale(800, 600)
	assert.Equal(t, 200, x)
	assert.Equal(t, 300, y)
	assert.Equal(t, 400, w)
	assert.Equal(t, 150, h)
}

func TestHistoryRecordNullLabel(t *testing.T) {
	// A pending record must keep Label explicitly null on the wire.
	data, err := json.Marshal(HistoryRecord{ImageKey: "x.png"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ImageKey":"x.png","Label":null}`, string(data))
}

func TestLabelWireCasing(t *testing.T) {
	data, err := json.Marshal(Label{
		Name:        "Logo",
		Confidence:  87.2,
		BoundingBox: &BoundingBox{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"Logo","Confidence":87.2,"BoundingBox":{"Left":0.1,"Top":0.2,"Width":0.3,"Height":0.4}}`, string(data))
}
