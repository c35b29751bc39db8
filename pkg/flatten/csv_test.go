package flatten

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{
			ImageName:         "beach.jpg",
			ImagePreSignedURL: "https://example.com/beach.jpg",
			API:               "Labels",
			ItemID:            "Label1",
			SubItemID:         "Label1-Name",
			Value:             "Person",
			Confidence:        "99.5",
		},
		{
			ImageName: "beach.jpg",
			API:       "Labels",
			ItemID:    "Label1",
			SubItemID: "Label1-Instance1-BoundingBox",
			Value:     `{"Left":0.1,"Top":0.2,"Width":0.3,"Height":0.4}`,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, "Person", records[1][5])
	// Embedded quotes and commas in box JSON survive the round trip.
	assert.Equal(t, `{"Left":0.1,"Top":0.2,"Width":0.3,"Height":0.4}`, records[2][5])
	assert.Empty(t, records[2][6])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Header, records[0])
}
