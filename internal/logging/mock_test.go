package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldStage, "filter")
	child.Info("filtered", F(FieldCount, 2))
	mock.WithError(errors.New("bad")).Error("failed")

	require.Len(t, mock.Entries(), 2)
	assert.True(t, mock.HasEntry("INFO", "filtered"))

	info := mock.EntriesByLevel("INFO")[0]
	stage, ok := info.FieldValue(FieldStage)
	require.True(t, ok)
	assert.Equal(t, "filter", stage)
	count, _ := info.FieldValue(FieldCount)
	assert.Equal(t, 2, count)

	errEntry := mock.EntriesByLevel("ERROR")[0]
	assert.EqualError(t, errEntry.Error, "bad")
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Debug("hello")
	assert.Len(t, mock.Entries(), 1)
}
