package logruslog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/sccodec/logging"
)

func TestLoggerForwardsFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := Logger{E: logrus.NewEntry(base)}

	l.Warn("reserved key", logging.Fields{"key": "ELRONDx"})
	l.Debug("noise", nil)

	require.Len(t, hook.AllEntries(), 2)
	first := hook.AllEntries()[0]
	assert.Equal(t, logrus.WarnLevel, first.Level)
	assert.Equal(t, "reserved key", first.Message)
	assert.Equal(t, "ELRONDx", first.Data["key"])
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestNewParsesLevel(t *testing.T) {
	l, err := New("error")
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, l.E.Logger.GetLevel())

	_, err = New("chatty")
	assert.Error(t, err)
}
