package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRequest_Validate(t *testing.T) {
	valid := FetchRequest{Language: "ko", MinLength: 10, MaxLength: 10, MaxRetries: 1}
	require.NoError(t, valid.Validate())

	tests := map[string]FetchRequest{
		"unknown language": {Language: "qqq-invalid", MinLength: 1, MaxLength: 2, MaxRetries: 1},
		"zero max length":  {Language: "en", MinLength: 0, MaxLength: 0, MaxRetries: 1},
		"no retries":       {Language: "en", MinLength: 0, MaxLength: 10, MaxRetries: 0},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, req.Validate())
		})
	}
}

func TestFetchResult_AcceptAndFail(t *testing.T) {
	result := NewFetchResult("en")

	result.Fail("")
	assert.False(t, result.Success)
	assert.Equal(t, DefaultFailureMessage, result.Message)
	assert.EqualError(t, result.Err(), DefaultFailureMessage)

	result.Accept("Title", "text", "https://en.wikipedia.org/wiki/Title")
	assert.True(t, result.Success)
	assert.Empty(t, result.Message)
	assert.NoError(t, result.Err())

	result.Fail("boom")
	assert.Empty(t, result.Text)
	assert.Empty(t, result.SourceURL)
	assert.Equal(t, "boom", result.Message)
}

func TestReason_IsError(t *testing.T) {
	assert.True(t, ReasonTransport.IsError())
	assert.True(t, ReasonDecode.IsError())
	assert.True(t, ReasonNotFound.IsError())
	assert.True(t, ReasonCanceled.IsError())
	assert.False(t, ReasonTooShort.IsError())
	assert.False(t, ReasonAccepted.IsError())
}
