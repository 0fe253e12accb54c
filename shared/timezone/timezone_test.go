package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonyspizza/shared/timezone"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid date", value: "2025-06-01"},
		{name: "leap day", value: "2024-02-29"},
		{name: "not a leap year", value: "2025-02-29", wantErr: true},
		{name: "wrong layout", value: "01/06/2025", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.value, timezone.FormatDate(parsed))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))
	assert.Empty(t, timezone.FormatDate(time.Time{}))

	value := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.NotEmpty(t, timezone.Format(value, time.RFC3339))
	assert.Equal(t, "2024-01-01", timezone.FormatDate(value))
}
