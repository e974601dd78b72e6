package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatUsers(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[int64]string
		wantErr bool
	}{
		{name: "empty", in: "", want: nil},
		{name: "single pair", in: "12345=user-a", want: map[int64]string{12345: "user-a"}},
		{
			name: "multiple pairs with spaces",
			in:   "12345=user-a, 67890=user-b",
			want: map[int64]string{12345: "user-a", 67890: "user-b"},
		},
		{name: "negative chat id", in: "-1001=user-a", want: map[int64]string{-1001: "user-a"}},
		{name: "missing user id", in: "12345=", wantErr: true},
		{name: "missing separator", in: "12345", wantErr: true},
		{name: "non-numeric chat id", in: "abc=user-a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChatUsers(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
