package dpledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dp-one/dpledger/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  *errors.Error
		wantTime UnixTime
	}{
		"number": {
			raw:      "1700000000",
			wantTime: 1700000000,
		},
		"zero": {
			raw:      "0",
			wantTime: 0,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"string time": {
			raw:      `"2023-11-14T22:13:20Z"`,
			wantTime: 1700000000,
		},
		"garbage": {
			raw:     `"not a time"`,
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("cannot unmarshal: %+v", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := UnixTime(1700000000)
	if got := now.Add(time.Hour); got != 1700003600 {
		t.Fatalf("unexpected time: %d", got)
	}
	if got := now.Add(-time.Hour); got != 1699996400 {
		t.Fatalf("unexpected time: %d", got)
	}
}

func TestUnixTimeValidate(t *testing.T) {
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := UnixTime(0).Validate(); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
}
