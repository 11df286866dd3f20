package callfile

import (
	"reflect"
	"testing"
)

func TestCallValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call Call
		want bool
	}{
		{
			name: "channel only",
			call: Call{Channel: "SIP/1234"},
			want: true,
		},
		{
			name: "empty channel",
			call: Call{},
			want: false,
		},
		{
			name: "whitespace channel",
			call: Call{Channel: "   "},
			want: false,
		},
		{
			name: "negative wait time",
			call: Call{Channel: "SIP/1234", WaitTime: -1},
			want: false,
		},
		{
			name: "negative retries",
			call: Call{Channel: "SIP/1234", MaxRetries: -2},
			want: false,
		},
		{
			name: "full dialing knobs",
			call: Call{Channel: "SIP/1234", WaitTime: 30, RetryTime: 60, MaxRetries: 2},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.call.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCallDirectivesOrder(t *testing.T) {
	t.Parallel()

	call := Call{
		Channel:    "SIP/1234",
		CallerID:   "Support <5550100>",
		Variables:  map[string]string{"b": "2", "a": "1"},
		Account:    "ops",
		WaitTime:   30,
		RetryTime:  60,
		MaxRetries: 2,
	}

	want := []string{
		"Channel: SIP/1234",
		"Callerid: Support <5550100>",
		"Set: a=1",
		"Set: b=2",
		"Account: ops",
		"WaitTime: 30",
		"RetryTime: 60",
		"Maxretries: 2",
	}
	if got := call.Directives(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Directives() = %q, want %q", got, want)
	}
}

func TestCallDirectivesOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	call := Call{Channel: "SIP/1234"}

	want := []string{"Channel: SIP/1234"}
	if got := call.Directives(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Directives() = %q, want %q", got, want)
	}
}

func TestCallVariablesDeterministic(t *testing.T) {
	t.Parallel()

	call := Call{
		Channel:   "SIP/1234",
		Variables: map[string]string{"zeta": "z", "alpha": "a", "mid": "m"},
	}

	first := call.Directives()
	for i := 0; i < 10; i++ {
		if got := call.Directives(); !reflect.DeepEqual(got, first) {
			t.Fatalf("serialization changed between builds: %q vs %q", got, first)
		}
	}
}
