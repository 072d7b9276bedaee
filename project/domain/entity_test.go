package domain

import (
	"errors"
	"testing"
)

func TestMessage_ThreadAnchor(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "thread_ts_absent",
			msg:  Message{MessageTS: "100.1"},
			want: "100.1",
		},
		{
			name: "thread_ts_present",
			msg:  Message{MessageTS: "100.1", ThreadTS: "90.5"},
			want: "90.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.ThreadAnchor(); got != tt.want {
				t.Errorf("ThreadAnchor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessage_Validate(t *testing.T) {
	if err := (Message{ChannelID: "C1", MessageTS: "1.0"}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := (Message{MessageTS: "1.0"}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() without channel: got %v, want ErrInvalid", err)
	}
	if err := (Message{ChannelID: "C1"}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() without ts: got %v, want ErrInvalid", err)
	}
}
