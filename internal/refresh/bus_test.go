package refresh

import (
	"testing"
	"time"
)

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish(ScopeAll)

	for i, ch := range []<-chan Scope{ch1, ch2} {
		select {
		case got := <-ch:
			if got != ScopeAll {
				t.Errorf("subscriber %d got %v, want ScopeAll", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the tag", i)
		}
	}
}

func TestBus_PublishWithNoSubscribersDoesNotBlock(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	go func() {
		bus.Publish(ScopeDashboard)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestBus_SlowSubscriberSeesLatestTag(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	// Subscriber is not draining; the buffered tag must be replaced.
	bus.Publish(ScopeHome)
	bus.Publish(ScopeDashboard)

	select {
	case got := <-ch:
		if got != ScopeDashboard {
			t.Errorf("got %v, want the latest tag ScopeDashboard", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no tag delivered")
	}
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Double cancel and publishing after cancel are no-ops.
	cancel()
	bus.Publish(ScopeAll)
}

func TestScope_Matches(t *testing.T) {
	tests := []struct {
		name      string
		emitted   Scope
		listening Scope
		want      bool
	}{
		{"all matches home", ScopeAll, ScopeHome, true},
		{"all matches dashboard", ScopeAll, ScopeDashboard, true},
		{"dashboard matches dashboard", ScopeDashboard, ScopeDashboard, true},
		{"home does not match dashboard", ScopeHome, ScopeDashboard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.emitted.Matches(tt.listening); got != tt.want {
				t.Errorf("%v.Matches(%v) = %v, want %v", tt.emitted, tt.listening, got, tt.want)
			}
		})
	}
}
