package mcploader

import "testing"

func TestPendingCalls_RegisterAndDeliverRoundTrip(t *testing.T) {
	p := newPendingCalls()
	ch := p.register(7)

	p.deliver(7, &jsonrpcResponse{ID: float64(7)})

	select {
	case resp := <-ch:
		if resp == nil {
			t.Fatal("expected a non-nil response")
		}
	default:
		t.Fatal("expected deliver to hand the response to the registered channel")
	}
}

func TestPendingCalls_ForgetPreventsLaterDeliverFromBlocking(t *testing.T) {
	p := newPendingCalls()
	ch := p.register(1)
	p.forget(1)

	// deliver must not panic or block even though the channel is no longer
	// tracked; the response is simply dropped.
	p.deliver(1, &jsonrpcResponse{ID: float64(1)})

	select {
	case <-ch:
		t.Fatal("forget should have removed the slot before deliver ran")
	default:
	}
}

func TestPendingCalls_DeliverUnknownIDIsNoop(t *testing.T) {
	p := newPendingCalls()
	// No register call for id 99; this must not panic.
	p.deliver(99, &jsonrpcResponse{ID: float64(99)})
}
