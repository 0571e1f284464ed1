// Package listener receives raw OS notification events, filters them down to
// payment-relevant captures, and hands them to the transport without ever
// blocking the event-delivery goroutine.
package listener

import (
	"context"
	"strings"
	"sync"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/transport"
)

const (
	// YapePackage is the payment app whose notifications carry transactions.
	YapePackage = "com.bcp.innovacxion.yapeapp"
	brandName   = "yape"
)

// Gate is the capture switch consulted before every capture.
type Gate interface {
	IsEnabled() bool
}

// Listener is the notification event handler. Lifecycle: Connect moves it to
// the connected state, Disconnect abandons in-flight sends and returns it to
// disconnected. Events arriving while disconnected are dropped.
type Listener struct {
	gate     Gate
	sender   transport.Sender
	deviceID string
	logAll   bool

	mu        sync.Mutex
	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New creates a listener. logAll forwards every notification regardless of
// classification (debug mode).
func New(g Gate, sender transport.Sender, deviceID string, logAll bool) *Listener {
	return &Listener{
		gate:     g,
		sender:   sender,
		deviceID: deviceID,
		logAll:   logAll,
	}
}

// Connect transitions to the connected state.
func (l *Listener) Connect() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.connected {
		return
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.connected = true
	common.LogInfo("notification listener connected", common.Fields{"device_id": l.deviceID, "log_all": l.logAll})
}

// Disconnect transitions to the disconnected state and cancels any in-flight
// sends owned by this connection.
func (l *Listener) Disconnect() {
	l.mu.Lock()
	if !l.connected {
		l.mu.Unlock()
		return
	}
	l.connected = false
	cancel := l.cancel
	l.mu.Unlock()

	cancel()
	l.wg.Wait()
	common.LogInfo("notification listener disconnected", nil)
}

// Connected reports the current lifecycle state.
func (l *Listener) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// OnNotificationPosted handles one raw capture. It returns immediately; the
// network send happens on its own goroutine, fire-and-forget.
func (l *Listener) OnNotificationPosted(capture model.RawCapture) {
	l.mu.Lock()
	if !l.connected {
		l.mu.Unlock()
		common.LogDebug("event dropped, listener not connected", common.Fields{"package": capture.Package})
		return
	}
	ctx := l.ctx
	l.mu.Unlock()

	if !l.gate.IsEnabled() {
		common.LogDebug("capture disabled, dropping notification", common.Fields{"package": capture.Package})
		return
	}

	rawMessage := capture.RawMessage()

	if !l.isPaymentRelevant(capture) && !l.logAll {
		common.LogDebug("notification ignored", common.Fields{"package": capture.Package})
		return
	}

	msg := model.OutboundMessage{Message: rawMessage, DeviceID: l.deviceID}

	// Re-check under the lock so the Add cannot race a Disconnect that has
	// already begun waiting. An event losing that race is dropped.
	l.mu.Lock()
	if !l.connected {
		l.mu.Unlock()
		common.LogDebug("event dropped, listener disconnecting", common.Fields{"package": capture.Package})
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		l.sender.Send(ctx, msg)
	}()
}

// isPaymentRelevant classifies a capture: an exact package match, or the
// brand name appearing in the title or text.
func (l *Listener) isPaymentRelevant(capture model.RawCapture) bool {
	if capture.Package == YapePackage {
		return true
	}
	return strings.Contains(strings.ToLower(capture.Title), brandName) ||
		strings.Contains(strings.ToLower(capture.Text), brandName)
}
