package tui

import (
	"strings"
	"testing"
	"time"
)

func TestToast_ShowDisplaysMessage(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show("test message")

	if !toast.IsVisible() {
		t.Error("expected toast to be visible after Show()")
	}
	if toast.GetMessage() != "test message" {
		t.Errorf("expected message 'test message', got %q", toast.GetMessage())
	}
	if cmd == nil {
		t.Error("expected Show() to return a command for dismissal")
	}
}

func TestToast_ViewReturnsEmptyWhenNotVisible(t *testing.T) {
	toast := NewToast()

	if view := toast.View(80); view != "" {
		t.Errorf("expected empty view when not visible, got %q", view)
	}
}

func TestToast_ViewRendersMessageWhenVisible(t *testing.T) {
	toast := NewToast()
	toast.Show("Please select a customer")

	view := toast.View(80)
	if !strings.Contains(view, "Please select a customer") {
		t.Errorf("expected view to contain message, got %q", view)
	}
}

func TestToast_DismissMsgHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show("test message")

	toast.Update(ToastDismissMsg{Seq: 1})

	if toast.IsVisible() {
		t.Error("expected toast to be hidden after dismiss")
	}
	if toast.GetMessage() != "" {
		t.Errorf("expected empty message after dismiss, got %q", toast.GetMessage())
	}
}

func TestToast_StaleDismissKeepsNewerToast(t *testing.T) {
	toast := NewToast()
	toast.Show("first")
	toast.Show("second")

	toast.Update(ToastDismissMsg{Seq: 1})

	if toast.GetMessage() != "second" {
		t.Errorf("expected newer toast to survive stale dismiss, got %q", toast.GetMessage())
	}
}

func TestToast_DismissAfterDuration(t *testing.T) {
	if ToastDuration != 3*time.Second {
		t.Errorf("expected 3s toast duration, got %v", ToastDuration)
	}
}
