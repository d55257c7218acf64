package alert

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Notifier interface {
	Send(Notification) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
)

// DBusNotifier talks to the freedesktop notification daemon on the session bus.
type DBusNotifier struct {
	conn    *dbus.Conn
	appName string
	timeout int32
}

func NewDBusNotifier(appName string) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &DBusNotifier{conn: conn, appName: appName, timeout: 5000}, nil
}

func (n *DBusNotifier) Send(msg Notification) error {
	obj := n.conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyFor(msg.Level)),
	}
	call := obj.Call(notificationsInterface+".Notify", 0,
		n.appName, uint32(0), "", msg.Title, msg.Body, []string{}, hints, n.timeout)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}

func (n *DBusNotifier) Close() error {
	return n.conn.Close()
}

func urgencyFor(level string) byte {
	switch strings.ToLower(level) {
	case "error":
		return 2
	case "info":
		return 1
	default:
		return 0
	}
}

// NewDesktopNotifier prefers D-Bus on Linux and falls back to shelling out.
func NewDesktopNotifier(appName string) Notifier {
	if runtime.GOOS == "linux" {
		if n, err := NewDBusNotifier(appName); err == nil {
			return n
		}
	}
	return ExecNotifier{}
}
