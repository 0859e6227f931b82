// Package notifier delivers desktop notifications through the tray
// companion's local webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tivlo/internal/constants"
)

var (
	ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")
	ErrBadLockfile    = errors.New("tray lockfile is invalid")
)

// Swapped in tests.
var (
	configDir   = os.UserConfigDir
	lookupProc  = ps.FindProcess
	httpTimeout = 5 * time.Second
)

// Message is the body the tray webhook accepts.
type Message struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// trayLock is the content of the tray lockfile, written as "port|pid|secret".
type trayLock struct {
	Port   int
	PID    int
	Secret string
}

func (l trayLock) endpoint() string {
	return "http://127.0.0.1:" + strconv.Itoa(l.Port)
}

type Notifier struct {
	client *http.Client
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: httpTimeout}}
}

// Notify shows text as a desktop notification.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := TrayDir()
	if err != nil {
		return err
	}
	lock, err := loadLock(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	return n.post(ctx, lock, Message{Text: text, DurationMs: constants.NotificationDurationMs})
}

// TrayDir is where the tray keeps its lockfile. A lockfile_dir entry in the
// tray's settings.json overrides the default location.
func TrayDir() (string, error) {
	base, err := configDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(base, constants.TrayAppIdentifier)

	raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var doc struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(raw, &doc) == nil && doc.Settings.LockfileDir != "" {
		return doc.Settings.LockfileDir, nil
	}
	return dir, nil
}

func parseLock(raw string) (trayLock, error) {
	fields := strings.Split(strings.TrimSpace(raw), "|")
	if len(fields) != 3 {
		return trayLock{}, fmt.Errorf("%w: want port|pid|secret", ErrBadLockfile)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	port, err := strconv.Atoi(fields[0])
	if err != nil || port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("%w: port %q", ErrBadLockfile, fields[0])
	}
	pid, err := strconv.Atoi(fields[1])
	if err != nil || pid <= 0 {
		return trayLock{}, fmt.Errorf("%w: pid %q", ErrBadLockfile, fields[1])
	}
	if fields[2] == "" {
		return trayLock{}, fmt.Errorf("%w: no secret", ErrBadLockfile)
	}
	return trayLock{Port: port, PID: pid, Secret: fields[2]}, nil
}

// loadLock reads the lockfile and confirms its pid still belongs to the tray.
func loadLock(path string) (trayLock, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}
	lock, err := parseLock(string(raw))
	if err != nil {
		return trayLock{}, err
	}

	proc, err := lookupProc(lock.PID)
	if err != nil || proc == nil {
		return trayLock{}, ErrTrayNotRunning
	}
	if exe := proc.Executable(); !strings.HasPrefix(exe, constants.TrayExecutablePrefix) {
		return trayLock{}, fmt.Errorf("%w: pid %d belongs to %s", ErrTrayNotRunning, lock.PID, exe)
	}
	return lock, nil
}

func (n *Notifier) post(ctx context.Context, lock trayLock, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lock.endpoint(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tivlo-Secret", lock.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("reach tray: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("tray rejected notification (%s): %s", res.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}
