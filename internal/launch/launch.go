// Package launch starts applications from their entries.
package launch

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"appmenu/internal/desktop"
	"appmenu/internal/logging"
	"appmenu/internal/models"
)

// Command builds the process for an entry without starting it.
// The process runs in the user's home directory in its own session.
func Command(e models.Entry) (*exec.Cmd, error) {
	argv, err := desktop.ExpandExec(e)
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", e.AppID, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}
	detach(cmd)
	return cmd, nil
}

// IsAvailable checks if the entry's program exists in PATH
func IsAvailable(e models.Entry) bool {
	argv, err := desktop.ExpandExec(e)
	if err != nil {
		return false
	}
	_, err = exec.LookPath(argv[0])
	return err == nil
}

// Spawn starts the entry's program and returns its pid without waiting for it
func Spawn(e models.Entry) (int, error) {
	cmd, err := Command(e)
	if err != nil {
		return 0, err
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("launch %s: %w", e.AppID, err)
	}

	log := logging.For("launch")
	log.Info("spawned", slog.String("app", e.AppID), slog.Int("pid", cmd.Process.Pid))

	// Reap the child so it does not linger as a zombie while the menu runs
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("exited", slog.String("app", e.AppID), slog.String("error", err.Error()))
		}
	}()
	return cmd.Process.Pid, nil
}
