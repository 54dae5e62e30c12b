// Package snapshot drives the session controller from the command line and
// writes the rendered profile to disk.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/zoneprofile/internal/adapters/http/site"
	"github.com/okian/zoneprofile/internal/app"
	"github.com/okian/zoneprofile/internal/render/page"
	"github.com/okian/zoneprofile/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Chart file names written to Config.ChartsDir.
const (
	SkillsFile = "skills.svg"
	AuditFile  = "audit.svg"
)

// Controller is the part of the session controller the runner needs.
type Controller interface {
	Start(ctx context.Context, sess app.Session) (app.Session, app.View, error)
	Login(ctx context.Context, sess app.Session, identifier, password string) (app.Session, app.View, error)
	Logout(ctx context.Context, sess app.Session) (app.Session, app.View, error)
}

// cliSession is the single unscoped session of the command line tool.
var cliSession = app.Session{}

// Login signs in and leaves the token in the controller's storage.
func Login(ctx context.Context, ctrl Controller, identifier, password string) (*app.View, error) {
	_, view, err := ctrl.Login(ctx, cliSession, identifier, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogin, err)
	}
	switch view.State {
	case app.StateProfileShown:
		logger.Get().Info(ctx, "signed in", logger.String("login", view.Profile.Stats.Login))
		return &view, nil
	case app.StateError:
		return nil, fmt.Errorf("%w: %s", ErrProfile, view.Message)
	default:
		return nil, fmt.Errorf("%w: %s", ErrLogin, view.Message)
	}
}

// Logout clears the stored token.
func Logout(ctx context.Context, ctrl Controller) error {
	_, _, err := ctrl.Logout(ctx, cliSession)
	if err != nil {
		return err
	}
	logger.Get().Info(ctx, "logged out")
	return nil
}

// Run loads the profile with the stored token and writes the snapshot files.
func Run(ctx context.Context, ctrl Controller, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	_, view, err := ctrl.Start(ctx, cliSession)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	switch view.State {
	case app.StateProfileShown:
	case app.StateLoggedOut:
		return nil, ErrNotSignedIn
	default:
		return nil, fmt.Errorf("%w: %s", ErrProfile, view.Message)
	}

	stats.Login = view.Profile.Stats.Login
	stats.Skills = len(view.Profile.Skills)
	stats.Warnings = len(view.Profile.Warnings)

	var buf bytes.Buffer
	if err := page.Render(&buf, view, page.WithInlineCSS(site.Stylesheet()), page.WithoutForms()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	filename := config.OutputFile
	if filename == "" {
		filename = "profile_" + stats.StartTime.Format("20060102_150405") + ".html"
	}
	if err := writeFile(filename, buf.Bytes()); err != nil {
		return nil, err
	}
	stats.Files = append(stats.Files, filename)
	stats.BytesWritten += int64(buf.Len())

	if config.ChartsDir != "" {
		charts := []struct {
			name string
			data []byte
		}{
			{SkillsFile, view.Skills.Bytes()},
			{AuditFile, view.Audit.Bytes()},
		}
		for _, c := range charts {
			path := filepath.Join(config.ChartsDir, c.name)
			if err := writeFile(path, c.data); err != nil {
				return nil, err
			}
			stats.Files = append(stats.Files, path)
			stats.BytesWritten += int64(len(c.data))
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	displayStats(ctx, stats)
	return stats, nil
}

// writeFile writes data to path through a temp file so readers never see a
// partial snapshot.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrWrite, err)
		}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Chmod(filePermission); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// displayStats logs the run summary.
func displayStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "snapshot written",
		logger.String("login", stats.Login),
		logger.Int("skills", stats.Skills),
		logger.Int("warnings", stats.Warnings),
		logger.Any("files", stats.Files),
		logger.Int("bytes", int(stats.BytesWritten)),
		logger.Duration("duration", stats.Duration))
}
