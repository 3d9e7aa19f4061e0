// Package gitsync keeps a local checkout of the DMM hashlist repository
// up to date by shelling out to the system git binary rather than linking
// a git library.
package gitsync

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/funkypenguin/zilean-go/internal/logger"
)

// Syncer clones or pulls a single git repository into a local path.
type Syncer struct {
	repoURL  string
	localPath string
	username string
	token    string
	log      *logger.Logger
}

// New returns a Syncer for repoURL checked out at localPath. username and
// token, if set, are used for HTTPS basic auth against private repos.
func New(repoURL, localPath, username, token string, log *logger.Logger) *Syncer {
	return &Syncer{repoURL: repoURL, localPath: localPath, username: username, token: token, log: log}
}

// Sync clones the repository if localPath doesn't contain one yet,
// otherwise fetches and resets to the remote's default branch head.
func (s *Syncer) Sync(ctx context.Context) error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("gitsync: git binary not found: %w", err)
	}

	if _, err := os.Stat(s.localPath + "/.git"); os.IsNotExist(err) {
		return s.clone(ctx)
	}

	return s.pull(ctx)
}

func (s *Syncer) clone(ctx context.Context) error {
	s.log.Info("gitsync: cloning repository", "url", s.repoURL, "path", s.localPath)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", s.authenticatedURL(), s.localPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gitsync: clone failed: %w: %s", err, output)
	}
	return nil
}

func (s *Syncer) pull(ctx context.Context) error {
	s.log.Info("gitsync: fetching repository updates", "path", s.localPath)

	fetch := exec.CommandContext(ctx, "git", "-C", s.localPath, "fetch", "--depth", "1", "origin")
	if output, err := fetch.CombinedOutput(); err != nil {
		return fmt.Errorf("gitsync: fetch failed: %w: %s", err, output)
	}

	reset := exec.CommandContext(ctx, "git", "-C", s.localPath, "reset", "--hard", "origin/HEAD")
	if output, err := reset.CombinedOutput(); err != nil {
		return fmt.Errorf("gitsync: reset failed: %w: %s", err, output)
	}
	return nil
}

// authenticatedURL injects basic-auth credentials into an HTTPS remote
// URL when a username/token pair has been configured.
func (s *Syncer) authenticatedURL() string {
	if s.username == "" || s.token == "" || len(s.repoURL) < 8 {
		return s.repoURL
	}
	const httpsPrefix = "https://"
	if s.repoURL[:len(httpsPrefix)] != httpsPrefix {
		return s.repoURL
	}
	return httpsPrefix + s.username + ":" + s.token + "@" + s.repoURL[len(httpsPrefix):]
}
