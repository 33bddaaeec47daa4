// Package ioinstall downloads a prebuilt taxonomy index and unpacks it.
// The snapshot is accepted only when its SHA-256 digest matches the
// configured one, and nothing is extracted otherwise.
package ioinstall

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	app "github.com/gnames/taxlookup/pkg"
)

// Installer fetches a snapshot from URL and verifies it against SHA256.
type Installer struct {
	URL    string
	SHA256 string
	// Client is used for the download, http.DefaultClient if nil.
	Client *http.Client
	// Quiet hides the progress bar.
	Quiet bool
}

// Install downloads the snapshot, verifies it and replaces the index in
// dir with its content.
func (in Installer) Install(ctx context.Context, dir string) error {
	start := time.Now()
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return ExtractError(parent, err)
	}

	archive := filepath.Join(parent, filepath.Base(dir)+".tar.gz.part")
	defer os.Remove(archive)

	gn.Info("(1/3) Downloading <em>%s</em>", in.URL)
	digest, size, err := in.download(ctx, archive)
	if err != nil {
		return err
	}
	gn.Message("<em>Downloaded %s bytes</em>", humanize.Comma(size))

	gn.Info("(2/3) Verifying checksum...")
	if err = Verify(digest, in.SHA256); err != nil {
		return err
	}

	gn.Info("(3/3) Extracting snapshot...")
	if err = Extract(archive, dir); err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Snapshot installed", "dir", dir, "url", in.URL, "duration", dur)
	gn.Info("Installed index to <em>%s</em> in %s", dir, dur)
	return nil
}

// Verify compares a hex SHA-256 digest with the expected one.
func Verify(got, want string) error {
	if !strings.EqualFold(got, want) {
		return ChecksumError(want, got)
	}
	return nil
}

// FileDigest returns the hex SHA-256 digest of a file.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (in Installer) download(ctx context.Context, dest string) (string, int64, error) {
	client := in.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
	if err != nil {
		return "", 0, DownloadError(in.URL, err)
	}
	req.Header.Set("User-Agent", "taxlookup/"+app.Version)

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, DownloadError(in.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, StatusError(in.URL, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", 0, DownloadError(in.URL, err)
	}
	defer out.Close()

	var body io.Reader = resp.Body
	if !in.Quiet && resp.ContentLength > 0 {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, h), body)
	if err != nil {
		return "", 0, DownloadError(in.URL, err)
	}
	if err = out.Sync(); err != nil {
		return "", 0, DownloadError(in.URL, err)
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}
