package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// URL is a zipped feed downloaded over http(s).
type URL struct {
	Address string
	Headers map[string]string

	MaxElapsedTime time.Duration
}

func (u *URL) String() string {
	return u.Address
}

func (u *URL) ReadFiles(names []string) (map[string]string, error) {
	tempFile, err := u.download()
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempFile)

	return (&Zip{Path: tempFile}).ReadFiles(names)
}

func (u *URL) download() (string, error) {
	tmpFile, err := os.CreateTemp(os.TempDir(), "gtfs-extract-")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	retryBackoff := backoff.NewExponentialBackOff()
	if u.MaxElapsedTime > 0 {
		retryBackoff.MaxElapsedTime = u.MaxElapsedTime
	}

	err = backoff.RetryNotify(func() error {
		if err := tmpFile.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}
		if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}

		return u.fetch(tmpFile)
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", u.Address).Str("retry", wait.String()).Msg("Download failed")
	})
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

func (u *URL) fetch(destination io.Writer) error {
	req, err := http.NewRequest("GET", u.Address, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("user-agent", "curl/7.54.1")
	for key, value := range u.Headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return backoff.Permanent(fmt.Errorf("download %s: %s", u.Address, resp.Status))
	} else if resp.StatusCode >= 500 {
		return fmt.Errorf("download %s: %s", u.Address, resp.Status)
	}

	log.Info().Str("url", u.Address).Msg("Downloading feed")

	_, err = io.Copy(destination, resp.Body)
	return err
}
