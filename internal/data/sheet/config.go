package sheet

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://docs.google.com/spreadsheets/d"
	DefaultSheetID = "1Xn4HTnQ_i8YgqCD_jdNcO8odXTznGstFVNZzvnoVAX0"
	DefaultGID     = "887794739"
)

// Config locates the CSV export. When LocalFile is set it takes precedence
// over the remote sheet.
type Config struct {
	BaseURL   string
	SheetID   string
	GID       string
	LocalFile string
}

// DefaultConfig returns the logbook sheet used by the dive club
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		SheetID: DefaultSheetID,
		GID:     DefaultGID,
	}
}

// ExportURL builds the export URL with the cache-busting stamp t (epoch ms)
func (c Config) ExportURL(stamp int64) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if c.SheetID == "" {
		return "", fmt.Errorf("sheet id is required")
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + url.PathEscape(c.SheetID) + "/export")
	if err != nil {
		return "", fmt.Errorf("invalid sheet base url: %w", err)
	}

	q := u.Query()
	q.Set("format", "csv")
	if c.GID != "" {
		q.Set("gid", c.GID)
	}
	q.Set("t", strconv.FormatInt(stamp, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Describe names the source for logs and the dashboard footer
func (c Config) Describe() string {
	if c.LocalFile != "" {
		return "file:" + c.LocalFile
	}
	return fmt.Sprintf("sheet:%s#gid=%s", c.SheetID, c.GID)
}
