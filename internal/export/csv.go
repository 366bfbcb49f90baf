// Package export writes normalized user records to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lukeslp/bluesky-cli/internal/bsky"
)

// csvHeader is the fixed column order of exported user files.
var csvHeader = []string{"handle", "displayName", "did", "description", "followerCount", "followingCount"}

// WriteUsers writes user records to path as CSV. The header row is always
// written, even for an empty record set.
func WriteUsers(path string, users []bsky.UserRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, u := range users {
		row := []string{
			u.Handle,
			u.DisplayName,
			u.DID,
			u.Description,
			strconv.Itoa(u.FollowerCount),
			strconv.Itoa(u.FollowingCount),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
